package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_predictor/internal/feature/chart/domain/entity"
	"stock_predictor/internal/feature/chart/transport/handler"
	"stock_predictor/internal/feature/chart/usecase"
)

// mockChartUsecase はChartUsecaseインターフェースのモック実装です。
type mockChartUsecase struct {
	BuildChartFunc func(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error)
}

func (m *mockChartUsecase) BuildChart(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error) {
	return m.BuildChartFunc(ctx, symbols, horizonDays)
}

// TestChartHandler_GetChartHandler はクエリのパースとレスポンス変換をテストします。
func TestChartHandler_GetChartHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	price := func(v float64) *float64 { return &v }
	testDay := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockBuildChart func(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error)
		expectedStatus int
		expectedBody   string // JSON文字列として比較
	}{
		{
			name: "success: table with one error symbol",
			url:  "/chart?symbols=AAPL,BTC-USD&horizon=30",
			mockBuildChart: func(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error) {
				assert.Equal(t, []string{"AAPL", "BTC-USD"}, symbols)
				assert.Equal(t, 30, horizonDays)
				return entity.Table{
						Columns: []entity.Column{
							{Symbol: "AAPL", Kind: entity.KindHistorical},
							{Symbol: "AAPL", Kind: entity.KindForecast},
						},
						Rows: []entity.Row{
							{Date: testDay, Cells: []*float64{price(101), price(101)}},
							{Date: testDay.AddDate(0, 0, 1), Cells: []*float64{nil, price(105)}},
						},
					}, []entity.SymbolError{
						{Symbol: "BTC-USD", Message: "no forecasting model loaded"},
					}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"columns": [
					{"symbol": "AAPL", "kind": "historical"},
					{"symbol": "AAPL", "kind": "forecast"}
				],
				"rows": [
					{"date": "2024-03-10", "values": [101, 101]},
					{"date": "2024-03-11", "values": [null, 105]}
				],
				"errors": [
					{"symbol": "BTC-USD", "error": "no forecasting model loaded"}
				]
			}`,
		},
		{
			name: "success: default horizon when unspecified",
			url:  "/chart?symbols=AAPL",
			mockBuildChart: func(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error) {
				assert.Equal(t, usecase.DefaultHorizonDays, horizonDays) // デフォルト値
				return entity.Table{}, nil, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"columns":[],"rows":[],"errors":[]}`,
		},
		{
			name: "error: missing symbols parameter",
			url:  "/chart",
			mockBuildChart: func(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error) {
				t.Error("usecase must not be called without symbols")
				return entity.Table{}, nil, nil
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"symbols query parameter is required"}`,
		},
		{
			name: "error: non-integer horizon",
			url:  "/chart?symbols=AAPL&horizon=month",
			mockBuildChart: func(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error) {
				t.Error("usecase must not be called with an unparsable horizon")
				return entity.Table{}, nil, nil
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"horizon must be an integer number of days"}`,
		},
		{
			name: "error: horizon outside the fixed set",
			url:  "/chart?symbols=AAPL&horizon=45",
			mockBuildChart: func(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error) {
				return entity.Table{}, nil, usecase.ErrInvalidHorizon
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid horizon"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockChartUsecase{BuildChartFunc: tt.mockBuildChart}

			h := handler.NewChartHandler(mockUC)

			router := gin.New()
			router.GET("/chart", h.GetChartHandler)

			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodGet, tt.url, nil)
			require.NoError(t, err)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
