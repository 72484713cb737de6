package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_predictor/internal/feature/forecast/domain"
	"stock_predictor/internal/feature/forecast/domain/entity"
	"stock_predictor/internal/feature/forecast/transport/handler"
)

// mockForecaster はForecasterインターフェースのモック実装です。
type mockForecaster struct {
	ForecastFunc func(ctx context.Context, symbol string) (entity.ForecastResult, error)
}

func (m *mockForecaster) Forecast(ctx context.Context, symbol string) (entity.ForecastResult, error) {
	return m.ForecastFunc(ctx, symbol)
}

// TestForecastHandler_GetForecastHandler はHTTPリクエスト/レスポンス処理と
// エラー種別からHTTPステータスへの対応付けをテストします。
func TestForecastHandler_GetForecastHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// テスト用の固定時刻
	testDay := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockForecast   func(ctx context.Context, symbol string) (entity.ForecastResult, error)
		expectedStatus int
		expectedBody   string // JSON文字列として比較
	}{
		{
			name: "success: forecast with history",
			url:  "/predict/AAPL",
			mockForecast: func(ctx context.Context, symbol string) (entity.ForecastResult, error) {
				assert.Equal(t, "AAPL", symbol)
				return entity.ForecastResult{
					Symbol:     "AAPL",
					Prediction: 105.0,
					Delta:      4.0,
					Target:     testDay.AddDate(0, 0, 1),
					History: []entity.HistoryPoint{
						{Date: testDay.AddDate(0, 0, -1), Price: 102},
						{Date: testDay, Price: 101},
					},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"symbol": "AAPL",
				"prediction": 105.0,
				"delta": 4.0,
				"history": [
					{"date": "2024-03-09", "price": 102},
					{"date": "2024-03-10", "price": 101}
				]
			}`,
		},
		{
			name: "error: model not found maps to 404",
			url:  "/predict/BTC-USD",
			mockForecast: func(ctx context.Context, symbol string) (entity.ForecastResult, error) {
				return entity.ForecastResult{}, fmt.Errorf("%w: BTC-USD", domain.ErrModelNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"no forecasting model for BTC-USD"}`,
		},
		{
			name: "error: data unavailable maps to 503",
			url:  "/predict/AAPL",
			mockForecast: func(ctx context.Context, symbol string) (entity.ForecastResult, error) {
				return entity.ForecastResult{}, fmt.Errorf("%w: no rows", domain.ErrDataUnavailable)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"historical data not available: ingestion in progress or database unreachable"}`,
		},
		{
			name: "error: inference failure maps to 500",
			url:  "/predict/AAPL",
			mockForecast: func(ctx context.Context, symbol string) (entity.ForecastResult, error) {
				return entity.ForecastResult{}, fmt.Errorf("%w: non-finite value NaN", domain.ErrInferenceFailed)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"prediction failed: model inference failed: non-finite value NaN"}`,
		},
		{
			name: "error: unclassified error maps to 500",
			url:  "/predict/AAPL",
			mockForecast: func(ctx context.Context, symbol string) (entity.ForecastResult, error) {
				return entity.ForecastResult{}, errors.New("boom")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// モックusecaseのインスタンスを生成
			mockUC := &mockForecaster{ForecastFunc: tt.mockForecast}

			h := handler.NewForecastHandler(mockUC)

			router := gin.New()
			router.GET("/predict/:symbol", h.GetForecastHandler)

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, tt.url, nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
