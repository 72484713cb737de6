// Package handler はchartフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stock_predictor/internal/api"
	"stock_predictor/internal/feature/chart/domain/entity"
	"stock_predictor/internal/feature/chart/transport/http/dto"
	"stock_predictor/internal/feature/chart/usecase"
)

// ChartUsecase はチャート集約のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	BuildChart(ctx context.Context, symbols []string, horizonDays int) (entity.Table, []entity.SymbolError, error)
}

// ChartHandler はマルチ銘柄チャートのHTTPリクエストを処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler は指定されたusecaseでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// GetChartHandler は銘柄一覧とホライズンを受け取り、時間軸を揃えた
// チャート用テーブルをJSONで返します。
//
// エンドポイント例:
// GET /chart?symbols=AAPL,SPY&horizon=365
func (h *ChartHandler) GetChartHandler(c *gin.Context) {
	symbolsParam := c.Query("symbols")
	if symbolsParam == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "symbols query parameter is required"})
		return
	}
	symbols := splitSymbols(symbolsParam)

	// 未指定の場合はデフォルト値を使用
	horizonStr := c.DefaultQuery("horizon", strconv.Itoa(usecase.DefaultHorizonDays))
	horizon, err := strconv.Atoi(horizonStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "horizon must be an integer number of days"})
		return
	}

	table, symbolErrs, err := h.uc.BuildChart(c.Request.Context(), symbols, horizon)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidHorizon) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toResponse(table, symbolErrs))
}

// toResponse はドメインのテーブルをレスポンスDTOへ変換します。
func toResponse(table entity.Table, symbolErrs []entity.SymbolError) dto.ChartResponse {
	columns := make([]dto.ColumnItem, 0, len(table.Columns))
	for _, col := range table.Columns {
		columns = append(columns, dto.ColumnItem{Symbol: col.Symbol, Kind: string(col.Kind)})
	}

	rows := make([]dto.RowItem, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, dto.RowItem{
			Date:   r.Date.UTC().Format("2006-01-02"),
			Values: r.Cells,
		})
	}

	errs := make([]dto.SymbolErrorItem, 0, len(symbolErrs))
	for _, e := range symbolErrs {
		errs = append(errs, dto.SymbolErrorItem{Symbol: e.Symbol, Error: e.Message})
	}

	return dto.ChartResponse{Columns: columns, Rows: rows, Errors: errs}
}

// splitSymbols はカンマ区切りの銘柄指定をパースします。空要素は無視します。
func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
