// Package handler はforecastフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_predictor/internal/api"
	"stock_predictor/internal/feature/forecast/domain"
	"stock_predictor/internal/feature/forecast/domain/entity"
	"stock_predictor/internal/feature/forecast/transport/http/dto"
)

// Forecaster は予測ユースケースのインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type Forecaster interface {
	Forecast(ctx context.Context, symbol string) (entity.ForecastResult, error)
}

// ForecastHandler は翌日予測のHTTPリクエストを処理します。
type ForecastHandler struct {
	uc Forecaster
}

// NewForecastHandler は指定されたusecaseでForecastHandlerの新しいインスタンスを生成します。
func NewForecastHandler(uc Forecaster) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// GetForecastHandler は銘柄コードを受け取り、翌日予測をJSONで返します。
//
// エンドポイント例:
// GET /predict/AAPL
//
// エラー種別とHTTPステータスの対応:
//   - モデル未ロード → 404
//   - 履歴データ無し/ストア障害 → 503
//   - 推論失敗 → 500
func (h *ForecastHandler) GetForecastHandler(c *gin.Context) {
	symbol := c.Param("symbol")

	res, err := h.uc.Forecast(c.Request.Context(), symbol)
	if err != nil {
		status, msg := classify(symbol, err)
		c.JSON(status, api.ErrorResponse{Error: msg})
		return
	}

	history := make([]dto.HistoryItem, 0, len(res.History))
	for _, p := range res.History {
		history = append(history, dto.HistoryItem{
			Date:  p.Date.UTC().Format("2006-01-02"),
			Price: p.Price,
		})
	}

	c.JSON(http.StatusOK, dto.ForecastResponse{
		Symbol:     res.Symbol,
		Prediction: res.Prediction,
		Delta:      res.Delta,
		History:    history,
	})
}

// classify はドメインエラーをHTTPステータスと利用者向けメッセージに対応付けます。
func classify(symbol string, err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		return http.StatusNotFound, fmt.Sprintf("no forecasting model for %s", symbol)
	case errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusServiceUnavailable, "historical data not available: ingestion in progress or database unreachable"
	case errors.Is(err, domain.ErrInferenceFailed):
		return http.StatusInternalServerError, fmt.Sprintf("prediction failed: %v", err)
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
