package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_predictor/internal/feature/symbollist/domain/entity"
	"stock_predictor/internal/feature/symbollist/transport/http/dto"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListSymbols() []entity.Symbol
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は設定済み銘柄とモデル状態の一覧を返すAPIです。
// ダッシュボードの銘柄セレクタ描画に使用されます。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols := h.uc.ListSymbols()
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, ModelStatus: s.ModelStatus})
	}
	c.JSON(http.StatusOK, out)
}
