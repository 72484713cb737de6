// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"stock_predictor/internal/feature/forecast/registry"
	"stock_predictor/internal/feature/symbollist/domain/entity"
)

// ModelCatalog abstracts the read-only view over the loaded model registry.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (registry).
type ModelCatalog interface {
	Symbols() []string
	StatusOf(symbol string) registry.Status
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	catalog ModelCatalog
}

// NewSymbolUsecase creates a new SymbolUsecase with the given catalog.
func NewSymbolUsecase(catalog ModelCatalog) *SymbolUsecase {
	return &SymbolUsecase{catalog: catalog}
}

// ListSymbols returns every configured symbol with its model load status.
// The registry is immutable after startup, so this performs no I/O.
func (u *SymbolUsecase) ListSymbols() []entity.Symbol {
	codes := u.catalog.Symbols()
	out := make([]entity.Symbol, 0, len(codes))
	for _, code := range codes {
		out = append(out, entity.Symbol{
			Code:        code,
			ModelStatus: string(u.catalog.StatusOf(code)),
		})
	}
	return out
}
