// Package registry owns the mapping from symbol to loaded forecasting model.
// The registry is built once at process start and is read-only afterwards,
// so concurrent lookups need no synchronization.
package registry

import (
	"errors"
	"io/fs"
	"log/slog"
	"sort"

	"stock_predictor/internal/feature/forecast/model"
)

// ArtifactStore abstracts the read-only model artifact storage.
// Following Go convention: interfaces are defined by the consumer (registry),
// not the provider (adapters).
type ArtifactStore interface {
	// Read returns the serialized artifact for the symbol.
	// Absence is reported as fs.ErrNotExist.
	Read(symbol string) ([]byte, error)
}

// Status は1銘柄のモデルロード結果です。
type Status string

const (
	StatusLoaded  Status = "loaded"  // アーティファクトを復元できた
	StatusMissing Status = "missing" // アーティファクトが存在しない（銘柄無効化などの定常状態）
	StatusCorrupt Status = "corrupt" // アーティファクトはあるが読み込み・復元に失敗した
)

// Registry は銘柄ごとのロード済みモデルを保持します。Load 後は変更されません。
type Registry struct {
	models   map[string]model.Model
	statuses map[string]Status
	symbols  []string // 設定された全銘柄（ソート済み）
}

// Load は各銘柄のモデルアーティファクトをストアから読み込みます。
// 1銘柄の失敗（欠損・破損）が他の銘柄のロードを妨げることはなく、
// 銘柄ごとの結果を個別にログへ記録します。Load 自体は常に成功します。
func Load(store ArtifactStore, symbols []string) *Registry {
	r := &Registry{
		models:   make(map[string]model.Model, len(symbols)),
		statuses: make(map[string]Status, len(symbols)),
		symbols:  make([]string, 0, len(symbols)),
	}

	for _, s := range symbols {
		// 設定の重複（TICKERSの二重指定など）は1銘柄として扱う
		if _, ok := r.statuses[s]; ok {
			continue
		}
		r.symbols = append(r.symbols, s)

		data, err := store.Read(s)
		if errors.Is(err, fs.ErrNotExist) {
			r.statuses[s] = StatusMissing
			slog.Warn("model artifact missing", "symbol", s)
			continue
		}
		if err != nil {
			r.statuses[s] = StatusCorrupt
			slog.Error("failed to read model artifact", "symbol", s, "error", err)
			continue
		}

		m, err := model.Decode(data)
		if err != nil {
			r.statuses[s] = StatusCorrupt
			slog.Error("failed to decode model artifact", "symbol", s, "error", err)
			continue
		}

		r.models[s] = m
		r.statuses[s] = StatusLoaded
		slog.Info("model loaded", "symbol", s)
	}

	sort.Strings(r.symbols)
	return r
}

// Get は銘柄のモデルを返します。I/Oも遅延ロードも行わない純粋な参照です。
// モデルが無いことはエラーではなく定常状態なので、ok=false で表現します。
func (r *Registry) Get(symbol string) (model.Model, bool) {
	m, ok := r.models[symbol]
	return m, ok
}

// Symbols は設定された全銘柄をソート順で返します。
func (r *Registry) Symbols() []string {
	out := make([]string, len(r.symbols))
	copy(out, r.symbols)
	return out
}

// StatusOf は銘柄のロード結果を返します。未設定の銘柄は missing 扱いです。
func (r *Registry) StatusOf(symbol string) Status {
	if st, ok := r.statuses[symbol]; ok {
		return st
	}
	return StatusMissing
}
