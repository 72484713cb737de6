// Package usecase は翌日株価予測のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"stock_predictor/internal/feature/forecast/domain"
	"stock_predictor/internal/feature/forecast/domain/entity"
	"stock_predictor/internal/feature/forecast/model"
)

const (
	// DefaultHistoryLimit は予測レスポンスに含める直近の観測数のデフォルト値です。
	DefaultHistoryLimit = 30
)

// HistoryRepository は履歴価格データの読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HistoryRepository interface {
	// FetchRecent は銘柄の直近 limit 件の観測を日付昇順で返します。
	// ストア障害はエラー、データ未投入は空スライスで表現します。
	FetchRecent(ctx context.Context, symbol string, limit int) ([]entity.HistoryPoint, error)
}

// ModelRegistry はロード済みモデルの参照を抽象化します。
type ModelRegistry interface {
	Get(symbol string) (model.Model, bool)
}

// ForecastUsecase は1銘柄の予測リクエストを処理します。
// レジストリ参照 → 履歴取得 → 推論 → レスポンス組み立ての単一の制御フローで、
// リトライは行いません（リトライ方針は呼び出し側の責務）。
type ForecastUsecase struct {
	registry ModelRegistry
	history  HistoryRepository
	limit    int
}

// NewForecastUsecase はForecastUsecaseの新しいインスタンスを生成します。
// limit が0以下の場合はデフォルト値を使用します。
func NewForecastUsecase(registry ModelRegistry, history HistoryRepository, limit int) *ForecastUsecase {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &ForecastUsecase{registry: registry, history: history, limit: limit}
}

// Forecast は銘柄の翌日予測を返します。
// 失敗は必ず domain のエラー種別（ErrModelNotFound / ErrDataUnavailable /
// ErrInferenceFailed）のいずれかに分類してから返します。
func (fu *ForecastUsecase) Forecast(ctx context.Context, symbol string) (entity.ForecastResult, error) {
	m, ok := fu.registry.Get(symbol)
	if !ok {
		return entity.ForecastResult{}, fmt.Errorf("%w: %s", domain.ErrModelNotFound, symbol)
	}

	history, err := fu.history.FetchRecent(ctx, symbol, fu.limit)
	if err != nil {
		// ストア自体に到達できない（インフラ障害）
		slog.Error("history store unreachable", "symbol", symbol, "error", err)
		return entity.ForecastResult{}, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	if len(history) == 0 {
		// ストアは正常だが行が無い（インジェスト未完了などの正当な状態）
		slog.Warn("no history rows for symbol yet", "symbol", symbol)
		return entity.ForecastResult{}, fmt.Errorf("%w: no rows for %s", domain.ErrDataUnavailable, symbol)
	}

	// デルタ計算の前に昇順ソートを保証する
	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })

	// 予測対象は呼び出し時点の「明日」
	target := time.Now().Add(24 * time.Hour)

	predicted, err := m.Predict(target)
	if err != nil {
		slog.Error("model inference failed", "symbol", symbol, "target", target, "error", err)
		return entity.ForecastResult{}, fmt.Errorf("%w: %v", domain.ErrInferenceFailed, err)
	}
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		slog.Error("model returned non-finite value", "symbol", symbol, "value", predicted)
		return entity.ForecastResult{}, fmt.Errorf("%w: non-finite value %v", domain.ErrInferenceFailed, predicted)
	}

	prediction := round2(predicted)
	last := history[len(history)-1].Price

	return entity.ForecastResult{
		Symbol:     symbol,
		Prediction: prediction,
		Delta:      round2(prediction - last),
		Target:     target,
		History:    history,
	}, nil
}

// round2 は小数第2位への丸めです。レスポンス契約に合わせて結果側で丸めます。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
