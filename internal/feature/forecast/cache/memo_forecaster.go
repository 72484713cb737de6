// Package cache provides the memoizing layer in front of the forecast usecase.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"stock_predictor/internal/feature/forecast/domain/entity"
)

// DefaultTTL はキャッシュエントリの保持期間のデフォルト値（10分）です。
const DefaultTTL = 600 * time.Second

// Forecaster は予測処理を抽象化します。
// Goの慣例に従い、インターフェースは利用者（cache）側で定義します。
type Forecaster interface {
	Forecast(ctx context.Context, symbol string) (entity.ForecastResult, error)
}

// outcome は1銘柄の予測結果（成功・失敗どちらも）とその記録時刻です。
type outcome struct {
	result     entity.ForecastResult
	err        error
	insertedAt time.Time
}

// MemoizingForecaster は Forecaster をTTL付きメモ化でデコレートします。
//
// キーは銘柄のみです（予測はホライズン等のリクエストパラメータに依存しないため）。
// 失敗した結果も成功と同様にTTLいっぱいキャッシュします。これは、ストアが
// 一時的に落ちている間にクライアントのポーリングが推論とストアを叩き続ける
// のを防ぐための意図的な設計です。エビクションは時間経過のみで、明示的な
// 無効化はありません。
//
// キャッシュミス時の計算は銘柄ごとに最大1つしか実行されません（single-flight）。
// 同じ銘柄への並行リクエストはその1つの計算結果を共有し、別銘柄同士は
// 互いにブロックしません。
type MemoizingForecaster struct {
	inner Forecaster
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]outcome
	group   singleflight.Group
}

var _ Forecaster = (*MemoizingForecaster)(nil)

// NewMemoizingForecaster は Forecaster をメモ化でデコレートします。
// ttl が0以下の場合は10分にフォールバックします。
func NewMemoizingForecaster(inner Forecaster, ttl time.Duration) *MemoizingForecaster {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoizingForecaster{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]outcome),
	}
}

// Forecast はTTL内の記録があればそれを返し、無ければ内側を1回だけ呼び出して
// 結果（成功・失敗を問わず）を現在時刻とともに記録します。
func (c *MemoizingForecaster) Forecast(ctx context.Context, symbol string) (entity.ForecastResult, error) {
	if out, ok := c.lookup(symbol); ok {
		return out.result, out.err
	}

	v, _, _ := c.group.Do(symbol, func() (any, error) {
		// 待機中に別の呼び出しが記録し終えている場合がある
		if out, ok := c.lookup(symbol); ok {
			return out, nil
		}

		// 計算結果は全呼び出し元で共有されるため、最初の呼び出し元の
		// キャンセルが共有結果を失敗で汚染しないよう切り離す
		res, err := c.inner.Forecast(context.WithoutCancel(ctx), symbol)
		out := outcome{result: res, err: err, insertedAt: c.now()}

		c.mu.Lock()
		c.entries[symbol] = out
		c.mu.Unlock()

		return out, nil
	})

	out := v.(outcome)
	return out.result, out.err
}

// lookup は未失効のエントリを返します。失効分は上書きされるまで残りますが、
// エントリ数は銘柄数で有界なので掃除は行いません。
func (c *MemoizingForecaster) lookup(symbol string) (outcome, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out, ok := c.entries[symbol]
	if !ok || c.now().Sub(out.insertedAt) >= c.ttl {
		return outcome{}, false
	}
	return out, true
}
