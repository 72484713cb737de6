// Package usecase は履歴価格の一括取り込みのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"

	"stock_predictor/internal/feature/forecast/domain/entity"
	"stock_predictor/internal/shared/ratelimiter"
)

const (
	// ingestOutputSize は1銘柄あたりに取得する日足の件数（約2年分）です。
	ingestOutputSize = 730
)

// MarketRepository は株価データを取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetDailyCloses(ctx context.Context, symbol string, outputsize int) ([]entity.HistoryPoint, error)
}

// HistoryWriter は取得した観測値の永続化を抽象化します。
type HistoryWriter interface {
	UpsertBatch(ctx context.Context, symbol string, points []entity.HistoryPoint) error
}

// IngestUsecase は外部APIから日次終値を取得し、market_data テーブルに
// 永続化するユースケースを定義します。予測サービス本体からは独立した
// ワンショットのジョブです。
type IngestUsecase struct {
	market      MarketRepository
	history     HistoryWriter
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketRepository, history HistoryWriter, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, history: history, rateLimiter: rateLimiter}
}

// ingestOne は1銘柄の日次終値を外部リポジトリから取得し、データベースに
// 一括で挿入（または更新）します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol string, outputsize int) error {
	points, err := iu.market.GetDailyCloses(ctx, symbol, outputsize)
	if err != nil {
		return err
	}
	return iu.history.UpsertBatch(ctx, symbol, points)
}

// IngestAll は指定された全銘柄の日次終値を取得し、データベースに永続化します。
// APIのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) error {
	for _, s := range symbols {
		iu.rateLimiter.WaitIfNeeded()
		if err := iu.ingestOne(ctx, s, ingestOutputSize); err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
			slog.Error("failed to ingest data", "symbol", s, "error", err)
			continue
		}
		slog.Info("ingested symbol", "symbol", s)
	}
	return nil
}
