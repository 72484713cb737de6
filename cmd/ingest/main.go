package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"stock_predictor/internal/app/di"
	"stock_predictor/internal/feature/forecast/adapters"
	"stock_predictor/internal/feature/ingest/usecase"
	infradb "stock_predictor/internal/platform/db"
	"stock_predictor/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	db := infradb.OpenDB()

	// スキーマ作成はインジェストジョブの責務（サーバは既存テーブルを読むだけ）
	if err := db.AutoMigrate(&adapters.MarketDataModel{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	marketRepo := di.NewMarket()
	historyRepo := adapters.NewHistoryRepository(db)

	// 無料枠のレートリミット（8リクエスト/分）に合わせる
	limiter := ratelimiter.NewRateLimiter(8, time.Minute)
	uc := usecase.NewIngestUsecase(marketRepo, historyRepo, limiter)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	tickers := splitList(os.Getenv("TICKERS"), "AAPL,BTC-USD,SPY")
	if err := uc.IngestAll(ctx, tickers); err != nil {
		log.Fatal(err)
	}
	log.Println("ingest ok")
}

// splitList はカンマ区切りリストをパースし、空なら fallback を使用します。
func splitList(s, fallback string) []string {
	if s == "" {
		s = fallback
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
