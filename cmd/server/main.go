package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_predictor/internal/app/di"
	"stock_predictor/internal/app/router"
	chartusecase "stock_predictor/internal/feature/chart/usecase"
	"stock_predictor/internal/feature/forecast/adapters"
	forecastcache "stock_predictor/internal/feature/forecast/cache"
	"stock_predictor/internal/feature/forecast/registry"
	forecastusecase "stock_predictor/internal/feature/forecast/usecase"
	symbollistusecase "stock_predictor/internal/feature/symbollist/usecase"
	infradb "stock_predictor/internal/platform/db"
	infraredis "stock_predictor/internal/platform/redis"

	charthandler "stock_predictor/internal/feature/chart/transport/handler"
	forecasthandler "stock_predictor/internal/feature/forecast/transport/handler"
	symbollisthandler "stock_predictor/internal/feature/symbollist/transport/handler"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without history cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// モデルレジストリ（起動時に一度だけロード、以後読み取り専用）
	tickers := splitEnvList("TICKERS", "AAPL,BTC-USD,SPY")
	modelsDir := envDefault("MODELS_DIR", "models")
	reg := registry.Load(adapters.NewArtifactDir(modelsDir), tickers)

	// Repository（RedisがあればキャッシュつきでDBを読む）
	historyStore := di.NewHistoryStore(rdb, db, 5*time.Minute)

	// Usecase
	historyLimit := envInt("HISTORY_LIMIT", forecastusecase.DefaultHistoryLimit)
	forecastUC := forecastusecase.NewForecastUsecase(reg, historyStore, historyLimit)

	// リクエストキャッシュ（銘柄単位のメモ化＋single-flight）
	ttl := time.Duration(envInt("FORECAST_CACHE_TTL_SECONDS", 600)) * time.Second
	cachedForecaster := forecastcache.NewMemoizingForecaster(forecastUC, ttl)

	chartUC := chartusecase.NewChartUsecase(cachedForecaster)
	symbolUC := symbollistusecase.NewSymbolUsecase(reg)

	// Handler
	forecastH := forecasthandler.NewForecastHandler(cachedForecaster)
	chartH := charthandler.NewChartHandler(chartUC)
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)

	// ルータ生成（CORS込み）
	router := router.NewRouter(forecastH, chartH, symbolH)

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

// envDefault は環境変数を読み、未設定ならデフォルト値を返します。
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envInt は整数の環境変数を読み、未設定・不正ならデフォルト値を返します。
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s=%q is not an integer; using %d", key, v, def)
		return def
	}
	return n
}

// splitEnvList はカンマ区切りの環境変数をパースします。
func splitEnvList(key, def string) []string {
	parts := strings.Split(envDefault(key, def), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
