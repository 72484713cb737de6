// Package db provides the gorm database connection for the service.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"stock_predictor/internal/feature/forecast/adapters"
)

// Config holds the database connection settings.
type Config struct {
	URL      string // Full DSN/URL; takes precedence over the individual fields
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// LoadConfig reads database settings from environment variables.
// DATABASE_URL wins over the individual DB_* variables.
func LoadConfig() Config {
	return Config{
		URL:      os.Getenv("DATABASE_URL"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
	}
}

// BuildDSN はConfigからPostgres接続文字列を組み立てます。
// URL が設定されている場合はそれをそのまま使用します。
func BuildDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		host, port, cfg.User, cfg.Password, cfg.Name)
}

// Opener opens a gorm connection for a DSN. Injected so retry logic is testable.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は接続が成功するまで、またはtimeoutを超えるまで3秒間隔で
// 接続を試行します。コンテナ起動直後にDBがまだ受け付けていないケースへの対応です。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %v: %w", timeout, err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB は環境変数の設定でPostgresへ接続します。接続できない場合はプロセスを
// 終了します。DB_DRIVER=sqlite のときはローカル開発用にSQLiteファイルを開きます。
// RUN_MIGRATIONS=true の場合のみスキーマを作成します。
func OpenDB() *gorm.DB {
	var db *gorm.DB
	var err error

	if os.Getenv("DB_DRIVER") == "sqlite" {
		// ローカル開発用（今回はSQLite）
		dbPath := os.Getenv("SQLITE_PATH")
		if dbPath == "" {
			dbPath = "./stock.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
		if err == nil {
			log.Println("USING_SQLITE:", dbPath)
		}
	} else {
		dsn := BuildDSN(LoadConfig())
		db, err = ConnectWithRetry(dsn, 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
		})
	}
	if err != nil {
		log.Fatal(err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（market_data）
		if err := db.AutoMigrate(&adapters.MarketDataModel{}); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
