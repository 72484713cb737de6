package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stock_predictor/internal/feature/forecast/domain/entity"
	"stock_predictor/internal/feature/forecast/usecase"
)

// historyGorm は market_data テーブルを参照するHistoryRepository実装です。
type historyGorm struct {
	db *gorm.DB
}

var _ usecase.HistoryRepository = (*historyGorm)(nil)

// NewHistoryRepository は指定されたDB接続でhistoryGormリポジトリの新しいインスタンスを生成します。
func NewHistoryRepository(db *gorm.DB) *historyGorm {
	return &historyGorm{db: db}
}

// MarketDataModel は日次終値1件分の永続化モデルです。
// 外部のインジェストジョブが投入する market_data テーブルに対応します。
type MarketDataModel struct {
	ID     uint      `gorm:"primaryKey"`
	Ticker string    `gorm:"size:20;not null;uniqueIndex:market_data_ticker_date,priority:1"`
	Date   time.Time `gorm:"not null;uniqueIndex:market_data_ticker_date,priority:2"`
	Price  float64   `gorm:"not null"`
}

func (MarketDataModel) TableName() string {
	return "market_data"
}

// FetchRecent は銘柄の直近 limit 件を日付降順で取得し、昇順に並べ直して返します。
// 行が存在しない場合は空スライスを返します（エラーではない）。
func (r *historyGorm) FetchRecent(ctx context.Context, symbol string, limit int) ([]entity.HistoryPoint, error) {
	var rows []MarketDataModel
	q := r.db.WithContext(ctx).
		Where("ticker = ?", symbol).
		Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	// 降順で取得しているので逆順に詰め直して昇順にする
	out := make([]entity.HistoryPoint, len(rows))
	for i, m := range rows {
		out[len(rows)-1-i] = entity.HistoryPoint{Date: m.Date, Price: m.Price}
	}
	return out, nil
}

// UpsertBatch は (ticker, date) をユニークキーとして観測値をUpsertします。
func (r *historyGorm) UpsertBatch(ctx context.Context, symbol string, points []entity.HistoryPoint) error {
	if len(points) == 0 {
		return nil
	}
	ms := make([]MarketDataModel, 0, len(points))
	for _, p := range points {
		ms = append(ms, MarketDataModel{Ticker: symbol, Date: p.Date, Price: p.Price})
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"price"}),
	}).Create(&ms).Error
}
