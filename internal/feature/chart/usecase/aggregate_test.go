package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chartentity "stock_predictor/internal/feature/chart/domain/entity"
	"stock_predictor/internal/feature/forecast/domain/entity"
)

// d は日単位(UTC)のタイムスタンプを生成するテストヘルパーです。
func d(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// cell はテーブルから (date, column) のセルを引くテストヘルパーです。
func cell(t *testing.T, table chartentity.Table, date time.Time, symbol string, kind chartentity.ColumnKind) *float64 {
	t.Helper()

	col := -1
	for i, c := range table.Columns {
		if c.Symbol == symbol && c.Kind == kind {
			col = i
			break
		}
	}
	require.NotEqual(t, -1, col, "column %s/%s not found", symbol, kind)

	for _, row := range table.Rows {
		if row.Date.Equal(date) {
			return row.Cells[col]
		}
	}
	t.Fatalf("row for %v not found", date)
	return nil
}

// TestAggregate_BridgeAndJoin は履歴系列・2点ブリッジの予測系列・日付の外部結合を検証します。
func TestAggregate_BridgeAndJoin(t *testing.T) {
	t.Parallel()

	now := d(2024, 3, 10).Add(12 * time.Hour)
	tomorrow := d(2024, 3, 11)

	results := []entity.ForecastResult{
		{
			Symbol:     "AAPL",
			Prediction: 105.0,
			Target:     tomorrow.Add(12 * time.Hour),
			History: []entity.HistoryPoint{
				{Date: d(2024, 3, 8), Price: 100},
				{Date: d(2024, 3, 9), Price: 102},
				{Date: d(2024, 3, 10), Price: 101},
			},
		},
		{
			Symbol:     "SPY",
			Prediction: 510.0,
			Target:     tomorrow.Add(12 * time.Hour),
			History: []entity.HistoryPoint{
				// AAPLには無い日付 (3/7) を含む
				{Date: d(2024, 3, 7), Price: 498},
				{Date: d(2024, 3, 10), Price: 500},
			},
		},
	}

	table := Aggregate(results, 30, now)

	// 銘柄ごとに履歴と予測の2列
	require.Len(t, table.Columns, 4)

	// 外部結合: どちらかの銘柄に現れる日付がちょうど1行ずつ
	dates := make([]time.Time, 0, len(table.Rows))
	for _, r := range table.Rows {
		dates = append(dates, r.Date)
	}
	assert.Equal(t, []time.Time{
		d(2024, 3, 7), d(2024, 3, 8), d(2024, 3, 9), d(2024, 3, 10), d(2024, 3, 11),
	}, dates)

	// 履歴セル
	require.NotNil(t, cell(t, table, d(2024, 3, 8), "AAPL", chartentity.KindHistorical))
	assert.Equal(t, 100.0, *cell(t, table, d(2024, 3, 8), "AAPL", chartentity.KindHistorical))

	// SPYが持たない日付のセルは nil のまま（ゼロ埋め・補間をしない）
	assert.Nil(t, cell(t, table, d(2024, 3, 8), "SPY", chartentity.KindHistorical))
	assert.Nil(t, cell(t, table, d(2024, 3, 7), "AAPL", chartentity.KindHistorical))

	// 予測ブリッジ: 最終観測点と翌日の2点で、履歴線と途切れず接続される
	assert.Equal(t, 101.0, *cell(t, table, d(2024, 3, 10), "AAPL", chartentity.KindForecast))
	assert.Equal(t, 105.0, *cell(t, table, d(2024, 3, 11), "AAPL", chartentity.KindForecast))
	assert.Equal(t, 500.0, *cell(t, table, d(2024, 3, 10), "SPY", chartentity.KindForecast))
	assert.Equal(t, 510.0, *cell(t, table, d(2024, 3, 11), "SPY", chartentity.KindForecast))

	// ブリッジ以外の日付に予測セルは無い
	assert.Nil(t, cell(t, table, d(2024, 3, 8), "AAPL", chartentity.KindForecast))
}

// TestAggregate_HorizonFilter はカットオフより前の点が銘柄ごとに捨てられることを検証します。
func TestAggregate_HorizonFilter(t *testing.T) {
	t.Parallel()

	now := d(2024, 3, 31)
	results := []entity.ForecastResult{
		{
			Symbol:     "AAPL",
			Prediction: 105.0,
			Target:     d(2024, 4, 1),
			History: []entity.HistoryPoint{
				{Date: d(2024, 1, 15), Price: 90}, // 30日ホライズンの範囲外
				{Date: d(2024, 3, 15), Price: 100},
				{Date: d(2024, 3, 30), Price: 101},
			},
		},
	}

	table := Aggregate(results, 30, now)

	cutoff := now.AddDate(0, 0, -30)
	for _, row := range table.Rows {
		assert.False(t, row.Date.Before(cutoff), "row %v is before cutoff %v", row.Date, cutoff)
	}
	// 範囲外の 1/15 は行ごと消える（他の系列にも存在しないため）
	assert.Len(t, table.Rows, 3)
}

// TestAggregate_Deterministic は同じ入力と now に対して出力が同一であることを検証します。
func TestAggregate_Deterministic(t *testing.T) {
	t.Parallel()

	now := d(2024, 3, 10)
	results := []entity.ForecastResult{
		{
			Symbol:     "AAPL",
			Prediction: 105.0,
			Target:     d(2024, 3, 11),
			History: []entity.HistoryPoint{
				{Date: d(2024, 3, 9), Price: 100},
				{Date: d(2024, 3, 10), Price: 101},
			},
		},
	}

	first := Aggregate(results, 365, now)
	second := Aggregate(results, 365, now)

	assert.Equal(t, first, second)
}

// TestAggregate_EmptyHistory は履歴を持たない結果でもパニックせず、
// 予測点のみの系列になることを検証します。
func TestAggregate_EmptyHistory(t *testing.T) {
	t.Parallel()

	now := d(2024, 3, 10)
	results := []entity.ForecastResult{
		{
			Symbol:     "AAPL",
			Prediction: 105.0,
			Target:     d(2024, 3, 11),
			History:    nil,
		},
	}

	table := Aggregate(results, 365, now)

	require.Len(t, table.Columns, 2)
	require.Len(t, table.Rows, 1)
	// ブリッジの接続元が無いので予測点だけが置かれる
	assert.Equal(t, 105.0, *cell(t, table, d(2024, 3, 11), "AAPL", chartentity.KindForecast))
	assert.Nil(t, cell(t, table, d(2024, 3, 11), "AAPL", chartentity.KindHistorical))
}

// TestAggregate_Empty は入力が空でも整形済みの空テーブルが返ることを検証します。
func TestAggregate_Empty(t *testing.T) {
	t.Parallel()

	table := Aggregate(nil, 365, d(2024, 3, 10))

	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)
}
