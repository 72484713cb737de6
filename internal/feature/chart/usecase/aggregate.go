package usecase

import (
	"sort"
	"time"

	chartentity "stock_predictor/internal/feature/chart/domain/entity"
	"stock_predictor/internal/feature/forecast/domain/entity"
)

// Aggregate は複数銘柄の予測結果を共通の日付軸に揃えた1つのテーブルへ統合します。
//
// 銘柄ごとに2本の系列を作ります:
//   - 履歴系列: 日付 → 終値
//   - 予測系列: 2点のブリッジ（最終観測日 → 最終終値、予測対象日 → 予測値）。
//     ブリッジにより予測線が履歴線と途切れず接続されます。
//
// cutoff = now − horizonDays より厳密に前の点は、マージ前に銘柄ごとに独立して
// 捨てられます。マージは日付の完全外部結合で、ある銘柄に値が無い日付のセルは
// nil のままです。I/Oも乱数も使わないため、同じ入力と now に対して出力は常に
// 同一です。
func Aggregate(results []entity.ForecastResult, horizonDays int, now time.Time) chartentity.Table {
	cutoff := now.AddDate(0, 0, -horizonDays)

	columns := make([]chartentity.Column, 0, 2*len(results))
	cells := make(map[time.Time][]*float64)
	col := 0

	put := func(d time.Time, c int, v float64) {
		row, ok := cells[d]
		if !ok {
			row = make([]*float64, 2*len(results))
			cells[d] = row
		}
		val := v
		row[c] = &val
	}

	for _, res := range results {
		columns = append(columns,
			chartentity.Column{Symbol: res.Symbol, Kind: chartentity.KindHistorical},
			chartentity.Column{Symbol: res.Symbol, Kind: chartentity.KindForecast},
		)

		// 履歴系列（ホライズンでフィルタ）
		for _, p := range res.History {
			d := day(p.Date)
			if d.Before(cutoff) {
				continue
			}
			put(d, col, p.Price)
		}

		// 予測系列: 最終観測点から予測対象日へのブリッジ。
		// 履歴が空の場合は接続元が無いので予測点のみを置く。
		if len(res.History) > 0 {
			last := res.History[len(res.History)-1]
			if d := day(last.Date); !d.Before(cutoff) {
				put(d, col+1, last.Price)
			}
		}
		if d := day(res.Target); !d.Before(cutoff) {
			put(d, col+1, res.Prediction)
		}

		col += 2
	}

	rows := make([]chartentity.Row, 0, len(cells))
	for d, c := range cells {
		rows = append(rows, chartentity.Row{Date: d, Cells: c})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	return chartentity.Table{Columns: columns, Rows: rows}
}

// day は日付軸での結合のためにタイムスタンプを日単位(UTC)へ正規化します。
func day(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
