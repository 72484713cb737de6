// Package usecase はマルチ銘柄チャートの集約ロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	chartentity "stock_predictor/internal/feature/chart/domain/entity"
	"stock_predictor/internal/feature/forecast/domain"
	"stock_predictor/internal/feature/forecast/domain/entity"
)

// DefaultHorizonDays はホライズン未指定時のデフォルト（1年）です。
const DefaultHorizonDays = 365

// ErrInvalidHorizon は定義済みホライズン以外が指定されたことを示します。
var ErrInvalidHorizon = errors.New("invalid horizon")

// Horizon は表示フィルタ用の固定ホライズン1つ分です。推論には影響しません。
type Horizon struct {
	Label string
	Days  int
}

// Horizons は選択可能なホライズンの一覧です（フロントの表示順）。
var Horizons = []Horizon{
	{Label: "1mo", Days: 30},
	{Label: "2mo", Days: 60},
	{Label: "3mo", Days: 90},
	{Label: "6mo", Days: 180},
	{Label: "1y", Days: 365},
	{Label: "2y", Days: 730},
}

// ValidHorizon は days が定義済みホライズンかどうかを返します。
func ValidHorizon(days int) bool {
	for _, h := range Horizons {
		if h.Days == days {
			return true
		}
	}
	return false
}

// Forecaster は1銘柄の予測取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Forecaster interface {
	Forecast(ctx context.Context, symbol string) (entity.ForecastResult, error)
}

// ChartUsecase は銘柄集合とホライズンから時系列チャート用のテーブルを組み立てます。
type ChartUsecase struct {
	forecaster Forecaster
}

// NewChartUsecase はChartUsecaseの新しいインスタンスを生成します。
func NewChartUsecase(forecaster Forecaster) *ChartUsecase {
	return &ChartUsecase{forecaster: forecaster}
}

// BuildChart は各銘柄の予測を（キャッシュ経由で）取得し、時間軸を揃えた
// テーブルと銘柄別エラーの一覧を返します。1銘柄の失敗が他の銘柄の表示を
// 妨げることはありません。全銘柄が失敗した場合も、空のテーブルとエラー一覧を
// 返します（リクエスト全体は失敗させない）。
func (cu *ChartUsecase) BuildChart(ctx context.Context, symbols []string, horizonDays int) (chartentity.Table, []chartentity.SymbolError, error) {
	if horizonDays == 0 {
		horizonDays = DefaultHorizonDays
	}
	if !ValidHorizon(horizonDays) {
		return chartentity.Table{}, nil, fmt.Errorf("%w: %d days", ErrInvalidHorizon, horizonDays)
	}

	symbols = dedup(symbols)

	// 銘柄ごとの予測は独立なので並行で取得する。同一銘柄の多重計算は
	// キャッシュ層のsingle-flightが抑止する。
	outcomes := make([]error, len(symbols))
	results := make([]entity.ForecastResult, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range symbols {
		i, s := i, s
		g.Go(func() error {
			results[i], outcomes[i] = cu.forecaster.Forecast(gctx, s)
			return nil
		})
	}
	_ = g.Wait() // ワーカーはエラーを outcomes に格納するため常に nil

	ok := make([]entity.ForecastResult, 0, len(symbols))
	var errs []chartentity.SymbolError
	for i, s := range symbols {
		if outcomes[i] != nil {
			errs = append(errs, chartentity.SymbolError{Symbol: s, Message: errMessage(outcomes[i])})
			continue
		}
		ok = append(ok, results[i])
	}

	return Aggregate(ok, horizonDays, time.Now()), errs, nil
}

// errMessage はドメインエラーを銘柄別表示用のメッセージへ対応付けます。
func errMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		return "no forecasting model loaded"
	case errors.Is(err, domain.ErrDataUnavailable):
		return "historical data not available"
	case errors.Is(err, domain.ErrInferenceFailed):
		return "prediction failed"
	default:
		return err.Error()
	}
}

// dedup は順序を保ったまま重複銘柄を取り除きます。
func dedup(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
