package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	charthandler "stock_predictor/internal/feature/chart/transport/handler"
	forecasthandler "stock_predictor/internal/feature/forecast/transport/handler"
	symbollisthandler "stock_predictor/internal/feature/symbollist/transport/handler"
)

func NewRouter(forecast *forecasthandler.ForecastHandler, chart *charthandler.ChartHandler,
	symbol *symbollisthandler.SymbolHandler) *gin.Engine {
	r := gin.Default()

	// CORS追加（ダッシュボードはブラウザから叩くため、ルート登録より前に適用する）
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/healthz", Health)

	// 1銘柄の翌日予測
	r.GET("/predict/:symbol", forecast.GetForecastHandler)
	// 複数銘柄のチャート用テーブル（外部結合済み）
	r.GET("/chart", chart.GetChartHandler)
	// 銘柄セレクタ用の一覧
	r.GET("/symbols", symbol.List)

	return r
}
