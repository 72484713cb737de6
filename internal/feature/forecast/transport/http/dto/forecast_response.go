package dto

// HistoryItem は履歴1点分のレスポンスDTOです。
type HistoryItem struct {
	Date  string  `json:"date"`  // ISO-8601 日付
	Price float64 `json:"price"` // 終値
}

// ForecastResponse は翌日予測のレスポンスDTOです。
type ForecastResponse struct {
	Symbol     string        `json:"symbol"`     // 銘柄コード
	Prediction float64       `json:"prediction"` // 予測値（小数第2位）
	Delta      float64       `json:"delta"`      // 直近終値との差分（小数第2位）
	History    []HistoryItem `json:"history"`    // 直近の観測（日付昇順）
}
