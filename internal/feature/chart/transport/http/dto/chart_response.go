package dto

// ColumnItem は系列1本分のメタデータです。
type ColumnItem struct {
	Symbol string `json:"symbol"` // 銘柄コード
	Kind   string `json:"kind"`   // "historical" または "forecast"
}

// RowItem は共通日付軸上の1行です。Values は columns と同じ並びで、
// その日付に値が無い系列は null になります。
type RowItem struct {
	Date   string     `json:"date"` // ISO-8601 日付
	Values []*float64 `json:"values"`
}

// SymbolErrorItem はチャートから除外された銘柄とその理由です。
type SymbolErrorItem struct {
	Symbol string `json:"symbol"`
	Error  string `json:"error"`
}

// ChartResponse は時間軸を揃えたマルチ銘柄チャートのレスポンスDTOです。
type ChartResponse struct {
	Columns []ColumnItem      `json:"columns"`
	Rows    []RowItem         `json:"rows"`
	Errors  []SymbolErrorItem `json:"errors"`
}
