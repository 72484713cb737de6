package dto

// SymbolItem は銘柄一覧レスポンスの1件分です。
type SymbolItem struct {
	Code        string `json:"code"`         // 銘柄コード
	ModelStatus string `json:"model_status"` // モデルのロード状態
}
