package model

import (
	"fmt"
	"math"
	"time"
)

// linearModel は線形トレンドのみのモデルファミリーです。
// 価格 = intercept + slope × (origin からの経過日数)
type linearModel struct {
	origin    time.Time
	intercept float64
	slope     float64
}

var _ Model = (*linearModel)(nil)

// Predict は指定時刻の価格推定値を返します。
func (m *linearModel) Predict(t time.Time) (float64, error) {
	days := t.Sub(m.origin).Hours() / 24
	v := m.intercept + m.slope*days
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOutput, v)
	}
	return v, nil
}
