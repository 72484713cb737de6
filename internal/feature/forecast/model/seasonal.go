package model

import (
	"fmt"
	"math"
	"time"
)

// seasonalTerm は加法的な周期成分（フーリエ項）1つ分の係数です。
type seasonalTerm struct {
	periodDays float64
	sin        float64
	cos        float64
}

// seasonalModel は線形トレンドに周期成分を加えたモデルファミリーです。
// Prophet 系のフィットから書き出されるアーティファクトを想定しています。
type seasonalModel struct {
	origin    time.Time
	intercept float64
	slope     float64
	terms     []seasonalTerm
}

var _ Model = (*seasonalModel)(nil)

// Predict はトレンドと周期成分の和を返します。
func (m *seasonalModel) Predict(t time.Time) (float64, error) {
	days := t.Sub(m.origin).Hours() / 24

	v := m.intercept + m.slope*days
	for _, term := range m.terms {
		theta := 2 * math.Pi * days / term.periodDays
		v += term.sin*math.Sin(theta) + term.cos*math.Cos(theta)
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidOutput, v)
	}
	return v, nil
}
