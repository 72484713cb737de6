package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// artifact はモデルアーティファクトのJSON表現です。
// family でモデルファミリーを判別し、残りのフィールドをファミリーごとに解釈します。
type artifact struct {
	Family    string  `json:"family"`
	Origin    string  `json:"origin"` // トレンドの基準日（"2006-01-02"）
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
	Terms     []struct {
		PeriodDays float64 `json:"period_days"`
		Sin        float64 `json:"sin"`
		Cos        float64 `json:"cos"`
	} `json:"terms,omitempty"`
}

// Decode はシリアライズ済みアーティファクトを対応するファミリーのModelに復元します。
// 未知のファミリーや欠損・不正なフィールドは ErrInvalidArtifact として報告します。
func Decode(data []byte) (Model, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	origin, err := time.Parse("2006-01-02", a.Origin)
	if err != nil {
		return nil, fmt.Errorf("%w: bad origin %q", ErrInvalidArtifact, a.Origin)
	}

	switch a.Family {
	case "linear":
		return &linearModel{origin: origin, intercept: a.Intercept, slope: a.Slope}, nil
	case "seasonal":
		terms := make([]seasonalTerm, 0, len(a.Terms))
		for _, t := range a.Terms {
			if t.PeriodDays <= 0 {
				return nil, fmt.Errorf("%w: non-positive period %v", ErrInvalidArtifact, t.PeriodDays)
			}
			terms = append(terms, seasonalTerm{periodDays: t.PeriodDays, sin: t.Sin, cos: t.Cos})
		}
		return &seasonalModel{origin: origin, intercept: a.Intercept, slope: a.Slope, terms: terms}, nil
	default:
		return nil, fmt.Errorf("%w: unknown family %q", ErrInvalidArtifact, a.Family)
	}
}
