package models

import (
	"fmt"
	"math"
)

// Rating - агрегат оценок: среднее считается только из гистограммы
type Rating struct {
	Average   float64         `gorm:"column:average;type:numeric(2,1);not null;default:0" json:"average"`
	Count     int64           `gorm:"column:count;not null;default:0" json:"count"`
	Breakdown RatingBreakdown `gorm:"embedded;embeddedPrefix:breakdown_" json:"breakdown"`
}

type RatingBreakdown struct {
	One   int64 `gorm:"column:one;not null;default:0" json:"1"`
	Two   int64 `gorm:"column:two;not null;default:0" json:"2"`
	Three int64 `gorm:"column:three;not null;default:0" json:"3"`
	Four  int64 `gorm:"column:four;not null;default:0" json:"4"`
	Five  int64 `gorm:"column:five;not null;default:0" json:"5"`
}

// Add учитывает одну оценку от 1 до 5
func (r *Rating) Add(stars int) error {
	switch stars {
	case 1:
		r.Breakdown.One++
	case 2:
		r.Breakdown.Two++
	case 3:
		r.Breakdown.Three++
	case 4:
		r.Breakdown.Four++
	case 5:
		r.Breakdown.Five++
	default:
		return fmt.Errorf("rating must be between 1 and 5, got %d", stars)
	}
	r.Recalculate()
	return nil
}

// Recalculate приводит Count и Average к гистограмме
func (r *Rating) Recalculate() {
	b := r.Breakdown
	r.Count = b.Total()
	if r.Count == 0 {
		r.Average = 0
		return
	}
	sum := b.One + 2*b.Two + 3*b.Three + 4*b.Four + 5*b.Five
	r.Average = math.Round(float64(sum)/float64(r.Count)*10) / 10
}

func (b RatingBreakdown) Total() int64 {
	return b.One + b.Two + b.Three + b.Four + b.Five
}
