package services

import (
	"github.com/yigit/atauni/internal/app/models"
	"github.com/yigit/atauni/internal/pkg/helpers"
)

// GradePoints maps a letter grade onto its four point scale value
var GradePoints = map[string]float64{
	"AA": 4.0,
	"BA": 3.5,
	"BB": 3.0,
	"CB": 2.5,
	"CC": 2.0,
	"DC": 1.5,
	"DD": 1.0,
	"FD": 0.5,
	"FF": 0.0,
}

// CalculateGPA computes the credit weighted average of the graded entries.
// Entries without a recognized letter grade contribute neither points nor credits.
func CalculateGPA(grades []*models.Grade) float64 {
	var points float64
	var credits int
	for _, g := range grades {
		if g == nil || g.Grade == nil {
			continue
		}
		value, ok := GradePoints[*g.Grade]
		if !ok {
			continue
		}
		points += value * float64(g.Credit)
		credits += g.Credit
	}
	if credits <= 0 {
		return 0.0
	}
	return helpers.Round2(points / float64(credits))
}
