// Package tools holds the static plan generators: BMR, meal plans, workout
// plans and recipes. They are pure functions over profile data and tables.
package tools

import (
	"math"

	"github.com/arturoeanton/health-planner/internal/domain"
)

// CalculateBMR estimates the basal metabolic rate with the Mifflin–St Jeor
// equation. Age is in years, weight in kg, height in cm. Genders other than
// male and female get the mean of both formulas. The result is rounded to
// two decimals.
func CalculateBMR(age, weight, height float64, gender string) float64 {
	base := 10*weight + 6.25*height - 5*age
	male := base + 5
	female := base - 161

	var bmr float64
	switch gender {
	case domain.GenderMale:
		bmr = male
	case domain.GenderFemale:
		bmr = female
	default:
		bmr = (male + female) / 2
	}
	return round2(bmr)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
