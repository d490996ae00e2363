package utils

import (
	"errors"
	"strings"
)

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0 // to meters
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// CalculateBMR uses the revised Harris-Benedict equations. Anything other
// than "Male" takes the female constants.
func CalculateBMR(gender string, weightKg, heightCm float64, age int) float64 {
	a := float64(age)
	if strings.EqualFold(gender, "Male") {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*a
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*a
}

var activityFactors = map[string]float64{
	"Sedentary": 1.2,
	"Light":     1.375,
	"Moderate":  1.55,
	"Heavy":     1.725,
}

// ActivityFactor defaults to sedentary for unknown levels.
func ActivityFactor(level string) float64 {
	if f, ok := activityFactors[level]; ok {
		return f
	}
	return 1.2
}

// DailyCalories applies a 500 kcal deficit or surplus for loss/gain goals.
func DailyCalories(tdee float64, goal string) float64 {
	switch goal {
	case "Weight Loss":
		return tdee - 500
	case "Weight Gain":
		return tdee + 500
	default:
		return tdee
	}
}
