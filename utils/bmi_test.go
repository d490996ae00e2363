package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(180, 81)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, bmi, 0.01)
	assert.Equal(t, "Overweight", BMICategory(bmi))

	_, err = CalculateBMI(0, 70)
	assert.Error(t, err)
	_, err = CalculateBMI(300, 70)
	assert.Error(t, err)
}

func TestBMICategory(t *testing.T) {
	assert.Equal(t, "Underweight", BMICategory(18.4))
	assert.Equal(t, "Normal", BMICategory(18.5))
	assert.Equal(t, "Normal", BMICategory(24.9))
	assert.Equal(t, "Obese", BMICategory(30))
}

func TestCalculateBMR(t *testing.T) {
	male := CalculateBMR("Male", 70, 175, 25)
	assert.InDelta(t, 88.362+13.397*70+4.799*175-5.677*25, male, 0.001)

	female := CalculateBMR("Female", 60, 165, 30)
	assert.InDelta(t, 447.593+9.247*60+3.098*165-4.330*30, female, 0.001)
}

func TestActivityFactorAndDailyCalories(t *testing.T) {
	assert.Equal(t, 1.55, ActivityFactor("Moderate"))
	assert.Equal(t, 1.2, ActivityFactor("Couch"))

	assert.Equal(t, 1500.0, DailyCalories(2000, "Weight Loss"))
	assert.Equal(t, 2500.0, DailyCalories(2000, "Weight Gain"))
	assert.Equal(t, 2000.0, DailyCalories(2000, "Strength"))
}
