package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// FlexInt reads a JSON number, a numeric string or a leading count such as
// "4 days". An empty string or null reads as zero.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*n = 0
	case float64:
		*n = FlexInt(x)
	case string:
		fields := strings.Fields(x)
		if len(fields) == 0 {
			*n = 0
			return nil
		}
		i, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("expected a number, got %q", x)
		}
		*n = FlexInt(i)
	default:
		return fmt.Errorf("expected a number, got %s", string(b))
	}
	return nil
}

type PlanSettings struct {
	Goal            string  `json:"goal"`
	ExperienceLevel string  `json:"experienceLevel"`
	DaysPerWeek     FlexInt `json:"daysPerWeek"`
	DietType        string  `json:"dietType"`
	CalorieTarget   FlexInt `json:"calorieTarget,omitempty"`
}

type PlannedExercise struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PrimaryMuscle string `json:"primaryMuscle"`
	Equipment     string `json:"equipment"`
	Difficulty    string `json:"difficulty"`
	SetsReps      string `json:"setsReps"`
}

type WorkoutDay struct {
	Day       string            `json:"day"`
	Focus     string            `json:"focus"`
	Muscles   []string          `json:"muscles"`
	Exercises []PlannedExercise `json:"exercises"`
}

type PlannedFood struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

type DietMeals struct {
	Breakfast    []PlannedFood `json:"breakfast"`
	MidSnack     []PlannedFood `json:"midSnack"`
	Lunch        []PlannedFood `json:"lunch"`
	EveningSnack []PlannedFood `json:"eveningSnack"`
	Dinner       []PlannedFood `json:"dinner"`
}

type DietDay struct {
	Day            string    `json:"day"`
	Meals          DietMeals `json:"meals"`
	ApproxCalories int       `json:"approxCalories"`
	ApproxProtein  int       `json:"approxProtein"`
}

// WeeklyPlan is a saved workout + diet week. Settings, workout and diet are
// kept as the JSON the client sent; generated plans encode the typed
// shapes above. At most one plan per user is active.
type WeeklyPlan struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"userId"`
	Name      string         `json:"name"`
	Settings  datatypes.JSON `json:"settings"`
	Workout   datatypes.JSON `json:"workout"`
	Diet      datatypes.JSON `json:"diet"`
	Active    bool           `gorm:"index" json:"active"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func isBlank(doc datatypes.JSON) bool {
	t := bytes.TrimSpace(doc)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Normalize replaces missing sections with {} for settings and [] for the
// workout and diet lists.
func (p *WeeklyPlan) Normalize() {
	if isBlank(p.Settings) {
		p.Settings = datatypes.JSON("{}")
	}
	if isBlank(p.Workout) {
		p.Workout = datatypes.JSON("[]")
	}
	if isBlank(p.Diet) {
		p.Diet = datatypes.JSON("[]")
	}
}

// ParsedSettings reads the stored settings leniently. Unknown or malformed
// fields leave the zero value.
func (p *WeeklyPlan) ParsedSettings() PlanSettings {
	var s PlanSettings
	if isBlank(p.Settings) {
		return s
	}
	if err := json.Unmarshal(p.Settings, &s); err == nil {
		return s
	}
	var loose map[string]any
	if err := json.Unmarshal(p.Settings, &loose); err == nil {
		s.Goal, _ = loose["goal"].(string)
		s.ExperienceLevel, _ = loose["experienceLevel"].(string)
		s.DietType, _ = loose["dietType"].(string)
	}
	return s
}

// EncodeSection marshals a typed section for storage.
func EncodeSection(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}
