package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Devak1234/Fitness-Chatbot/catalog"
	"github.com/Devak1234/Fitness-Chatbot/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type splitDay struct {
	day     string
	focus   string
	muscles []string
}

// workoutSplits maps training days per week to the weekly template.
var workoutSplits = map[int][]splitDay{
	3: {
		{"Monday", "Full Body A", []string{"Chest", "Back", "Legs", "Abs"}},
		{"Wednesday", "Full Body B", []string{"Shoulders", "Biceps", "Triceps", "Legs"}},
		{"Friday", "Full Body C", []string{"Chest", "Back", "Abs", "Legs"}},
	},
	4: {
		{"Monday", "Upper Body", []string{"Chest", "Back", "Shoulders", "Biceps", "Triceps"}},
		{"Tuesday", "Lower Body", []string{"Legs", "Abs"}},
		{"Thursday", "Push", []string{"Chest", "Shoulders", "Triceps"}},
		{"Friday", "Pull", []string{"Back", "Biceps", "Abs"}},
	},
	5: {
		{"Monday", "Chest + Triceps", []string{"Chest", "Triceps"}},
		{"Tuesday", "Back + Biceps", []string{"Back", "Biceps"}},
		{"Wednesday", "Legs + Abs", []string{"Legs", "Abs"}},
		{"Thursday", "Shoulders + Abs", []string{"Shoulders", "Abs"}},
		{"Friday", "Full Body", []string{"Chest", "Back", "Legs"}},
	},
	6: {
		{"Monday", "Chest + Triceps", []string{"Chest", "Triceps"}},
		{"Tuesday", "Back + Biceps", []string{"Back", "Biceps"}},
		{"Wednesday", "Legs", []string{"Legs"}},
		{"Thursday", "Shoulders + Abs", []string{"Shoulders", "Abs"}},
		{"Friday", "Full Body", []string{"Chest", "Back", "Legs"}},
		{"Saturday", "Core + Cardio", []string{"Abs"}},
	},
}

var dietDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

const (
	exercisesPerDay = 5
	portionFactor   = 0.8
)

type GenerateInput struct {
	Goal            string         `json:"goal"`
	ExperienceLevel string         `json:"experienceLevel"`
	DaysPerWeek     models.FlexInt `json:"daysPerWeek"`
	DietType        string         `json:"dietType"`
	CalorieTarget   models.FlexInt `json:"calorieTarget"`
	Name            string         `json:"name"`
	Save            bool           `json:"save"`
}

type PlanService struct {
	db  *gorm.DB
	cat *catalog.Catalog
}

func NewPlanService(db *gorm.DB, cat *catalog.Catalog) *PlanService {
	return &PlanService{db: db, cat: cat}
}

// GenerateWorkout builds the weekly split. Unsupported day counts use the
// 4-day split.
func (s *PlanService) GenerateWorkout(settings models.PlanSettings) []models.WorkoutDay {
	split, ok := workoutSplits[int(settings.DaysPerWeek)]
	if !ok {
		split = workoutSplits[4]
	}

	out := make([]models.WorkoutDay, 0, len(split))
	for _, d := range split {
		out = append(out, models.WorkoutDay{
			Day:       d.day,
			Focus:     d.focus,
			Muscles:   d.muscles,
			Exercises: s.dayExercises(d.muscles, settings.ExperienceLevel, settings.Goal),
		})
	}
	return out
}

func (s *PlanService) dayExercises(muscles []string, level, goal string) []models.PlannedExercise {
	in := map[string]bool{}
	for _, m := range muscles {
		in[m] = true
	}
	out := []models.PlannedExercise{}
	for _, e := range s.cat.Exercises {
		if !in[e.PrimaryMuscle] || !strings.EqualFold(e.Difficulty, level) {
			continue
		}
		out = append(out, plannedExercise(e, goal))
		if len(out) == exercisesPerDay {
			break
		}
	}
	return out
}

func plannedExercise(e catalog.Exercise, goal string) models.PlannedExercise {
	return models.PlannedExercise{
		ID:            e.ID,
		Name:          e.Name,
		PrimaryMuscle: e.PrimaryMuscle,
		Equipment:     e.Equipment,
		Difficulty:    e.Difficulty,
		SetsReps:      e.SetsRepsFor(goal),
	}
}

func plannedFoods(foods []catalog.Food) []models.PlannedFood {
	out := make([]models.PlannedFood, 0, len(foods))
	for _, f := range foods {
		out = append(out, models.PlannedFood{ID: f.ID, Name: f.Name, Calories: f.Calories, Protein: f.Protein})
	}
	return out
}

func sliceFoods(foods []catalog.Food, from, to int) []catalog.Food {
	if from > len(foods) {
		from = len(foods)
	}
	if to > len(foods) {
		to = len(foods)
	}
	return foods[from:to]
}

// GenerateDiet builds Monday to Saturday menus from the foods allowed for
// dietType. Every day uses the same selection.
func (s *PlanService) GenerateDiet(dietType string) []models.DietDay {
	available := s.cat.FindFoods(catalog.FoodFilter{DietType: dietType})
	byCategory := func(cat string) []catalog.Food {
		var out []catalog.Food
		for _, f := range available {
			if f.HasCategory(cat) {
				out = append(out, f)
			}
		}
		return out
	}

	vegetarian := byCategory("Vegetarian")
	breakfast := sliceFoods(byCategory("High Protein"), 0, 2)
	lunch := sliceFoods(vegetarian, 0, 3)
	dinner := sliceFoods(vegetarian, 3, 6)
	snacks := sliceFoods(byCategory("Budget Foods"), 0, 2)

	var calories, protein float64
	for _, group := range [][]catalog.Food{breakfast, lunch, dinner, snacks} {
		for _, f := range group {
			calories += f.Calories
			protein += f.Protein
		}
	}

	out := make([]models.DietDay, 0, len(dietDays))
	for _, day := range dietDays {
		meals := models.DietMeals{
			Breakfast:    plannedFoods(breakfast),
			MidSnack:     plannedFoods(sliceFoods(snacks, 0, 1)),
			Lunch:        plannedFoods(lunch),
			EveningSnack: plannedFoods(sliceFoods(snacks, 1, 2)),
			Dinner:       plannedFoods(dinner),
		}
		out = append(out, models.DietDay{
			Day:            day,
			Meals:          meals,
			ApproxCalories: int(math.Round(calories * portionFactor)),
			ApproxProtein:  int(math.Round(protein * portionFactor)),
		})
	}
	return out
}

// Generate fills unset inputs from the caller's profile, then builds the
// plan and optionally saves it.
func (s *PlanService) Generate(ctx context.Context, userID uint, in GenerateInput) (*models.WeeklyPlan, error) {
	settings := models.PlanSettings{
		Goal:            in.Goal,
		ExperienceLevel: in.ExperienceLevel,
		DaysPerWeek:     in.DaysPerWeek,
		DietType:        in.DietType,
		CalorieTarget:   in.CalorieTarget,
	}

	if settings.Goal == "" || settings.DietType == "" {
		var p models.Profile
		err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if settings.Goal == "" {
			settings.Goal = p.Goal
		}
		if settings.DietType == "" {
			settings.DietType = p.DietType
		}
	}
	if settings.Goal == "" {
		settings.Goal = "Weight Loss"
	}
	if settings.DietType == "" {
		settings.DietType = "Veg"
	}
	if settings.ExperienceLevel == "" {
		settings.ExperienceLevel = "Beginner"
	}
	if _, ok := workoutSplits[int(settings.DaysPerWeek)]; !ok {
		settings.DaysPerWeek = 4
	}

	name := in.Name
	if name == "" {
		name = fmt.Sprintf("%s %d-Day Plan", settings.Goal, settings.DaysPerWeek)
	}

	plan := &models.WeeklyPlan{UserID: userID, Name: name}
	var err error
	if plan.Settings, err = models.EncodeSection(settings); err != nil {
		return nil, err
	}
	if plan.Workout, err = models.EncodeSection(s.GenerateWorkout(settings)); err != nil {
		return nil, err
	}
	if plan.Diet, err = models.EncodeSection(s.GenerateDiet(settings.DietType)); err != nil {
		return nil, err
	}
	if !in.Save {
		return plan, nil
	}
	if err := s.db.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) ListPlans(ctx context.Context, userID uint) ([]models.WeeklyPlan, error) {
	plans := []models.WeeklyPlan{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&plans).Error
	return plans, err
}

// CreatePlan stores a client-built plan as-is. Ownership always comes from
// the caller, and a stored plan starts inactive.
func (s *PlanService) CreatePlan(ctx context.Context, userID uint, plan models.WeeklyPlan) (*models.WeeklyPlan, error) {
	plan.ID = 0
	plan.UserID = userID
	plan.Active = false
	plan.Normalize()
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return &plan, nil
}

func (s *PlanService) getOwned(ctx context.Context, db *gorm.DB, userID, id uint) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	err := db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ActivePlan returns nil without error when no plan is active.
func (s *PlanService) ActivePlan(ctx context.Context, userID uint) (*models.WeeklyPlan, error) {
	var plan models.WeeklyPlan
	err := s.db.WithContext(ctx).Where("user_id = ? AND active = ?", userID, true).First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Activate marks one plan active and clears the flag on the others.
func (s *PlanService) Activate(ctx context.Context, userID, id uint) (*models.WeeklyPlan, error) {
	var plan *models.WeeklyPlan
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.getOwned(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.WeeklyPlan{}).
			Where("user_id = ? AND id <> ?", userID, id).
			Update("active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(p).Update("active", true).Error; err != nil {
			return err
		}
		p.Active = true
		plan = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) DeletePlan(ctx context.Context, userID, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.WeeklyPlan{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PlanUpdate replaces the sections that are present. An explicit null
// resets a section to empty.
type PlanUpdate struct {
	Name     *string        `json:"name"`
	Settings datatypes.JSON `json:"settings"`
	Workout  datatypes.JSON `json:"workout"`
	Diet     datatypes.JSON `json:"diet"`
}

func (s *PlanService) UpdatePlan(ctx context.Context, userID, id uint, in PlanUpdate) (*models.WeeklyPlan, error) {
	plan, err := s.getOwned(ctx, s.db, userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		plan.Name = *in.Name
	}
	if in.Settings != nil {
		plan.Settings = in.Settings
	}
	if in.Workout != nil {
		plan.Workout = in.Workout
	}
	if in.Diet != nil {
		plan.Diet = in.Diet
	}
	plan.Normalize()
	if err := s.db.WithContext(ctx).Save(plan).Error; err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}
	return plan, nil
}

// decodeDays reads a stored workout or diet section as a list of day
// objects, keeping every field the client stored.
func decodeDays(doc datatypes.JSON, section string) ([]map[string]any, error) {
	var days []map[string]any
	if err := json.Unmarshal(doc, &days); err != nil {
		return nil, invalidf("stored %s is not a list of days", section)
	}
	return days, nil
}

func dayAt(days []map[string]any, i int, section string) (map[string]any, error) {
	if i < 0 || i >= len(days) || days[i] == nil {
		return nil, invalidf("%s day %d does not exist", section, i)
	}
	return days[i], nil
}

type SwapInput struct {
	DayIndex      int    `json:"dayIndex"`
	ExerciseID    string `json:"exerciseId"`
	ReplacementID string `json:"replacementId"`
}

// SwapExercise replaces one exercise in a saved plan's day with an
// alternative for the same primary muscle.
func (s *PlanService) SwapExercise(ctx context.Context, userID, id uint, in SwapInput) (*models.WeeklyPlan, error) {
	if in.ExerciseID == "" || in.ReplacementID == "" {
		return nil, invalidf("exerciseId and replacementId are required")
	}
	alts, ok := s.cat.Alternatives(in.ExerciseID)
	if !ok {
		return nil, invalidf("unknown exercise %s", in.ExerciseID)
	}
	var repl *catalog.Exercise
	for i := range alts {
		if alts[i].ID == in.ReplacementID {
			repl = &alts[i]
			break
		}
	}
	if repl == nil {
		return nil, invalidf("%s is not an alternative to %s", in.ReplacementID, in.ExerciseID)
	}

	plan, err := s.getOwned(ctx, s.db, userID, id)
	if err != nil {
		return nil, err
	}
	days, err := decodeDays(plan.Workout, "workout")
	if err != nil {
		return nil, err
	}
	day, err := dayAt(days, in.DayIndex, "workout")
	if err != nil {
		return nil, err
	}
	exercises, _ := day["exercises"].([]any)
	swapped := false
	for i, raw := range exercises {
		if ex, ok := raw.(map[string]any); ok && ex["id"] == in.ExerciseID {
			exercises[i] = plannedExercise(*repl, plan.ParsedSettings().Goal)
			swapped = true
			break
		}
	}
	if !swapped {
		return nil, ErrNotFound
	}
	day["exercises"] = exercises
	return s.saveSection(ctx, plan, "workout", days)
}

type RegenerateInput struct {
	Section  string `json:"section"` // workout or diet
	DayIndex int    `json:"dayIndex"`
}

// RegenerateDay rebuilds one day of a saved plan from the plan settings.
// Other days are left as stored.
func (s *PlanService) RegenerateDay(ctx context.Context, userID, id uint, in RegenerateInput) (*models.WeeklyPlan, error) {
	if in.Section != "workout" && in.Section != "diet" {
		return nil, invalidf("section must be workout or diet")
	}
	plan, err := s.getOwned(ctx, s.db, userID, id)
	if err != nil {
		return nil, err
	}
	settings := plan.ParsedSettings()

	if in.Section == "workout" {
		days, err := decodeDays(plan.Workout, "workout")
		if err != nil {
			return nil, err
		}
		day, err := dayAt(days, in.DayIndex, "workout")
		if err != nil {
			return nil, err
		}
		rawMuscles, _ := day["muscles"].([]any)
		var muscles []string
		for _, m := range rawMuscles {
			if name, ok := m.(string); ok {
				muscles = append(muscles, name)
			}
		}
		if len(muscles) == 0 {
			return nil, invalidf("workout day %d lists no muscles", in.DayIndex)
		}
		level := settings.ExperienceLevel
		if level == "" {
			level = "Beginner"
		}
		day["exercises"] = s.dayExercises(muscles, level, settings.Goal)
		return s.saveSection(ctx, plan, "workout", days)
	}

	days, err := decodeDays(plan.Diet, "diet")
	if err != nil {
		return nil, err
	}
	day, err := dayAt(days, in.DayIndex, "diet")
	if err != nil {
		return nil, err
	}
	dietType := settings.DietType
	if dietType == "" {
		dietType = "Veg"
	}
	fresh := s.GenerateDiet(dietType)[0]
	day["meals"] = fresh.Meals
	day["approxCalories"] = fresh.ApproxCalories
	day["approxProtein"] = fresh.ApproxProtein
	return s.saveSection(ctx, plan, "diet", days)
}

func (s *PlanService) saveSection(ctx context.Context, plan *models.WeeklyPlan, column string, days []map[string]any) (*models.WeeklyPlan, error) {
	doc, err := models.EncodeSection(days)
	if err != nil {
		return nil, err
	}
	if column == "workout" {
		plan.Workout = doc
	} else {
		plan.Diet = doc
	}
	if err := s.db.WithContext(ctx).Model(plan).Update(column, doc).Error; err != nil {
		return nil, fmt.Errorf("save plan %s: %w", column, err)
	}
	return plan, nil
}

var reviewMuscles = []string{"Chest", "Back", "Legs", "Shoulders", "Abs"}

// calorieDriftLimit is the share a diet day may differ from the target
// before the review flags it.
const calorieDriftLimit = 0.15

type PlanReview struct {
	PlanID uint     `json:"planId"`
	Notes  []string `json:"notes"`
	Reply  string   `json:"reply"`
}

// Review checks a saved plan for gaps the way the chat assistant would:
// training days, muscle coverage, empty days and calories against the
// target from the settings or the caller's profile.
func (s *PlanService) Review(ctx context.Context, userID, id uint) (*PlanReview, error) {
	plan, err := s.getOwned(ctx, s.db, userID, id)
	if err != nil {
		return nil, err
	}
	settings := plan.ParsedSettings()
	var notes []string

	workout, _ := decodeDays(plan.Workout, "workout")
	trained := map[string]bool{}
	var emptyDays []string
	for _, day := range workout {
		muscles, _ := day["muscles"].([]any)
		for _, m := range muscles {
			if name, ok := m.(string); ok {
				trained[name] = true
			}
		}
		if exercises, _ := day["exercises"].([]any); len(exercises) == 0 {
			name, _ := day["day"].(string)
			emptyDays = append(emptyDays, name)
		}
	}
	switch {
	case len(workout) == 0:
		notes = append(notes, "This plan has no workout days yet.")
	case len(workout) < 3:
		notes = append(notes, fmt.Sprintf("Only %d training days. Three or more spread across the week suit most goals.", len(workout)))
	}
	if len(workout) > 0 {
		var missing []string
		for _, m := range reviewMuscles {
			if !trained[m] {
				missing = append(missing, m)
			}
		}
		if len(missing) > 0 {
			notes = append(notes, "Not trained this week: "+strings.Join(missing, ", ")+".")
		}
	}
	for _, d := range emptyDays {
		notes = append(notes, fmt.Sprintf("%s has no exercises. Swap in alternatives or change the experience level.", d))
	}

	diet, _ := decodeDays(plan.Diet, "diet")
	if len(diet) == 0 {
		notes = append(notes, "No diet days yet. Generate a diet to match your training.")
	} else if kcal, ok := diet[0]["approxCalories"].(float64); ok && kcal > 0 {
		target := float64(settings.CalorieTarget)
		if target <= 0 {
			var p models.Profile
			if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err == nil {
				if m, missing := ComputeMetrics(p); len(missing) == 0 {
					target = m.DailyCalories
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		if target > 0 && math.Abs(kcal-target)/target > calorieDriftLimit {
			notes = append(notes, fmt.Sprintf("Diet gives about %.0f kcal a day against a target of %.0f kcal. Adjust portions.", kcal, target))
		}
	}

	if len(notes) == 0 {
		notes = append(notes, "The plan looks balanced. Keep logging progress to see how it works for you.")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Plan review for %s:\n", plan.Name)
	for _, n := range notes {
		b.WriteString("- " + n + "\n")
	}
	b.WriteString("\n" + chatDisclaimer)
	return &PlanReview{PlanID: plan.ID, Notes: notes, Reply: b.String()}, nil
}
