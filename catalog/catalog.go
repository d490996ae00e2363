// Package catalog holds the static exercise, food and program tables the
// plan generator, chat responder and public catalog endpoints read from.
package catalog

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

type SetsReps struct {
	WeightGain string `yaml:"weightGain" json:"weightGain"`
	WeightLoss string `yaml:"weightLoss" json:"weightLoss"`
	Strength   string `yaml:"strength" json:"strength"`
}

type Exercise struct {
	ID                  string   `yaml:"id" json:"id"`
	Name                string   `yaml:"name" json:"name"`
	PrimaryMuscle       string   `yaml:"primaryMuscle" json:"primaryMuscle"`
	SubRegion           string   `yaml:"subRegion" json:"subRegion"`
	Difficulty          string   `yaml:"difficulty" json:"difficulty"`
	Equipment           string   `yaml:"equipment" json:"equipment"`
	GoalTags            []string `yaml:"goalTags" json:"goalTags"`
	Steps               []string `yaml:"steps" json:"steps"`
	Tips                []string `yaml:"tips" json:"tips"`
	RecommendedSetsReps SetsReps `yaml:"recommendedSetsReps" json:"recommendedSetsReps"`
}

// SetsRepsFor picks the prescription matching a profile goal such as
// "Weight Gain" or "Strength / Muscle Gain", falling back to weight loss.
func (e Exercise) SetsRepsFor(goal string) string {
	key := strings.ToLower(goal)
	key = strings.ReplaceAll(key, " / muscle gain", "")
	key = strings.ReplaceAll(key, " ", "")
	var v string
	switch key {
	case "weightgain":
		v = e.RecommendedSetsReps.WeightGain
	case "weightloss":
		v = e.RecommendedSetsReps.WeightLoss
	case "strength":
		v = e.RecommendedSetsReps.Strength
	}
	if v == "" {
		v = e.RecommendedSetsReps.WeightLoss
	}
	return v
}

type Food struct {
	ID         string   `yaml:"id" json:"id"`
	Name       string   `yaml:"name" json:"name"`
	Calories   float64  `yaml:"calories" json:"calories"`
	Protein    float64  `yaml:"protein" json:"protein"`
	Carbs      float64  `yaml:"carbs" json:"carbs"`
	Fat        float64  `yaml:"fat" json:"fat"`
	Fiber      float64  `yaml:"fiber" json:"fiber"`
	DietType   string   `yaml:"dietType" json:"dietType"`
	Categories []string `yaml:"categories" json:"category"`
}

func (f Food) HasCategory(category string) bool {
	for _, c := range f.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

// AllowedFor reports whether the food fits a diet preference. Veg and Egg
// exclude Non-Veg foods; Vegan also excludes Egg foods.
func (f Food) AllowedFor(dietType string) bool {
	switch dietType {
	case "Veg", "Egg":
		return f.DietType != "Non-Veg"
	case "Vegan":
		return f.DietType != "Non-Veg" && f.DietType != "Egg"
	default:
		return true
	}
}

type Plan struct {
	ID          string            `yaml:"id" json:"id"`
	Name        string            `yaml:"name" json:"name"`
	Type        string            `yaml:"type" json:"type"`
	Category    string            `yaml:"category" json:"category"`
	Level       string            `yaml:"level" json:"level"`
	Duration    string            `yaml:"duration" json:"duration"`
	DaysPerWeek int               `yaml:"daysPerWeek" json:"daysPerWeek,omitempty"`
	Description string            `yaml:"description" json:"description"`
	Calories    int               `yaml:"calories" json:"calories,omitempty"`
	Protein     int               `yaml:"protein" json:"protein,omitempty"`
	Carbs       int               `yaml:"carbs" json:"carbs,omitempty"`
	Fat         int               `yaml:"fat" json:"fat,omitempty"`
	Details     map[string]string `yaml:"details" json:"details"`
	Benefits    []string          `yaml:"benefits" json:"benefits"`
}

type NutritionSeed struct {
	Name     string  `yaml:"name"`
	Protein  float64 `yaml:"protein"`
	Calories float64 `yaml:"calories"`
	Category string  `yaml:"category"`
	ImageURL string  `yaml:"imageUrl"`
}

type WorkoutSeed struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Primary     string `yaml:"primary"`
	Equipment   string `yaml:"equipment"`
	Level       string `yaml:"level"`
	ImageURL    string `yaml:"imageUrl"`
	Description string `yaml:"description"`
}

type Seed struct {
	Nutrition []NutritionSeed `yaml:"nutrition"`
	Workouts  []WorkoutSeed   `yaml:"workouts"`
}

// Catalog is read-only after Load.
type Catalog struct {
	Exercises []Exercise
	Foods     []Food
	Plans     []Plan
	Seed      Seed
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default returns the embedded catalog, parsing it on first use.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCat, defaultErr = Load()
	})
	return defaultCat, defaultErr
}

func Load() (*Catalog, error) {
	c := &Catalog{}
	files := []struct {
		name string
		dst  any
	}{
		{"data/exercises.yaml", &c.Exercises},
		{"data/foods.yaml", &c.Foods},
		{"data/plans.yaml", &c.Plans},
		{"data/seed.yaml", &c.Seed},
	}
	for _, f := range files {
		raw, err := dataFS.ReadFile(f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := yaml.Unmarshal(raw, f.dst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}
	return c, nil
}

type ExerciseFilter struct {
	Muscle     string
	Difficulty string
	Equipment  string
	Query      string
}

// FindExercises keeps table order so plan slices are stable.
func (c *Catalog) FindExercises(f ExerciseFilter) []Exercise {
	out := []Exercise{}
	q := strings.ToLower(f.Query)
	for _, e := range c.Exercises {
		if f.Muscle != "" && !strings.EqualFold(e.PrimaryMuscle, f.Muscle) {
			continue
		}
		if f.Difficulty != "" && !strings.EqualFold(e.Difficulty, f.Difficulty) {
			continue
		}
		if f.Equipment != "" && !strings.EqualFold(e.Equipment, f.Equipment) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(e.Name), q) &&
			!strings.Contains(strings.ToLower(e.PrimaryMuscle), q) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (c *Catalog) ExerciseByID(id string) (Exercise, bool) {
	for _, e := range c.Exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

// Alternatives lists the other exercises for the same primary muscle.
func (c *Catalog) Alternatives(id string) ([]Exercise, bool) {
	cur, ok := c.ExerciseByID(id)
	if !ok {
		return nil, false
	}
	out := []Exercise{}
	for _, e := range c.Exercises {
		if e.ID != cur.ID && e.PrimaryMuscle == cur.PrimaryMuscle {
			out = append(out, e)
		}
	}
	return out, true
}

// MuscleGroups returns the distinct primary muscles in table order.
func (c *Catalog) MuscleGroups() []string {
	seen := map[string]bool{}
	var out []string
	for _, e := range c.Exercises {
		if !seen[e.PrimaryMuscle] {
			seen[e.PrimaryMuscle] = true
			out = append(out, e.PrimaryMuscle)
		}
	}
	return out
}

type FoodFilter struct {
	DietType string
	Category string
	Query    string
}

func (c *Catalog) FindFoods(f FoodFilter) []Food {
	out := []Food{}
	q := strings.ToLower(f.Query)
	for _, food := range c.Foods {
		if f.DietType != "" && !food.AllowedFor(f.DietType) {
			continue
		}
		if f.Category != "" && !food.HasCategory(f.Category) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(food.Name), q) {
			continue
		}
		out = append(out, food)
	}
	return out
}

func (c *Catalog) FoodByID(id string) (Food, bool) {
	for _, f := range c.Foods {
		if f.ID == id {
			return f, true
		}
	}
	return Food{}, false
}

// MatchFoods returns foods whose name shares a word with any of the labels,
// best-ranked label first. Used to map image labels onto the food table.
func (c *Catalog) MatchFoods(labels []string) []Food {
	type hit struct {
		food Food
		rank int
	}
	var hits []hit
	seen := map[string]bool{}
	for rank, label := range labels {
		l := strings.ToLower(strings.TrimSpace(label))
		if l == "" {
			continue
		}
		for _, f := range c.Foods {
			if seen[f.ID] {
				continue
			}
			name := strings.ToLower(f.Name)
			if strings.Contains(name, l) || containsWord(l, name) {
				seen[f.ID] = true
				hits = append(hits, hit{food: f, rank: rank})
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].rank < hits[j].rank })
	out := make([]Food, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.food)
	}
	return out
}

func containsWord(label, name string) bool {
	for _, w := range strings.Fields(name) {
		if len(w) > 3 && strings.Contains(label, w) {
			return true
		}
	}
	return false
}

type PlanFilter struct {
	Type     string
	Category string
	Level    string
}

// FindPlans matches a level filter against both the exact level and
// "All Levels" programs.
func (c *Catalog) FindPlans(f PlanFilter) []Plan {
	out := []Plan{}
	for _, p := range c.Plans {
		if f.Type != "" && !strings.EqualFold(p.Type, f.Type) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.Level != "" && !strings.EqualFold(p.Level, f.Level) && p.Level != "All Levels" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *Catalog) PlanByID(id string) (Plan, bool) {
	for _, p := range c.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
