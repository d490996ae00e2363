package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// AlertEmitter is satisfied by *AlertBus.
type AlertEmitter interface {
	Emit(ctx context.Context, userID uint, typ, message string) (*models.Alert, error)
}

type ProgressService struct {
	db     *gorm.DB
	alerts AlertEmitter
	now    func() time.Time
}

func NewProgressService(db *gorm.DB, alerts AlertEmitter) *ProgressService {
	return &ProgressService{db: db, alerts: alerts, now: time.Now}
}

type ProgressInput struct {
	Date   string  `json:"date"` // YYYY-MM-DD, defaults to today
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes"`
}

// parseDay accepts YYYY-MM-DD or RFC 3339 and truncates to a UTC day.
func parseDay(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, invalidf("date must be YYYY-MM-DD")
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (s *ProgressService) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *ProgressService) ListEntries(ctx context.Context, userID uint) ([]models.ProgressEntry, error) {
	entries := []models.ProgressEntry{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("date ASC, id ASC").Find(&entries).Error
	return entries, err
}

// AddEntry stores a weigh-in. When it is the latest entry, a change of more
// than 2% against the entry just before it is returned as a warning and
// emitted as an alert.
func (s *ProgressService) AddEntry(ctx context.Context, userID uint, in ProgressInput) (*models.ProgressEntry, *utils.Warning, error) {
	if in.Weight <= 0 {
		return nil, nil, invalidf("weight is required")
	}
	day := s.today()
	if in.Date != "" {
		d, err := parseDay(in.Date)
		if err != nil {
			return nil, nil, err
		}
		day = d
	}

	var prev models.ProgressEntry
	err := s.db.WithContext(ctx).Where("user_id = ? AND date <= ?", userID, day).
		Order("date DESC, id DESC").First(&prev).Error
	hasPrev := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}
	var later int64
	if err := s.db.WithContext(ctx).Model(&models.ProgressEntry{}).
		Where("user_id = ? AND date > ?", userID, day).Count(&later).Error; err != nil {
		return nil, nil, err
	}

	entry := &models.ProgressEntry{UserID: userID, Date: day, Weight: in.Weight, Notes: in.Notes}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, nil, fmt.Errorf("create progress entry: %w", err)
	}

	// Only the newest weigh-in is checked; backfilled history never alerts.
	if !hasPrev || later > 0 {
		return entry, nil, nil
	}
	w, ok := utils.WeightChangeWarning(prev.Weight, entry.Weight)
	if !ok {
		return entry, nil, nil
	}
	if s.alerts != nil {
		if _, err := s.alerts.Emit(ctx, userID, string(w.Severity), w.Message); err != nil {
			utils.Logger().Warnw("emit weight alert failed", "user_id", userID, "error", err)
		}
	}
	return entry, &w, nil
}

type ProgressSummary struct {
	StartWeight   *float64        `json:"startWeight"`
	CurrentWeight *float64        `json:"currentWeight"`
	TargetWeight  *float64        `json:"targetWeight"`
	WeeksOnPlan   int             `json:"weeksOnPlan"`
	Trend         string          `json:"trend,omitempty"`
	Warnings      []utils.Warning `json:"warnings"`
	BMI           *float64        `json:"bmi"`
	BMICategory   string          `json:"bmiCategory,omitempty"`
	Streak        int             `json:"streak"`
	TotalEntries  int             `json:"totalEntries"`
	Level         int             `json:"level"`
	Badges        []Badge         `json:"badges"`
}

func weeksOnPlan(entries []models.ProgressEntry) int {
	if len(entries) < 2 {
		return 0
	}
	span := entries[len(entries)-1].Date.Sub(entries[0].Date)
	return int(math.Ceil(span.Hours() / (7 * 24)))
}

func trendText(entries []models.ProgressEntry, weeks int) string {
	if len(entries) < 2 {
		return ""
	}
	change := entries[len(entries)-1].Weight - entries[0].Weight
	switch {
	case change > 0:
		return fmt.Sprintf("Gained %.1f kg in %d weeks", change, weeks)
	case change < 0:
		return fmt.Sprintf("Lost %.1f kg in %d weeks", -change, weeks)
	default:
		return "Weight stable"
	}
}

func (s *ProgressService) profile(ctx context.Context, userID uint) (models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return p, err
	}
	return p, nil
}

func buildSummary(entries []models.ProgressEntry, p models.Profile, now time.Time) *ProgressSummary {
	out := &ProgressSummary{Warnings: []utils.Warning{}, TotalEntries: len(entries)}
	if len(entries) > 0 {
		start, current := entries[0].Weight, entries[len(entries)-1].Weight
		out.StartWeight, out.CurrentWeight = &start, &current
	}
	if p.TargetWeight > 0 {
		t := p.TargetWeight
		out.TargetWeight = &t
	}
	out.WeeksOnPlan = weeksOnPlan(entries)
	out.Trend = trendText(entries, out.WeeksOnPlan)

	weights := make([]float64, 0, len(entries))
	for _, e := range entries {
		weights = append(weights, e.Weight)
	}
	out.Warnings = utils.WeightChangeWarnings(weights)

	if bmi, err := utils.CalculateBMI(p.Height, p.Weight); err == nil {
		b := math.Round(bmi*100) / 100
		out.BMI = &b
		out.BMICategory = utils.BMICategory(bmi)
	}

	out.Streak = ProgressStreak(entries, now)
	out.Level = Level(len(entries))
	out.Badges = Badges(len(entries), out.Streak)
	return out
}

func (s *ProgressService) Summary(ctx context.Context, userID uint) (*ProgressSummary, error) {
	entries, err := s.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildSummary(entries, p, s.now()), nil
}

func orNA(v *float64, empty string) string {
	if v == nil {
		return empty
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// ExportCSV writes one row per entry followed by a summary block.
func (s *ProgressService) ExportCSV(ctx context.Context, userID uint, w io.Writer) error {
	entries, err := s.ListEntries(ctx, userID)
	if err != nil {
		return err
	}
	p, err := s.profile(ctx, userID)
	if err != nil {
		return err
	}
	sum := buildSummary(entries, p, s.now())

	cw := csv.NewWriter(w)
	rows := [][]string{{
		"Date", "Weight (kg)", "BMI", "BMI Category",
		"Weight Change (kg)", "Weight Change (%)", "Days Since Start", "Notes",
	}}
	for i, e := range entries {
		bmi, category := "N/A", "N/A"
		if p.Height > 0 {
			v := e.Weight / math.Pow(p.Height/100, 2)
			bmi = fmt.Sprintf("%.2f", v)
			category = utils.BMICategory(math.Round(v*100) / 100)
		}
		change, changePct := "", ""
		if i > 0 {
			prev := entries[i-1].Weight
			change = fmt.Sprintf("%.2f", e.Weight-prev)
			changePct = fmt.Sprintf("%.2f", (e.Weight-prev)/prev*100)
		}
		days := int(math.Floor(e.Date.Sub(entries[0].Date).Hours() / 24))
		rows = append(rows, []string{
			e.Date.Format(dateLayout),
			strconv.FormatFloat(e.Weight, 'f', -1, 64),
			bmi, category, change, changePct,
			strconv.Itoa(days),
			e.Notes,
		})
	}

	trend := sum.Trend
	if trend == "" {
		trend = "N/A"
	}
	bmiCategory := sum.BMICategory
	if bmiCategory == "" {
		bmiCategory = "N/A"
	}
	rows = append(rows,
		[]string{},
		[]string{"Summary Information"},
		[]string{"Total Entries", strconv.Itoa(sum.TotalEntries)},
		[]string{"Start Weight", orNA(sum.StartWeight, "N/A")},
		[]string{"Current Weight", orNA(sum.CurrentWeight, "N/A")},
		[]string{"Target Weight", orNA(sum.TargetWeight, "Not set")},
		[]string{"Weeks on Plan", strconv.Itoa(sum.WeeksOnPlan)},
		[]string{"Trend", trend},
		[]string{"Current BMI", orNA(sum.BMI, "N/A")},
		[]string{"BMI Category", bmiCategory},
	)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
