package services

import (
	"context"
	"errors"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const streakWindowDays = 30

type ChecklistInput struct {
	Date        string `json:"date"` // YYYY-MM-DD, defaults to today
	Breakfast   bool   `json:"breakfast"`
	Water       int    `json:"water"`
	Workout     bool   `json:"workout"`
	Sleep       bool   `json:"sleep"`
	Supplements bool   `json:"supplements"`
	Steps       int    `json:"steps"`
}

// ChecklistDay is a stored or default checklist with its completion.
type ChecklistDay struct {
	models.ChecklistItem
	Completion int `json:"completion"`
}

func newChecklistDay(item models.ChecklistItem) ChecklistDay {
	return ChecklistDay{ChecklistItem: item, Completion: item.Completion()}
}

type ChecklistService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewChecklistService(db *gorm.DB) *ChecklistService {
	return &ChecklistService{db: db, now: time.Now}
}

func (s *ChecklistService) todayString() string {
	return s.now().Format(dateLayout)
}

func validDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return invalidf("date must be YYYY-MM-DD")
	}
	return nil
}

// List returns stored days, newest first, optionally for one date.
func (s *ChecklistService) List(ctx context.Context, userID uint, date string) ([]ChecklistDay, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if date != "" {
		if err := validDate(date); err != nil {
			return nil, err
		}
		q = q.Where("date = ?", date)
	}
	var items []models.ChecklistItem
	if err := q.Order("date DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	out := make([]ChecklistDay, 0, len(items))
	for _, it := range items {
		out = append(out, newChecklistDay(it))
	}
	return out, nil
}

// Upsert writes the whole checklist for (user, date).
func (s *ChecklistService) Upsert(ctx context.Context, userID uint, in ChecklistInput) (*ChecklistDay, error) {
	if in.Date == "" {
		in.Date = s.todayString()
	}
	if err := validDate(in.Date); err != nil {
		return nil, err
	}
	if in.Water < 0 || in.Steps < 0 {
		return nil, invalidf("water and steps cannot be negative")
	}

	item := models.ChecklistItem{
		UserID:      userID,
		Date:        in.Date,
		Breakfast:   in.Breakfast,
		Water:       in.Water,
		Workout:     in.Workout,
		Sleep:       in.Sleep,
		Supplements: in.Supplements,
		Steps:       in.Steps,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"breakfast", "water", "workout", "sleep", "supplements", "steps", "updated_at",
		}),
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	// reload so the id is right after an update
	day, err := s.ForDate(ctx, userID, in.Date)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// ForDate returns an unchecked default when nothing is stored.
func (s *ChecklistService) ForDate(ctx context.Context, userID uint, date string) (ChecklistDay, error) {
	if err := validDate(date); err != nil {
		return ChecklistDay{}, err
	}
	var item models.ChecklistItem
	err := s.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newChecklistDay(models.ChecklistItem{UserID: userID, Date: date}), nil
	}
	if err != nil {
		return ChecklistDay{}, err
	}
	return newChecklistDay(item), nil
}

// ChecklistStreak counts fully completed days back from today. An
// unfinished today does not break the run.
func ChecklistStreak(byDate map[string]models.ChecklistItem, today time.Time) int {
	streak := 0
	for i := 0; i < streakWindowDays; i++ {
		day := today.AddDate(0, 0, -i).Format(dateLayout)
		item, ok := byDate[day]
		if ok && item.Completion() == 100 {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

func (s *ChecklistService) Streak(ctx context.Context, userID uint) (int, error) {
	today := s.now()
	from := today.AddDate(0, 0, -(streakWindowDays - 1)).Format(dateLayout)

	var items []models.ChecklistItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ?", userID, from).
		Find(&items).Error; err != nil {
		return 0, err
	}
	byDate := make(map[string]models.ChecklistItem, len(items))
	for _, it := range items {
		byDate[it.Date] = it
	}
	return ChecklistStreak(byDate, today), nil
}
