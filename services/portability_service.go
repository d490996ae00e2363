package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"

	"gorm.io/gorm"
)

// DataBundle is the export/import document for one user.
type DataBundle struct {
	Profile              *models.Profile             `json:"profile"`
	ProgressEntries      []models.ProgressEntry      `json:"progressEntries"`
	SavedPlans           []models.WeeklyPlan         `json:"savedPlans"`
	ActiveWeeklyPlan     *models.WeeklyPlan          `json:"activeWeeklyPlan"`
	Favorites            *FavoritesView              `json:"favorites"`
	NotificationSettings *models.NotificationSetting `json:"notificationSettings"`
	Checklist            []models.ChecklistItem      `json:"checklist,omitempty"`
	ExportedAt           time.Time                   `json:"exportedAt"`
}

type PortabilityService struct {
	db        *gorm.DB
	favorites *FavoritesService
	now       func() time.Time
}

func NewPortabilityService(db *gorm.DB, favorites *FavoritesService) *PortabilityService {
	return &PortabilityService{db: db, favorites: favorites, now: time.Now}
}

func (s *PortabilityService) Export(ctx context.Context, userID uint) (*DataBundle, error) {
	db := s.db.WithContext(ctx)
	out := &DataBundle{ExportedAt: s.now().UTC()}

	var p models.Profile
	if err := db.Where("user_id = ?", userID).First(&p).Error; err == nil {
		out.Profile = &p
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := db.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&out.ProgressEntries).Error; err != nil {
		return nil, err
	}
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&out.SavedPlans).Error; err != nil {
		return nil, err
	}
	for i := range out.SavedPlans {
		if out.SavedPlans[i].Active {
			active := out.SavedPlans[i]
			out.ActiveWeeklyPlan = &active
		}
	}
	if err := db.Where("user_id = ?", userID).Order("date ASC").Find(&out.Checklist).Error; err != nil {
		return nil, err
	}

	favs, err := s.favorites.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out.Favorites = favs

	ns, err := NewNotificationService(s.db).GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	out.NotificationSettings = ns
	return out, nil
}

// Import replaces each section present in the bundle and leaves absent
// sections untouched. Ids in the bundle are ignored, and every section is
// checked the way its normal write path checks it. Any invalid section
// rolls back the whole import.
func (s *PortabilityService) Import(ctx context.Context, userID uint, in DataBundle) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Profile != nil {
			if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
				return err
			}
			p := *in.Profile
			p.ID, p.UserID = 0, userID
			if err := tx.Create(&p).Error; err != nil {
				return fmt.Errorf("import profile: %w", err)
			}
		}

		if in.ProgressEntries != nil {
			if err := tx.Where("user_id = ?", userID).Delete(&models.ProgressEntry{}).Error; err != nil {
				return err
			}
			for i, e := range in.ProgressEntries {
				if e.Weight <= 0 {
					return invalidf("progress entry %d: weight is required", i)
				}
				if e.Date.IsZero() {
					return invalidf("progress entry %d: date is required", i)
				}
				e.ID, e.UserID = 0, userID
				if err := tx.Create(&e).Error; err != nil {
					return fmt.Errorf("import progress: %w", err)
				}
			}
		}

		if in.SavedPlans != nil || in.ActiveWeeklyPlan != nil {
			if err := importPlans(tx, userID, in.SavedPlans, in.ActiveWeeklyPlan); err != nil {
				return err
			}
		}

		if in.Checklist != nil {
			if err := tx.Where("user_id = ?", userID).Delete(&models.ChecklistItem{}).Error; err != nil {
				return err
			}
			seen := map[string]bool{}
			for _, c := range in.Checklist {
				if err := validDate(c.Date); err != nil {
					return err
				}
				if seen[c.Date] {
					return invalidf("checklist date %s appears more than once", c.Date)
				}
				seen[c.Date] = true
				c.ID, c.UserID = 0, userID
				if err := tx.Create(&c).Error; err != nil {
					return fmt.Errorf("import checklist: %w", err)
				}
			}
		}

		if in.Favorites != nil {
			if err := s.favorites.replace(tx, userID, *in.Favorites); err != nil {
				return fmt.Errorf("import favorites: %w", err)
			}
		}

		if in.NotificationSettings != nil {
			ns := *in.NotificationSettings
			def := models.DefaultNotificationSetting(userID)
			if ns.WorkoutTime == "" {
				ns.WorkoutTime = def.WorkoutTime
			}
			if ns.ChecklistTime == "" {
				ns.ChecklistTime = def.ChecklistTime
			}
			if ns.WaterInterval == 0 {
				ns.WaterInterval = def.WaterInterval
			}
			if err := validateSettings(ns); err != nil {
				return err
			}
			// the Telegram chat stays whatever the bot linked
			var current models.NotificationSetting
			err := tx.Where("user_id = ?", userID).First(&current).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.NotificationSetting{}).Error; err != nil {
				return err
			}
			ns.ID, ns.UserID = 0, userID
			ns.TelegramChatID = current.TelegramChatID
			ns.TelegramLinkCode, ns.TelegramLinkExpiry = "", time.Time{}
			if err := tx.Create(&ns).Error; err != nil {
				return fmt.Errorf("import notification settings: %w", err)
			}
		}
		return nil
	})
}

// importPlans replaces saved plans. The active plan is matched to a saved
// plan by its old id, otherwise stored as an extra plan.
func importPlans(tx *gorm.DB, userID uint, saved []models.WeeklyPlan, active *models.WeeklyPlan) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.WeeklyPlan{}).Error; err != nil {
		return err
	}
	activeMatched := false
	for _, p := range saved {
		isActive := active != nil && active.ID != 0 && p.ID == active.ID
		p.ID, p.UserID, p.Active = 0, userID, isActive
		p.Normalize()
		if isActive {
			activeMatched = true
		}
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("import plan: %w", err)
		}
	}
	if active != nil && !activeMatched {
		p := *active
		p.ID, p.UserID, p.Active = 0, userID, true
		p.Normalize()
		if err := tx.Create(&p).Error; err != nil {
			return fmt.Errorf("import active plan: %w", err)
		}
	}
	return nil
}

// ClearAll deletes everything the user owns except the account itself.
func (s *PortabilityService) ClearAll(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.Profile{}, &models.ProgressEntry{}, &models.WeeklyPlan{},
			&models.ChecklistItem{}, &models.Favorite{}, &models.NotificationSetting{},
			&models.ChatMessage{}, &models.Alert{}, &models.UserDevice{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
