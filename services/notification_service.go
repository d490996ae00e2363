package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"gorm.io/gorm"
)

// NotificationSettingsInput uses pointers so a PUT can change one field.
type NotificationSettingsInput struct {
	WorkoutReminders   *bool   `json:"workoutReminders"`
	WorkoutTime        *string `json:"workoutTime"`
	WaterReminders     *bool   `json:"waterReminders"`
	WaterInterval      *int    `json:"waterInterval"`
	ChecklistReminders *bool   `json:"checklistReminders"`
	ChecklistTime      *string `json:"checklistTime"`
}

func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

func (in NotificationSettingsInput) apply(ns *models.NotificationSetting) error {
	if in.WorkoutTime != nil {
		if !validClock(*in.WorkoutTime) {
			return invalidf("workoutTime must be HH:MM")
		}
		ns.WorkoutTime = *in.WorkoutTime
	}
	if in.ChecklistTime != nil {
		if !validClock(*in.ChecklistTime) {
			return invalidf("checklistTime must be HH:MM")
		}
		ns.ChecklistTime = *in.ChecklistTime
	}
	if in.WaterInterval != nil {
		if *in.WaterInterval < 1 {
			return invalidf("waterInterval must be at least 1 minute")
		}
		ns.WaterInterval = *in.WaterInterval
	}
	if in.WorkoutReminders != nil {
		ns.WorkoutReminders = *in.WorkoutReminders
	}
	if in.WaterReminders != nil {
		ns.WaterReminders = *in.WaterReminders
	}
	if in.ChecklistReminders != nil {
		ns.ChecklistReminders = *in.ChecklistReminders
	}
	return nil
}

// validateSettings checks a full settings row, as restored by an import.
func validateSettings(ns models.NotificationSetting) error {
	if !validClock(ns.WorkoutTime) {
		return invalidf("workoutTime must be HH:MM")
	}
	if !validClock(ns.ChecklistTime) {
		return invalidf("checklistTime must be HH:MM")
	}
	if ns.WaterInterval < 1 {
		return invalidf("waterInterval must be at least 1 minute")
	}
	return nil
}

const (
	telegramLinkTTL     = 15 * time.Minute
	telegramLinkCodeLen = 8
)

type NotificationService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, now: time.Now}
}

// GetSettings returns the stored settings or the defaults.
func (s *NotificationService) GetSettings(ctx context.Context, userID uint) (*models.NotificationSetting, error) {
	var ns models.NotificationSetting
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&ns).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ns = models.DefaultNotificationSetting(userID)
		return &ns, nil
	}
	if err != nil {
		return nil, err
	}
	return &ns, nil
}

func (s *NotificationService) UpdateSettings(ctx context.Context, userID uint, in NotificationSettingsInput) (*models.NotificationSetting, error) {
	ns, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := in.apply(ns); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(ns).Error; err != nil {
		return nil, err
	}
	return ns, nil
}

type TelegramLink struct {
	Code      string    `json:"code"`
	Command   string    `json:"command"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StartTelegramLink issues a one-time code. Sending "/start <code>" to the
// bot binds that chat to the user.
func (s *NotificationService) StartTelegramLink(ctx context.Context, userID uint) (*TelegramLink, error) {
	ns, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	ns.TelegramLinkCode = utils.GenerateRandomToken(telegramLinkCodeLen)
	ns.TelegramLinkExpiry = s.now().Add(telegramLinkTTL)
	if err := s.db.WithContext(ctx).Save(ns).Error; err != nil {
		return nil, err
	}
	return &TelegramLink{
		Code:      ns.TelegramLinkCode,
		Command:   "/start " + ns.TelegramLinkCode,
		ExpiresAt: ns.TelegramLinkExpiry,
	}, nil
}

// LinkTelegramChat consumes a link code. Unknown or expired codes return
// ErrNotFound.
func (s *NotificationService) LinkTelegramChat(ctx context.Context, code string, chatID int64) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrNotFound
	}
	var ns models.NotificationSetting
	err := s.db.WithContext(ctx).Where("telegram_link_code = ?", code).First(&ns).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if s.now().After(ns.TelegramLinkExpiry) {
		return ErrNotFound
	}
	return s.db.WithContext(ctx).Model(&ns).Updates(map[string]any{
		"telegram_chat_id":     chatID,
		"telegram_link_code":   "",
		"telegram_link_expiry": time.Time{},
	}).Error
}

func (s *NotificationService) UnlinkTelegram(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&models.NotificationSetting{}).
		Where("user_id = ?", userID).
		Update("telegram_chat_id", 0).Error
}
