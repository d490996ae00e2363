package models

import "time"

// NotificationSetting holds a user's reminder preferences. Times are "HH:MM"
// in server local time. TelegramChatID is only set by the bot once the user
// sends their link code.
type NotificationSetting struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	UserID             uint      `gorm:"uniqueIndex;not null" json:"-"`
	WorkoutReminders   bool      `json:"workoutReminders"`
	WorkoutTime        string    `gorm:"size:5" json:"workoutTime"`
	WaterReminders     bool      `json:"waterReminders"`
	WaterInterval      int       `json:"waterInterval"` // minutes
	ChecklistReminders bool      `json:"checklistReminders"`
	ChecklistTime      string    `gorm:"size:5" json:"checklistTime"`
	TelegramChatID     int64     `json:"telegramChatId,omitempty"`
	TelegramLinkCode   string    `gorm:"size:16;index" json:"-"`
	TelegramLinkExpiry time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

func DefaultNotificationSetting(userID uint) NotificationSetting {
	return NotificationSetting{
		UserID:        userID,
		WorkoutTime:   "18:00",
		WaterInterval: 120,
		ChecklistTime: "20:00",
	}
}
