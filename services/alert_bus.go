package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"gorm.io/gorm"
)

// PushSender is satisfied by *PushService.
type PushSender interface {
	PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string)
}

// AlertBus persists alerts and fans them out to websocket clients, mobile
// push and Telegram. Every sink is optional.
type AlertBus struct {
	db       *gorm.DB
	rt       *RealtimeHub
	push     PushSender
	telegram TelegramSender
}

func NewAlertBus(db *gorm.DB, rt *RealtimeHub, push PushSender, telegram TelegramSender) *AlertBus {
	return &AlertBus{db: db, rt: rt, push: push, telegram: telegram}
}

func alertTitle(typ string) string {
	switch typ {
	case "reminder":
		return "Reminder"
	case "danger":
		return "Health Alert"
	default:
		return "New Alert"
	}
}

func (b *AlertBus) Emit(ctx context.Context, userID uint, typ, message string) (*models.Alert, error) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	if err := b.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, fmt.Errorf("save alert: %w", err)
	}

	if b.rt != nil {
		b.rt.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if b.push != nil {
		b.push.PushToUser(ctx, userID, alertTitle(typ), message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
	if b.telegram != nil {
		var ns models.NotificationSetting
		err := b.db.WithContext(ctx).Where("user_id = ?", userID).First(&ns).Error
		if err == nil && ns.TelegramChatID != 0 {
			if err := b.telegram.SendText(ns.TelegramChatID, message); err != nil {
				utils.Logger().Warnw("telegram send failed", "user_id", userID, "error", err)
			}
		}
	}
	return a, nil
}

// Recent returns the newest alerts first.
func (b *AlertBus) Recent(ctx context.Context, userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	alerts := []models.Alert{}
	err := b.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Limit(limit).Find(&alerts).Error
	return alerts, err
}
