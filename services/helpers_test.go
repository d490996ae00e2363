package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Devak1234/Fitness-Chatbot/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()
	u := models.User{Email: email, Password: "x", Name: "Test"}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

type emitted struct {
	userID  uint
	typ     string
	message string
}

type fakeEmitter struct {
	mu     sync.Mutex
	alerts []emitted
}

func (f *fakeEmitter) Emit(_ context.Context, userID uint, typ, message string) (*models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alerts = append(f.alerts, emitted{userID, typ, message})
	return &models.Alert{UserID: userID, Type: typ, Message: message}, nil
}

func (f *fakeEmitter) all() []emitted {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]emitted(nil), f.alerts...)
}

func fullProfile() models.Profile {
	return models.Profile{
		Name:          "Asha",
		Age:           28,
		Gender:        "Female",
		Height:        165,
		Weight:        60,
		Goal:          "Weight Loss",
		ActivityLevel: "Moderate",
		DietType:      "Veg",
	}
}
