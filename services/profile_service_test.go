package services

import (
	"context"
	"testing"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct{ prefix string }

func (f *fakeUploader) UploadBase64Image(_ context.Context, _, prefix string) (string, error) {
	f.prefix = prefix
	return "https://cdn.example.com/" + prefix + ".png", nil
}

func TestProfileCreateThenRead(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db, nil)
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")

	p, err := svc.GetProfile(ctx, uid)
	require.NoError(t, err)
	assert.Nil(t, p)

	created, err := svc.CreateProfile(ctx, uid, ProfileInput{
		Name: "Asha", Age: 28, Gender: "Female", Height: 165, Weight: 60,
		Goal: "Weight Loss", DietType: "Veg", Equipment: []string{"Dumbbells"},
	})
	require.NoError(t, err)
	assert.Equal(t, uid, created.UserID)

	got, err := svc.GetProfile(ctx, uid)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Asha", got.Name)
	assert.Equal(t, []string{"Dumbbells"}, got.Equipment)

	_, err = svc.CreateProfile(ctx, uid, ProfileInput{Name: "Again"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestProfileUpdateIsPartial(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db, nil)
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")

	_, err := svc.UpdateProfile(ctx, uid, ProfileInput{Weight: 70})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.CreateProfile(ctx, uid, ProfileInput{Name: "Asha", Weight: 60, Goal: "Weight Loss"})
	require.NoError(t, err)

	p, err := svc.UpdateProfile(ctx, uid, ProfileInput{Weight: 58.5})
	require.NoError(t, err)
	assert.Equal(t, 58.5, p.Weight)
	assert.Equal(t, "Asha", p.Name)
	assert.Equal(t, "Weight Loss", p.Goal)

	_, err = svc.UpdateProfile(ctx, uid, ProfileInput{Age: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfileMetrics(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProfileService(db, nil)
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")

	_, err := svc.CreateProfile(ctx, uid, ProfileInput{Name: "Asha", Height: 165})
	require.NoError(t, err)

	_, err = svc.Metrics(ctx, uid)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "Missing profile fields: weight, age, gender", err.Error())

	_, err = svc.UpdateProfile(ctx, uid, ProfileInput{Weight: 60, Age: 28, Gender: "Female", ActivityLevel: "Moderate", Goal: "Weight Loss"})
	require.NoError(t, err)

	m, err := svc.Metrics(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 22.04, m.BMI)
	assert.Equal(t, "Normal", m.BMICategory)
	assert.Equal(t, 1.55, m.ActivityFactor)

	bmr := 447.593 + 9.247*60 + 3.098*165 - 4.330*28
	assert.InDelta(t, bmr, m.BMR, 0.5)
	assert.InDelta(t, bmr*1.55-500, m.DailyCalories, 0.5)
}

func TestComputeMetricsMissing(t *testing.T) {
	_, missing := ComputeMetrics(models.Profile{})
	assert.Equal(t, []string{"height", "weight", "age", "gender"}, missing)
}

func TestUploadPicture(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")

	_, err := NewProfileService(db, nil).UploadPicture(ctx, uid, "data:image/png;base64,AAAA")
	assert.ErrorIs(t, err, ErrUnavailable)

	up := &fakeUploader{}
	p, err := NewProfileService(db, up).UploadPicture(ctx, uid, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Contains(t, p.ProfilePicture, "https://cdn.example.com/")
	assert.NotEmpty(t, up.prefix)
}
