package services

import (
	"context"
	"testing"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChecklistService(t *testing.T) (*ChecklistService, uint) {
	db := testutil.NewDB(t)
	svc := NewChecklistService(db)
	svc.now = func() time.Time { return time.Date(2026, 2, 10, 21, 0, 0, 0, time.UTC) }
	return svc, createUser(t, db, "a@b.com")
}

func TestChecklistUpsertByDate(t *testing.T) {
	svc, uid := newChecklistService(t)
	ctx := context.Background()

	first, err := svc.Upsert(ctx, uid, ChecklistInput{Date: "2026-02-09", Breakfast: true, Water: 4})
	require.NoError(t, err)
	assert.Equal(t, 25, first.Completion)

	second, err := svc.Upsert(ctx, uid, ChecklistInput{Date: "2026-02-09", Breakfast: true, Water: 8, Workout: true, Sleep: true, Steps: 9000})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 100, second.Completion)
	assert.Equal(t, 9000, second.Steps)

	days, err := svc.List(ctx, uid, "")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 8, days[0].Water)
}

func TestChecklistUpsertDefaultsToToday(t *testing.T) {
	svc, uid := newChecklistService(t)

	day, err := svc.Upsert(context.Background(), uid, ChecklistInput{Sleep: true})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", day.Date)
	assert.Equal(t, uid, day.UserID)
}

func TestChecklistValidation(t *testing.T) {
	svc, uid := newChecklistService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, uid, ChecklistInput{Date: "10-02-2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upsert(ctx, uid, ChecklistInput{Water: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, uid, "yesterday")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChecklistForDateDefault(t *testing.T) {
	svc, uid := newChecklistService(t)

	day, err := svc.ForDate(context.Background(), uid, "2026-01-01")
	require.NoError(t, err)
	assert.Zero(t, day.ID)
	assert.Equal(t, "2026-01-01", day.Date)
	assert.Equal(t, 0, day.Completion)
}

func TestChecklistListFiltersByDateNewestFirst(t *testing.T) {
	svc, uid := newChecklistService(t)
	ctx := context.Background()

	for _, d := range []string{"2026-02-01", "2026-02-03", "2026-02-02"} {
		_, err := svc.Upsert(ctx, uid, ChecklistInput{Date: d})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, uid, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-02-03", all[0].Date)
	assert.Equal(t, "2026-02-01", all[2].Date)

	one, err := svc.List(ctx, uid, "2026-02-02")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "2026-02-02", one[0].Date)
}

func TestChecklistStreak(t *testing.T) {
	today := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	done := models.ChecklistItem{Breakfast: true, Water: 8, Workout: true, Sleep: true}
	partial := models.ChecklistItem{Breakfast: true}

	byDate := map[string]models.ChecklistItem{
		"2026-02-10": partial,
		"2026-02-09": done,
		"2026-02-08": done,
		"2026-02-06": done,
	}
	assert.Equal(t, 2, ChecklistStreak(byDate, today), "unfinished today keeps the run")

	byDate["2026-02-10"] = done
	assert.Equal(t, 3, ChecklistStreak(byDate, today))

	byDate["2026-02-09"] = partial
	assert.Equal(t, 1, ChecklistStreak(byDate, today))

	assert.Equal(t, 0, ChecklistStreak(map[string]models.ChecklistItem{}, today))
}

func TestChecklistStreakFromStore(t *testing.T) {
	svc, uid := newChecklistService(t)
	ctx := context.Background()

	for _, d := range []string{"2026-02-08", "2026-02-09"} {
		_, err := svc.Upsert(ctx, uid, ChecklistInput{Date: d, Breakfast: true, Water: 10, Workout: true, Sleep: true})
		require.NoError(t, err)
	}

	n, err := svc.Streak(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
