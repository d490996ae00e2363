package services

import (
	"context"
	"testing"

	"github.com/Devak1234/Fitness-Chatbot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesAddIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewFavoritesService(db, testutil.Catalog(t))
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")

	_, err := svc.Add(ctx, uid, "food", "paneer")
	require.NoError(t, err)
	_, err = svc.Add(ctx, uid, "foods", "paneer")
	require.NoError(t, err)
	view, err := svc.Add(ctx, uid, "exercise", "push_ups")
	require.NoError(t, err)

	assert.Equal(t, []string{"paneer"}, view.Foods)
	assert.Equal(t, []string{"push_ups"}, view.Exercises)
}

func TestFavoritesValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewFavoritesService(db, testutil.Catalog(t))
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")

	_, err := svc.Add(ctx, uid, "drink", "paneer")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Add(ctx, uid, "food", "push_ups")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoritesRemove(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewFavoritesService(db, testutil.Catalog(t))
	ctx := context.Background()
	uid := createUser(t, db, "a@b.com")
	other := createUser(t, db, "c@d.com")

	_, err := svc.Add(ctx, uid, "food", "tofu")
	require.NoError(t, err)
	_, err = svc.Add(ctx, other, "food", "tofu")
	require.NoError(t, err)

	view, err := svc.Remove(ctx, uid, "food", "tofu")
	require.NoError(t, err)
	assert.Empty(t, view.Foods)

	_, err = svc.Remove(ctx, uid, "food", "tofu")
	require.NoError(t, err)

	theirs, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, []string{"tofu"}, theirs.Foods)
}
