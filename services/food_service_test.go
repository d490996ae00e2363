package services

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/Devak1234/Fitness-Chatbot/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDetector struct {
	labels []string
	err    error
	got    []byte
}

func (f *fakeDetector) DetectLabels(_ context.Context, image []byte) ([]string, error) {
	f.got = image
	return f.labels, f.err
}

func pngURI(data string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(data))
}

func TestRecognizeMatchesCatalogFoods(t *testing.T) {
	det := &fakeDetector{labels: []string{"Food", "Banana"}}
	svc := NewFoodService(testutil.Catalog(t), det)

	rec, err := svc.Recognize(context.Background(), pngURI("img"))
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), det.got)
	assert.Equal(t, []string{"Food", "Banana"}, rec.Labels)
	require.NotEmpty(t, rec.Matches)
	assert.Equal(t, "banana", rec.Matches[0].ID)
}

func TestRecognizeErrors(t *testing.T) {
	ctx := context.Background()
	cat := testutil.Catalog(t)

	_, err := NewFoodService(cat, nil).Recognize(ctx, pngURI("img"))
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = NewFoodService(cat, &fakeDetector{}).Recognize(ctx, "not a data uri")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewFoodService(cat, &fakeDetector{}).Recognize(ctx, pngURI("img"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewFoodService(cat, &fakeDetector{err: errors.New("throttled")}).Recognize(ctx, pngURI("img"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}
