package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Devak1234/Fitness-Chatbot/catalog"
	"github.com/Devak1234/Fitness-Chatbot/utils"
)

// LabelDetector names what is in an image, most confident first.
type LabelDetector interface {
	DetectLabels(ctx context.Context, image []byte) ([]string, error)
}

type FoodService struct {
	cat    *catalog.Catalog
	labels LabelDetector
}

func NewFoodService(cat *catalog.Catalog, labels LabelDetector) *FoodService {
	return &FoodService{cat: cat, labels: labels}
}

type Recognition struct {
	Labels  []string       `json:"labels"`
	Matches []catalog.Food `json:"matches"`
}

// Recognize labels a food photo and maps the labels onto the food table.
func (s *FoodService) Recognize(ctx context.Context, dataURI string) (*Recognition, error) {
	if s.labels == nil {
		return nil, ErrUnavailable
	}
	_, _, data, err := utils.DecodeDataURI(dataURI)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidDataURI) {
			return nil, invalidf("invalid data URI")
		}
		return nil, invalidf("%s", err.Error())
	}

	labels, err := s.labels.DetectLabels(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("detect labels: %w", err)
	}
	if len(labels) == 0 {
		return nil, invalidf("no labels detected")
	}
	return &Recognition{Labels: labels, Matches: s.cat.MatchFoods(labels)}, nil
}
