package services

import (
	"context"
	"strings"

	"github.com/Devak1234/Fitness-Chatbot/catalog"
	"github.com/Devak1234/Fitness-Chatbot/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoritesView struct {
	Foods     []string `json:"foods"`
	Exercises []string `json:"exercises"`
}

type FavoritesService struct {
	db  *gorm.DB
	cat *catalog.Catalog
}

func NewFavoritesService(db *gorm.DB, cat *catalog.Catalog) *FavoritesService {
	return &FavoritesService{db: db, cat: cat}
}

// normalizeKind accepts singular and plural spellings.
func normalizeKind(kind string) (string, error) {
	switch strings.ToLower(kind) {
	case "food", "foods":
		return models.FavoriteFood, nil
	case "exercise", "exercises":
		return models.FavoriteExercise, nil
	default:
		return "", invalidf("kind must be food or exercise")
	}
}

func (s *FavoritesService) List(ctx context.Context, userID uint) (*FavoritesView, error) {
	var rows []models.Favorite
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := &FavoritesView{Foods: []string{}, Exercises: []string{}}
	for _, r := range rows {
		switch r.Kind {
		case models.FavoriteFood:
			out.Foods = append(out.Foods, r.ItemID)
		case models.FavoriteExercise:
			out.Exercises = append(out.Exercises, r.ItemID)
		}
	}
	return out, nil
}

// Add is idempotent. The item must exist in the catalog.
func (s *FavoritesService) Add(ctx context.Context, userID uint, kind, itemID string) (*FavoritesView, error) {
	kind, err := normalizeKind(kind)
	if err != nil {
		return nil, err
	}
	var exists bool
	if kind == models.FavoriteFood {
		_, exists = s.cat.FoodByID(itemID)
	} else {
		_, exists = s.cat.ExerciseByID(itemID)
	}
	if !exists {
		return nil, ErrNotFound
	}

	fav := models.Favorite{UserID: userID, Kind: kind, ItemID: itemID}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

// Remove is idempotent.
func (s *FavoritesService) Remove(ctx context.Context, userID uint, kind, itemID string) (*FavoritesView, error) {
	kind, err := normalizeKind(kind)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND item_id = ?", userID, kind, itemID).
		Delete(&models.Favorite{}).Error; err != nil {
		return nil, err
	}
	return s.List(ctx, userID)
}

// replace swaps the whole favorites set inside tx, skipping unknown ids.
func (s *FavoritesService) replace(tx *gorm.DB, userID uint, v FavoritesView) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
		return err
	}
	var rows []models.Favorite
	seen := map[string]bool{}
	add := func(kind, id string, ok bool) {
		key := kind + ":" + id
		if ok && !seen[key] {
			seen[key] = true
			rows = append(rows, models.Favorite{UserID: userID, Kind: kind, ItemID: id})
		}
	}
	for _, id := range v.Foods {
		_, ok := s.cat.FoodByID(id)
		add(models.FavoriteFood, id, ok)
	}
	for _, id := range v.Exercises {
		_, ok := s.cat.ExerciseByID(id)
		add(models.FavoriteExercise, id, ok)
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}
