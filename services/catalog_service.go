package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/catalog"
	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CatalogService serves the seeded Nutrition and Workout tables and the
// embedded exercise/food/plan catalog.
type CatalogService struct {
	db    *gorm.DB
	cat   *catalog.Catalog
	cache CatalogCache
	ttl   time.Duration
}

func NewCatalogService(db *gorm.DB, cat *catalog.Catalog, cache CatalogCache, ttl time.Duration) *CatalogService {
	return &CatalogService{db: db, cat: cat, cache: cache, ttl: ttl}
}

func (s *CatalogService) Catalog() *catalog.Catalog { return s.cat }

// cached loads key from the cache or fills it with load.
func cached[T any](ctx context.Context, s *CatalogService, key string, load func() (T, error)) (T, error) {
	var out T
	if s.cache != nil {
		hit, err := s.cache.Get(ctx, key, &out)
		if err != nil {
			utils.Logger().Warnw("catalog cache read failed", "key", key, "error", err)
		} else if hit {
			return out, nil
		}
	}

	out, err := load()
	if err != nil {
		return out, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, s.ttl); err != nil {
			utils.Logger().Warnw("catalog cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

func (s *CatalogService) ListNutrition(ctx context.Context, category string) ([]models.Nutrition, error) {
	return cached(ctx, s, "nutrition:"+category, func() ([]models.Nutrition, error) {
		rows := []models.Nutrition{}
		q := s.db.WithContext(ctx).Order("id ASC")
		if category != "" {
			q = q.Where("category = ?", category)
		}
		if err := q.Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
}

func (s *CatalogService) ListWorkouts(ctx context.Context, level, primary string) ([]models.Workout, error) {
	return cached(ctx, s, fmt.Sprintf("workouts:%s:%s", level, primary), func() ([]models.Workout, error) {
		rows := []models.Workout{}
		q := s.db.WithContext(ctx).Order("id ASC")
		// struct conditions quote "primary", a reserved word
		if err := q.Where(&models.Workout{Level: level, Primary: primary}).Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	})
}

type SeedResult struct {
	Nutrition int `json:"nutrition"`
	Workouts  int `json:"workouts"`
}

// Seed inserts the embedded seed rows. Running it twice leaves the tables
// unchanged: workouts are keyed by slug and nutrition rows by name.
func (s *CatalogService) Seed(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, n := range s.cat.Seed.Nutrition {
			row := models.Nutrition{
				Name: n.Name, Protein: n.Protein, Calories: n.Calories,
				Category: n.Category, ImageURL: n.ImageURL,
			}
			var count int64
			if err := tx.Model(&models.Nutrition{}).Where("name = ?", n.Name).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("seed nutrition %q: %w", n.Name, err)
			}
			res.Nutrition++
		}
		for _, w := range s.cat.Seed.Workouts {
			row := models.Workout{
				Slug: w.Slug, Title: w.Title, Primary: w.Primary, Equipment: w.Equipment,
				Level: w.Level, ImageURL: w.ImageURL, Description: w.Description,
			}
			r := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).Create(&row)
			if r.Error != nil {
				return fmt.Errorf("seed workout %q: %w", w.Slug, r.Error)
			}
			res.Workouts += int(r.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			utils.Logger().Warnw("catalog cache invalidate failed", "error", err)
		}
	}
	return res, nil
}
