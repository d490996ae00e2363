package models

import "time"

const (
	FavoriteFood     = "food"
	FavoriteExercise = "exercise"
)

type Favorite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_favorite_user_item;not null"`
	Kind      string    `gorm:"uniqueIndex:idx_favorite_user_item;size:16;not null"`
	ItemID    string    `gorm:"uniqueIndex:idx_favorite_user_item;not null"`
	CreatedAt time.Time
}
