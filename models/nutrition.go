package models

// Nutrition and Workout are the public catalog tables filled by the seed
// command.
type Nutrition struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `gorm:"not null" json:"name"`
	Protein  float64 `json:"protein"`
	Calories float64 `json:"calories"`
	Category string  `gorm:"index" json:"category"`
	ImageURL string  `json:"imageUrl"`
}

type Workout struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string `gorm:"not null" json:"title"`
	Primary     string `json:"primary"`
	Equipment   string `json:"equipment"`
	Level       string `gorm:"index" json:"level"`
	ImageURL    string `json:"imageUrl"`
	Description string `gorm:"type:text" json:"description"`
}
