package models

import "time"

type Profile struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"uniqueIndex;not null" json:"userId"`
	Name                 string    `json:"name"`
	Age                  int       `json:"age"`
	Gender               string    `json:"gender"`
	Height               float64   `json:"height"` // cm
	Weight               float64   `json:"weight"` // kg
	TargetWeight         float64   `json:"targetWeight"`
	Goal                 string    `json:"goal"`
	ActivityLevel        string    `json:"activityLevel"`
	DietType             string    `json:"dietType"`
	Allergies            string    `json:"allergies"` // comma separated
	MedicalConditions    string    `json:"medicalConditions"`
	PreferredWorkoutTime string    `json:"preferredWorkoutTime"`
	WorkSchedule         string    `json:"workSchedule"`
	Equipment            []string  `gorm:"serializer:json;type:text" json:"equipment"`
	ProfilePicture       string    `json:"profilePicture"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}
