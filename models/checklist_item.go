package models

import "time"

// ChecklistItem is one user's daily checklist, unique per (user, date).
type ChecklistItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_checklist_user_date;not null" json:"userId"`
	Date        string    `gorm:"uniqueIndex:idx_checklist_user_date;size:10;not null" json:"date"` // YYYY-MM-DD
	Breakfast   bool      `json:"breakfast"`
	Water       int       `json:"water"` // glasses
	Workout     bool      `json:"workout"`
	Sleep       bool      `json:"sleep"`
	Supplements bool      `json:"supplements"`
	Steps       int       `json:"steps"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Completion is the share of required tasks done, in percent. Supplements
// and steps are optional.
func (c ChecklistItem) Completion() int {
	done := 0
	for _, ok := range []bool{c.Breakfast, c.Water >= 8, c.Workout, c.Sleep} {
		if ok {
			done++
		}
	}
	return done * 100 / 4
}
