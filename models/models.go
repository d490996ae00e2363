package models

// All lists every table for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Nutrition{},
		&Workout{},
		&WeeklyPlan{},
		&ProgressEntry{},
		&ChecklistItem{},
		&Favorite{},
		&NotificationSetting{},
		&ChatMessage{},
		&Alert{},
		&UserDevice{},
	}
}
