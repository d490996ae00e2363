package services

import (
	"math"
	"sort"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"
)

type Badge struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// ProgressStreak counts entries walking back from now while each step is at
// most one day apart.
func ProgressStreak(entries []models.ProgressEntry, now time.Time) int {
	sorted := append([]models.ProgressEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	streak := 0
	last := now
	for _, e := range sorted {
		diffDays := math.Floor(last.Sub(e.Date).Hours() / 24)
		if diffDays > 1 {
			break
		}
		streak++
		last = e.Date
	}
	return streak
}

// Level goes up every five logged entries.
func Level(total int) int { return total/5 + 1 }

func Badges(total, streak int) []Badge {
	out := []Badge{}
	if total >= 1 {
		out = append(out, Badge{"First Step", "🦶", "Completed your first workout"})
	}
	if total >= 7 {
		out = append(out, Badge{"Week Warrior", "⚔️", "7 workouts total"})
	}
	if total >= 30 {
		out = append(out, Badge{"Consistent", "📅", "30 workouts total"})
	}
	if streak >= 3 {
		out = append(out, Badge{"On Fire", "🔥", "3 day streak"})
	}
	if streak >= 7 {
		out = append(out, Badge{"Unstoppable", "🚀", "7 day streak"})
	}
	return out
}
