package services

import (
	"context"
	"sync"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"gorm.io/gorm"
)

const (
	workoutReminderText   = "Time for your workout! 💪"
	waterReminderText     = "Time to drink some water! Stay hydrated! 💧"
	checklistReminderText = "Don't forget to complete your daily fitness routine! ✅"

	// a daily reminder missed by more than this is skipped for the day
	reminderGrace = 30 * time.Minute
)

// reminderState remembers what was already sent to one user.
type reminderState struct {
	workoutDay   string
	checklistDay string
	lastWater    time.Time
}

// dailyDue reports whether a HH:MM reminder should fire at now.
func dailyDue(clock string, now time.Time, lastDay string) bool {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return false
	}
	at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if now.Before(at) || now.Sub(at) > reminderGrace {
		return false
	}
	return lastDay != now.Format(dateLayout)
}

// dueReminders returns the messages to send at now and the updated state.
// Water reminders start one interval after the first tick that sees them
// enabled.
func dueReminders(ns models.NotificationSetting, now time.Time, st reminderState) ([]string, reminderState) {
	var out []string
	today := now.Format(dateLayout)

	if ns.WorkoutReminders && dailyDue(ns.WorkoutTime, now, st.workoutDay) {
		out = append(out, workoutReminderText)
		st.workoutDay = today
	}
	if ns.ChecklistReminders && dailyDue(ns.ChecklistTime, now, st.checklistDay) {
		out = append(out, checklistReminderText)
		st.checklistDay = today
	}

	if !ns.WaterReminders || ns.WaterInterval <= 0 {
		st.lastWater = time.Time{}
	} else if st.lastWater.IsZero() {
		st.lastWater = now
	} else if now.Sub(st.lastWater) >= time.Duration(ns.WaterInterval)*time.Minute {
		out = append(out, waterReminderText)
		st.lastWater = now
	}
	return out, st
}

// ReminderScheduler polls notification settings and emits reminder alerts.
type ReminderScheduler struct {
	db   *gorm.DB
	bus  AlertEmitter
	tick time.Duration
	now  func() time.Time

	mu    sync.Mutex
	state map[uint]reminderState
}

func NewReminderScheduler(db *gorm.DB, bus AlertEmitter, tick time.Duration) *ReminderScheduler {
	if tick <= 0 {
		tick = time.Minute
	}
	return &ReminderScheduler{db: db, bus: bus, tick: tick, now: time.Now, state: map[uint]reminderState{}}
}

// RunOnce checks every user with a reminder switched on and returns how
// many reminders were sent.
func (r *ReminderScheduler) RunOnce(ctx context.Context) (int, error) {
	var settings []models.NotificationSetting
	err := r.db.WithContext(ctx).
		Where("workout_reminders = ? OR water_reminders = ? OR checklist_reminders = ?", true, true, true).
		Find(&settings).Error
	if err != nil {
		return 0, err
	}

	now := r.now()
	sent := 0
	for _, ns := range settings {
		r.mu.Lock()
		msgs, st := dueReminders(ns, now, r.state[ns.UserID])
		r.state[ns.UserID] = st
		r.mu.Unlock()

		for _, m := range msgs {
			if _, err := r.bus.Emit(ctx, ns.UserID, "reminder", m); err != nil {
				utils.Logger().Warnw("reminder emit failed", "user_id", ns.UserID, "error", err)
				continue
			}
			sent++
		}
	}
	return sent, nil
}

// Run ticks until ctx is cancelled.
func (r *ReminderScheduler) Run(ctx context.Context) {
	t := time.NewTicker(r.tick)
	defer t.Stop()
	utils.Logger().Infow("reminder scheduler started", "tick", r.tick.String())

	for {
		select {
		case <-ctx.Done():
			utils.Logger().Infow("reminder scheduler stopped")
			return
		case <-t.C:
			if n, err := r.RunOnce(ctx); err != nil {
				utils.Logger().Warnw("reminder tick failed", "error", err)
			} else if n > 0 {
				utils.Logger().Debugw("reminders sent", "count", n)
			}
		}
	}
}
