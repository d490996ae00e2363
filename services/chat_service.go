package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Devak1234/Fitness-Chatbot/models"

	"gorm.io/gorm"
)

const (
	chatHistoryLimit = 50
	chatDisclaimer   = "Note: This is general fitness guidance, not medical advice. Please consult a doctor or certified trainer for personalised medical guidance."
)

type ChatRequest struct {
	Message          string          `json:"message" binding:"required"`
	NutritionContext json.RawMessage `json:"nutritionContext,omitempty"`
	WorkoutContext   json.RawMessage `json:"workoutContext,omitempty"`
}

// missingProfileFields lists the profile fields replies depend on, in the
// order they are reported to the user.
func missingProfileFields(p *models.Profile) []string {
	if p == nil {
		return []string{"name", "age", "gender", "height", "weight", "goal", "activityLevel", "dietType"}
	}
	var missing []string
	check := func(name string, ok bool) {
		if !ok {
			missing = append(missing, name)
		}
	}
	check("name", p.Name != "")
	check("age", p.Age > 0)
	check("gender", p.Gender != "")
	check("height", p.Height > 0)
	check("weight", p.Weight > 0)
	check("goal", p.Goal != "")
	check("activityLevel", p.ActivityLevel != "")
	check("dietType", p.DietType != "")
	return missing
}

func hasNutAllergy(allergies string) bool {
	for _, a := range strings.Split(allergies, ",") {
		if strings.EqualFold(strings.TrimSpace(a), "nuts") {
			return true
		}
	}
	return false
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func planLabel(goal string) string {
	switch goal {
	case "Weight Gain":
		return "Weight gain plan"
	case "Weight Loss":
		return "Weight loss plan"
	default:
		return "Strength training plan"
	}
}

// RespondTo picks a canned reply by keyword. It never calls out to a model.
func RespondTo(p *models.Profile, message string) string {
	if missing := missingProfileFields(p); len(missing) > 0 {
		return fmt.Sprintf("Please complete your profile first. Missing: %s. Fill in the details in the Profile section to get personalized recommendations.",
			strings.Join(missing, ", "))
	}

	msg := strings.ToLower(message)
	goal := strings.ToLower(p.Goal)
	var b strings.Builder

	switch {
	case containsAny(msg, "diet", "meal"):
		almonds := " and almonds"
		if hasNutAllergy(p.Allergies) {
			almonds = ""
		}
		fmt.Fprintf(&b, "Based on your profile (%s, %d years, %s goal), here are three %s options:\n\n", p.Name, p.Age, goal, planLabel(p.Goal))
		b.WriteString("Plan A: High-Calorie Balanced Gain Plan\n")
		fmt.Fprintf(&b, "Breakfast: Oats with banana%s (~350 calories)\n", almonds)
		b.WriteString("Mid-morning snack: Apple with peanut butter\n")
		b.WriteString("Lunch: Brown rice, chicken curry, mixed vegetables\n")
		b.WriteString("Evening snack: Banana milkshake\n")
		b.WriteString("Dinner: Chapati with paneer butter masala\n\n")

		b.WriteString("Plan B: Calorie-Controlled Loss Plan\n")
		b.WriteString("Breakfast: Green tea, boiled eggs, whole wheat toast (~300 calories)\n")
		b.WriteString("Mid-morning snack: Apple\n")
		b.WriteString("Lunch: Grilled chicken salad, brown rice (~450 calories)\n")
		b.WriteString("Evening snack: Carrot sticks with hummus\n")
		b.WriteString("Dinner: Fish, steamed vegetables (~400 calories)\n\n")

		b.WriteString("Plan C: Vegetarian Balanced Plan\n")
		b.WriteString("Breakfast: Poha with peanuts and banana (~400 calories)\n")
		b.WriteString("Mid-morning snack: Banana and curd\n")
		b.WriteString("Lunch: Rice, dal, paneer sabzi, salad\n")
		b.WriteString("Evening snack: Sweet potato and curd\n")
		b.WriteString("Dinner: Chapati, mixed vegetable curry\n\n")

	case containsAny(msg, "workout", "exercise"):
		fmt.Fprintf(&b, "Here are three %s workout plan options:\n\n", planLabel(p.Goal))
		if p.ActivityLevel == "Sedentary" {
			b.WriteString(sedentaryWorkouts)
		} else {
			b.WriteString(activeWorkouts)
		}

	case strings.Contains(msg, "chest"):
		b.WriteString("For chest workouts, focus on compound movements first:\n\n")
		b.WriteString("Beginner: Push-ups, Wall push-ups, Dumbbell flyes\n")
		b.WriteString("Intermediate: Bench press, Incline press, Cable crossovers\n")
		b.WriteString("Advanced: Barbell bench press, Dips, Decline press\n\n")
		b.WriteString("Train chest 1-2 times per week with 3-4 sets of 8-12 reps.\n")
		b.WriteString("Focus on full range of motion and controlled movements.\n\n")

	case containsAny(msg, "abs", "core"):
		b.WriteString("For abs/core training, combine different exercises:\n\n")
		b.WriteString("• Planks: 3 sets of 20-60 seconds\n")
		b.WriteString("• Crunches: 3 sets of 10-15 reps\n")
		b.WriteString("• Leg raises: 3 sets of 8-12 reps\n")
		b.WriteString("• Russian twists: 3 sets of 10-15 reps per side\n")
		b.WriteString("• Bicycle crunches: 3 sets of 10-15 reps per side\n\n")
		b.WriteString("Train abs 2-3 times per week, not daily. Focus on diet for visible results!\n\n")

	case containsAny(msg, "lazy", "motivat", "tired"):
		b.WriteString("I understand feeling unmotivated sometimes! Here's how to get started:\n\n")
		b.WriteString("• Start small: Just 5-10 minutes of movement today\n")
		b.WriteString("• Set micro-goals: \"I'll do 10 push-ups\" instead of \"I'll workout for an hour\"\n")
		fmt.Fprintf(&b, "• Remember your why: Your %s goal is worth it!\n", goal)
		b.WriteString("• Track progress: Use the Progress tab to see your improvements\n")
		b.WriteString("• Be consistent: Better to do something daily than perfect workouts weekly\n\n")
		b.WriteString("You've got this! Every expert was once a beginner. 💪\n\n")

	case containsAny(msg, "nutrition", "protein", "calories"):
		b.WriteString(nutritionAdvice(p))

	default:
		fmt.Fprintf(&b, "Hi %s! How can I help you with your fitness goals today?\n\n", p.Name)
		b.WriteString("I can help with:\n")
		b.WriteString("• Personalized workout plans (beginner to advanced)\n")
		b.WriteString("• Diet plans and nutrition advice\n")
		b.WriteString("• Exercise recommendations by muscle group\n")
		b.WriteString("• Motivation and habit-building tips\n")
		b.WriteString("• Progress tracking guidance\n\n")
		fmt.Fprintf(&b, "What would you like to focus on? Your %s goal is totally achievable! 💪\n\n", goal)
	}

	b.WriteString(chatDisclaimer)
	return b.String()
}

func nutritionAdvice(p *models.Profile) string {
	calories := func(fallback string) string {
		if m, missing := ComputeMetrics(*p); len(missing) == 0 {
			return fmt.Sprintf("%.0f", m.DailyCalories)
		}
		return fallback
	}

	var b strings.Builder
	b.WriteString("Based on your profile, here's some nutrition guidance:\n\n")
	switch p.Goal {
	case "Weight Gain":
		fmt.Fprintf(&b, "• Aim for %s calories daily\n", calories("2500+"))
		b.WriteString("• Focus on protein: 1.6-2.2g per kg of body weight\n")
		b.WriteString("• Include healthy fats and complex carbs\n")
		b.WriteString("• Good sources: Chicken, eggs, paneer, nuts, rice, potatoes\n")
	case "Weight Loss":
		fmt.Fprintf(&b, "• Aim for %s calories daily\n", calories("1800-2200"))
		b.WriteString("• Create 500 calorie deficit for 0.5kg/week loss\n")
		b.WriteString("• High protein, moderate carbs, healthy fats\n")
		b.WriteString("• Focus on whole foods and portion control\n")
	default:
		fmt.Fprintf(&b, "• Aim for %s calories\n", calories("maintenance"))
		b.WriteString("• Balanced macros: 40% carbs, 30% protein, 30% fats\n")
		b.WriteString("• Include all food groups for optimal health\n")
	}
	b.WriteString("\n\n")
	return b.String()
}

const sedentaryWorkouts = `Plan A: Beginner Full Body (3 days/week)
Monday: Push-ups 2x8, Squats 2x10, Plank 2x20s
Tuesday: Rest or light walk
Wednesday: Lunges 2x8 each leg, Bird-dog 2x10 each side
Thursday: Rest
Friday: Wall push-ups 2x10, Glute bridges 2x12
Saturday: Active rest - yoga or stretching
Sunday: Full rest

Plan B: Beginner Upper/Lower Split (4 days/week)
Monday: Upper - Push-ups 2x8, Dumbbell rows 2x10
Tuesday: Lower - Squats 2x10, Lunges 2x8 each leg
Wednesday: Rest
Thursday: Upper - Push-ups 2x8, Plank 2x20s
Friday: Lower - Squats 2x10, Glute bridges 2x12
Saturday: Light cardio
Sunday: Rest

Plan C: Beginner Circuit Training (3 days/week)
Monday: Circuit - Push-ups 2x6, Squats 2x8, Plank 2x15s, Jumping jacks 2x20
Tuesday: Rest
Wednesday: Circuit - Lunges 2x6 each leg, Bird-dog 2x8 each side, Mountain climbers 2x10
Thursday: Rest
Friday: Circuit - Push-ups 2x6, Squats 2x8, Plank 2x15s
Saturday: Active recovery
Sunday: Rest

`

const activeWorkouts = `Plan A: Intermediate Push/Pull/Legs Split
Monday: Chest/Triceps - Push-ups 3x12, Dumbbell press 3x10, Tricep dips 3x10
Tuesday: Back/Biceps - Pull-ups 3x8, Dumbbell rows 3x10, Bicep curls 3x12
Wednesday: Rest or light cardio
Thursday: Legs - Squats 3x12, Lunges 3x10 each leg, Calf raises 3x15
Friday: Shoulders/Abs - Overhead press 3x10, Lateral raises 3x12, Planks 3x30s
Saturday: Full body compound lifts
Sunday: Rest

Plan B: Intermediate Upper/Lower Split
Monday: Upper - Bench press 3x10, Pull-ups 3x8, Overhead press 3x10
Tuesday: Lower - Squats 3x12, Deadlifts 3x8, Lunges 3x10 each leg
Wednesday: Rest
Thursday: Upper - Dumbbell press 3x10, Rows 3x10, Lateral raises 3x12
Friday: Lower - Front squats 3x10, Romanian deadlifts 3x10, Calf raises 3x15
Saturday: Conditioning or sports
Sunday: Rest

Plan C: Intermediate Full Body (4 days/week)
Monday: Squats 3x10, Bench press 3x10, Pull-ups 3x8, Planks 3x30s
Tuesday: Rest
Wednesday: Deadlifts 3x8, Overhead press 3x10, Lunges 3x10 each leg
Thursday: Rest
Friday: Squats 3x10, Dumbbell press 3x10, Rows 3x10, Russian twists 3x15
Saturday: Light conditioning
Sunday: Rest

`

type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

// Reply answers the message for the caller's profile and stores both sides
// of the exchange.
func (s *ChatService) Reply(ctx context.Context, userID uint, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Message) == "" {
		return "", invalidf("message is required")
	}

	var profile *models.Profile
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	switch {
	case err == nil:
		profile = &p
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return "", err
	}

	reply := RespondTo(profile, req.Message)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.ChatMessage{UserID: userID, Sender: "user", Text: req.Message}).Error; err != nil {
			return err
		}
		return tx.Create(&models.ChatMessage{UserID: userID, Sender: "assistant", Text: reply}).Error
	})
	if err != nil {
		return "", fmt.Errorf("store chat: %w", err)
	}
	return reply, nil
}

// History returns the latest messages, oldest first.
func (s *ChatService) History(ctx context.Context, userID uint) ([]models.ChatMessage, error) {
	msgs := []models.ChatMessage{}
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("id DESC").Limit(chatHistoryLimit).Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
