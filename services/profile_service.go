package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"gorm.io/gorm"
)

// ImageUploader stores a base64 data URI and returns its public URL.
type ImageUploader interface {
	UploadBase64Image(ctx context.Context, dataURI, prefix string) (string, error)
}

type ProfileInput struct {
	Name                 string   `json:"name"`
	Age                  int      `json:"age"`
	Gender               string   `json:"gender"`
	Height               float64  `json:"height"`
	Weight               float64  `json:"weight"`
	TargetWeight         float64  `json:"targetWeight"`
	Goal                 string   `json:"goal"`
	ActivityLevel        string   `json:"activityLevel"`
	DietType             string   `json:"dietType"`
	Allergies            string   `json:"allergies"`
	MedicalConditions    string   `json:"medicalConditions"`
	PreferredWorkoutTime string   `json:"preferredWorkoutTime"`
	WorkSchedule         string   `json:"workSchedule"`
	Equipment            []string `json:"equipment"`
}

func (in ProfileInput) validate() error {
	if in.Age < 0 || in.Height < 0 || in.Weight < 0 || in.TargetWeight < 0 {
		return invalidf("age, height and weight cannot be negative")
	}
	return nil
}

// apply copies the non-zero fields of in onto p.
func (in ProfileInput) apply(p *models.Profile) {
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.Age > 0 {
		p.Age = in.Age
	}
	if in.Gender != "" {
		p.Gender = in.Gender
	}
	if in.Height > 0 {
		p.Height = in.Height
	}
	if in.Weight > 0 {
		p.Weight = in.Weight
	}
	if in.TargetWeight > 0 {
		p.TargetWeight = in.TargetWeight
	}
	if in.Goal != "" {
		p.Goal = in.Goal
	}
	if in.ActivityLevel != "" {
		p.ActivityLevel = in.ActivityLevel
	}
	if in.DietType != "" {
		p.DietType = in.DietType
	}
	if in.Allergies != "" {
		p.Allergies = in.Allergies
	}
	if in.MedicalConditions != "" {
		p.MedicalConditions = in.MedicalConditions
	}
	if in.PreferredWorkoutTime != "" {
		p.PreferredWorkoutTime = in.PreferredWorkoutTime
	}
	if in.WorkSchedule != "" {
		p.WorkSchedule = in.WorkSchedule
	}
	if in.Equipment != nil {
		p.Equipment = in.Equipment
	}
}

type ProfileService struct {
	db     *gorm.DB
	images ImageUploader
}

func NewProfileService(db *gorm.DB, images ImageUploader) *ProfileService {
	return &ProfileService{db: db, images: images}
}

// GetProfile returns nil without error when the user has no profile yet.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) CreateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	p := models.Profile{UserID: userID}
	in.apply(&p)
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return &p, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	in.apply(p)
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}

// UploadPicture stores the image and records its URL, creating an empty
// profile if needed.
func (s *ProfileService) UploadPicture(ctx context.Context, userID uint, dataURI string) (*models.Profile, error) {
	if s.images == nil {
		return nil, ErrUnavailable
	}
	if dataURI == "" {
		return nil, invalidf("image_base64 is required")
	}

	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = &models.Profile{UserID: userID}
	}

	url, err := s.images.UploadBase64Image(ctx, dataURI, fmt.Sprintf("user-%d", userID))
	if err != nil {
		if errors.Is(err, utils.ErrInvalidDataURI) {
			return nil, invalidf("invalid base64 image")
		}
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	p.ProfilePicture = url
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

type Metrics struct {
	BMI            float64 `json:"bmi"`
	BMICategory    string  `json:"bmiCategory"`
	BMR            float64 `json:"bmr"`
	ActivityFactor float64 `json:"activityFactor"`
	TDEE           float64 `json:"tdee"`
	DailyCalories  float64 `json:"dailyCalories"`
}

// ComputeMetrics needs height, weight, age and gender. It returns the names
// of whichever are missing.
func ComputeMetrics(p models.Profile) (*Metrics, []string) {
	var missing []string
	if p.Height <= 0 {
		missing = append(missing, "height")
	}
	if p.Weight <= 0 {
		missing = append(missing, "weight")
	}
	if p.Age <= 0 {
		missing = append(missing, "age")
	}
	if p.Gender == "" {
		missing = append(missing, "gender")
	}
	if len(missing) > 0 {
		return nil, missing
	}

	m := &Metrics{}
	if bmi, err := utils.CalculateBMI(p.Height, p.Weight); err == nil {
		m.BMI = math.Round(bmi*100) / 100
		m.BMICategory = utils.BMICategory(bmi)
	}
	bmr := utils.CalculateBMR(p.Gender, p.Weight, p.Height, p.Age)
	m.ActivityFactor = utils.ActivityFactor(p.ActivityLevel)
	tdee := bmr * m.ActivityFactor
	m.BMR = math.Round(bmr)
	m.TDEE = math.Round(tdee)
	m.DailyCalories = math.Round(utils.DailyCalories(tdee, p.Goal))
	return m, nil
}

func (s *ProfileService) Metrics(ctx context.Context, userID uint) (*Metrics, error) {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, invalidf("Profile not found. Create a profile first.")
	}
	m, missing := ComputeMetrics(*p)
	if len(missing) > 0 {
		return nil, invalidf("Missing profile fields: %s", strings.Join(missing, ", "))
	}
	return m, nil
}
