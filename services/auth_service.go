package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Devak1234/Fitness-Chatbot/models"
	"github.com/Devak1234/Fitness-Chatbot/utils"

	"gorm.io/gorm"
)

const resetTokenTTL = 15 * time.Minute

// ResetMailer delivers password reset codes.
type ResetMailer interface {
	SendResetEmail(ctx context.Context, to, code string) error
}

type AuthService struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
	mailer ResetMailer
	now    func() time.Time
}

func NewAuthService(db *gorm.DB, secret []byte, ttl time.Duration, mailer ResetMailer) *AuthService {
	return &AuthService{db: db, secret: secret, ttl: ttl, mailer: mailer, now: time.Now}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) RegisterUser(ctx context.Context, email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalidf("email and password are required")
	}

	if _, err := s.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Email: email, Password: hashedPassword, Name: name}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// AuthenticateUser returns a signed token. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AuthService) AuthenticateUser(ctx context.Context, email, password string) (string, error) {
	user, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, s.secret, s.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AuthService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ForgotPassword stores a short-lived reset code and emails it. Unknown
// emails succeed silently so callers cannot discover which accounts exist.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.FindUserByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	user.ResetToken = utils.GenerateRandomToken(6)
	user.ResetTokenExp = s.now().Add(resetTokenTTL)
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	if s.mailer == nil {
		utils.Logger().Warnw("reset email not sent: mailer not configured", "user_id", user.ID)
		return nil
	}
	if err := s.mailer.SendResetEmail(ctx, user.Email, user.ResetToken); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return invalidf("Invalid input")
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("reset_token = ?", token).First(&user).Error
	if err != nil || s.now().After(user.ResetTokenExp) {
		return invalidf("Invalid or expired token")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	return s.db.WithContext(ctx).Save(&user).Error
}
