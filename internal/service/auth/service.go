package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"blood-connect/internal/config"
	"blood-connect/internal/domain"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/email"
	"blood-connect/internal/service/helpers"
)

const emailTimeout = 30 * time.Second

type Service interface {
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, *domain.TokenPair, error)
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error)
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, input domain.UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, id string, input domain.ChangePasswordInput) error
}

type Claims struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Role   domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo     repository.UserRepository
	emailService email.Service
	cfg          *config.Config
	rt           helpers.Runtime

	// mu makes the email uniqueness check and the insert one step.
	mu     sync.Mutex
	emails sync.WaitGroup
}

func NewService(userRepo repository.UserRepository, emailService email.Service, cfg *config.Config, rt helpers.Runtime) Service {
	return &service{
		userRepo:     userRepo,
		emailService: emailService,
		cfg:          cfg,
		rt:           rt,
	}
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, *domain.TokenPair, error) {
	if input.Role != domain.RoleDonor && input.Role != domain.RoleRecipient {
		return nil, nil, fmt.Errorf("role %q cannot self-register: %w", input.Role, domain.ErrValidation)
	}
	if input.Role == domain.RoleDonor && !input.BloodGroup.IsValid() {
		return nil, nil, fmt.Errorf("donors must provide a blood group: %w", domain.ErrValidation)
	}
	if input.BloodGroup != "" && !input.BloodGroup.IsValid() {
		return nil, nil, domain.ErrInvalidBloodType
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := s.rt.Timestamp()
	user := &domain.User{
		ID:           helpers.NewID(),
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Phone:        input.Phone,
		BloodGroup:   input.BloodGroup,
		Location:     input.Location,
		Age:          input.Age,
		Gender:       input.Gender,
		IsActive:     true,
		CreatedAt:    now,
	}
	if user.IsDonor() {
		today := s.rt.Today()
		user.Available = true
		user.NextEligibleDate = &today
	}

	s.mu.Lock()
	exists, err := s.userRepo.ExistsByEmail(ctx, user.Email)
	if err == nil && exists {
		err = domain.ErrEmailExists
	}
	if err == nil {
		err = s.userRepo.Create(ctx, user)
	}
	s.mu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	s.rt.Log().Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	if s.emailService != nil {
		s.emails.Add(1)
		go func(toEmail, name, role string) {
			defer s.emails.Done()
			ctx, cancel := context.WithTimeout(context.Background(), emailTimeout)
			defer cancel()
			if err := s.emailService.SendWelcomeEmail(ctx, toEmail, name, role); err != nil {
				s.rt.Log().Warn("failed to send welcome email", zap.String("to", toEmail), zap.Error(err))
			}
		}(user.Email, user.Name, string(user.Role))
	}

	public := user.Public()
	return &public, tokens, nil
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	if err := s.rt.Delay(ctx); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, domain.ErrAccountInactive
	}

	tokens, err := s.generateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}

	public := user.Public()
	return &public, tokens, nil
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.rt.Timestamp))

	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	public := user.Public()
	return &public, nil
}

func (s *service) UpdateProfile(ctx context.Context, id string, input domain.UpdateProfileInput) (*domain.User, error) {
	if input.BloodGroup != nil && !input.BloodGroup.IsValid() {
		return nil, domain.ErrInvalidBloodType
	}
	if err := s.rt.Delay(ctx); err != nil {
		return nil, err
	}

	now := s.rt.Timestamp()
	updated, err := s.userRepo.Update(ctx, id, func(u *domain.User) {
		if input.Name != nil {
			u.Name = *input.Name
		}
		if input.Phone != nil {
			u.Phone = *input.Phone
		}
		if input.Location != nil {
			u.Location = *input.Location
		}
		if input.BloodGroup != nil {
			u.BloodGroup = *input.BloodGroup
		}
		if input.Age != nil {
			u.Age = input.Age
		}
		if input.Gender != nil {
			u.Gender = input.Gender
		}
		if input.AvatarURL != nil {
			u.AvatarURL = input.AvatarURL
		}
		u.UpdatedAt = &now
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrUserNotFound
	}

	public := updated.Public()
	return &public, nil
}

func (s *service) ChangePassword(ctx context.Context, id string, input domain.ChangePasswordInput) error {
	if err := s.rt.Delay(ctx); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return domain.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := s.rt.Timestamp()
	if _, err := s.userRepo.Update(ctx, id, func(u *domain.User) {
		u.PasswordHash = string(hashedPassword)
		u.UpdatedAt = &now
	}); err != nil {
		return err
	}

	s.rt.Log().Info("password changed", zap.String("user_id", id))
	return nil
}

func (s *service) generateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	now := s.rt.Timestamp()
	accessClaims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTAccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   user.ID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken: accessTokenString,
		ExpiresIn:   int64(s.cfg.JWTAccessExpiry.Seconds()),
	}, nil
}
