package unit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blood-connect/internal/config"
	"blood-connect/internal/domain"
	"blood-connect/internal/service/auth"
	"blood-connect/tests/mocks"
)

func authConfig() *config.Config {
	return &config.Config{JWTSecret: "unit-test-secret-value", JWTAccessExpiry: time.Hour}
}

func TestAuthService_RegisterSendsWelcome(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	mailer := new(mocks.EmailService)
	svc := auth.NewService(users, mailer, authConfig(), testRuntime())

	sent := make(chan struct{})
	users.On("ExistsByEmail", ctx, "kavya@example.com").Return(false, nil).Once()
	users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.Role == domain.RoleRecipient && u.IsActive && !u.Available
	})).Return(nil).Once()
	mailer.On("SendWelcomeEmail", mock.Anything, "kavya@example.com", "Kavya", "recipient").
		Run(func(mock.Arguments) { close(sent) }).
		Return(nil).Once()

	user, tokens, err := svc.Register(ctx, domain.RegisterInput{
		Name: "Kavya", Email: "Kavya@Example.com", Password: "password123",
		Role: domain.RoleRecipient, Phone: "1", Location: "Pune",
	})
	require.NoError(t, err)
	assert.Equal(t, "kavya@example.com", user.Email)
	assert.NotEmpty(t, tokens.AccessToken)

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("welcome email was not sent")
	}
	users.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestAuthService_RegisterStoreError(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	svc := auth.NewService(users, nil, authConfig(), testRuntime())

	users.On("ExistsByEmail", ctx, mock.Anything).Return(false, errors.New("redis timeout")).Once()

	_, _, err := svc.Register(ctx, domain.RegisterInput{
		Name: "Kavya", Email: "kavya@example.com", Password: "password123",
		Role: domain.RoleRecipient, Phone: "1", Location: "Pune",
	})
	assert.ErrorContains(t, err, "redis timeout")
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_LoginInactive(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	svc := auth.NewService(users, nil, authConfig(), testRuntime())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("GetByEmail", ctx, "old@example.com").
		Return(&domain.User{ID: "U1", Email: "old@example.com", PasswordHash: string(hash), IsActive: false}, nil).Once()

	_, _, err = svc.Login(ctx, domain.LoginInput{Email: "old@example.com", Password: "password123"})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

func TestAuthService_ChangePasswordStoresNewHash(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.UserRepository)
	svc := auth.NewService(users, nil, authConfig(), testRuntime())

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := &domain.User{ID: "U1", PasswordHash: string(hash), IsActive: true}

	users.On("GetByID", ctx, "U1").Return(stored, nil).Once()
	users.On("Update", ctx, "U1", mock.Anything).Return(stored, nil).Once()

	require.NoError(t, svc.ChangePassword(ctx, "U1", domain.ChangePasswordInput{
		CurrentPassword: "password123", NewPassword: "brand-new-pass",
	}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("brand-new-pass")))
}
