package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard-service/internal/events"
	"jobboard-service/internal/jwt"
	"jobboard-service/internal/model"
	"jobboard-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	RegisterUser(ctx context.Context, firstName, lastName, email, password string) (*model.User, error)
	LoginUser(ctx context.Context, email, password string) (accessToken string, user *model.User, err error)
	DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokens    *jwt.TokenService
	publisher events.EventPublisher
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.TokenService, publisher events.EventPublisher) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		publisher: publisher,
	}
}

func (s *authService) RegisterUser(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	user.ID = newID

	go s.publisher.PublishUserRegistered(user)

	return user, nil
}

// LoginUser returns the same ErrInvalidCredentials whether the email is
// unknown or the password does not match, so callers cannot enumerate
// accounts.
func (s *authService) LoginUser(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return accessToken, user, nil
}

func (s *authService) DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error {
	if callerID != targetID {
		return ErrNotOwner
	}

	deleted, err := s.userRepo.Delete(ctx, targetID)
	if err != nil {
		return err
	}

	if !deleted {
		return ErrUserNotFound
	}

	return nil
}
