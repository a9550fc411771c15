package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodexpress/internal/domain"
	userrepo "foodexpress/internal/repository/user"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when email/password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles registration, login and token verification.
type Service struct {
	repo   userrepo.Repository
	tokens *tokenManager
	logger *zap.Logger
}

// New creates a Service that signs tokens with secret and expires them after ttl.
func New(repo userrepo.Repository, secret string, ttl time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		tokens: newTokenManager(secret, ttl),
		logger: logger,
	}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	User        *domain.User
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.Validation("email and password are required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Create(ctx, domain.User{
		Email:        email,
		PasswordHash: string(hashed),
		FullName:     strings.TrimSpace(in.FullName),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, &domain.Error{Kind: domain.ErrAlreadyExists, Msg: "a user with this email already exists"}
		}
		return nil, err
	}
	s.logger.Info("user registered", zap.Int64("user_id", u.ID))
	return u, nil
}

// Login validates credentials and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, ExpiresIn: s.AccessTTLSeconds(), User: u}, nil
}

// Authenticate verifies a bearer token and returns the user id it carries.
func (s *Service) Authenticate(token string) (int64, error) {
	return s.tokens.Parse(token)
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NotFound("user not found")
	}
	return u, err
}

// AccessTTLSeconds exposes the access token lifetime in seconds.
func (s *Service) AccessTTLSeconds() int {
	return int(s.tokens.ttl.Seconds())
}
