package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"advisor-api/internal/domain/user"
	"advisor-api/internal/repository"
	advisor_errors "advisor-api/pkg/errors"
	"advisor-api/pkg/events"
	"advisor-api/pkg/logger"

	"go.uber.org/zap"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// Client-facing messages.
const (
	MsgRegisterFieldsRequired = "fullName, email and password required"
	MsgPasswordTooShort       = "Password must be at least 8 characters"
	MsgUserExists             = "User already exists"
	MsgLoginFieldsRequired    = "Email and password required"
	MsgInvalidCredentials     = "Invalid email or password"
	MsgServerError            = "Server error"
)

type AuthService struct {
	users        repository.UserRepository
	hasher       PasswordHasher
	tokens       *TokenCodec
	storeTimeout time.Duration
	events       events.Publisher
	logger       *logger.Logger
}

func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens *TokenCodec, storeTimeout time.Duration) *AuthService {
	return &AuthService{
		users:        users,
		hasher:       hasher,
		tokens:       tokens,
		storeTimeout: storeTimeout,
		logger:       logger.NewNop(),
	}
}

// WithEvents publishes register and login events to p. Publish failures are
// logged and never fail the request.
func (s *AuthService) WithEvents(p events.Publisher, l *logger.Logger) *AuthService {
	s.events = p
	if l != nil {
		s.logger = l
	}
	return s
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// UserInfo is the public view of a user; the password hash never leaves the service.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthResponse struct {
	User  UserInfo
	Token string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResponse, error) {
	if err := validateRegister(in); err != nil {
		return AuthResponse{}, err
	}

	if err := s.ensureEmailAvailable(ctx, in.Email); err != nil {
		return AuthResponse{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return AuthResponse{}, upstream("hash password", err)
	}

	newUser := &user.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	if err := s.users.Create(storeCtx, newUser); err != nil {
		// A concurrent registration won the race for this email.
		if errors.Is(err, advisor_errors.ErrAlreadyExists) {
			return AuthResponse{}, advisor_errors.New(advisor_errors.ErrAlreadyExists, MsgUserExists)
		}
		return AuthResponse{}, upstream("create user", err)
	}

	token, err := s.tokens.Issue(newUser.ID, newUser.Email, newUser.FullName)
	if err != nil {
		return AuthResponse{}, upstream("issue token", err)
	}

	s.publish(ctx, events.UserRegistered, *newUser)
	return AuthResponse{User: toUserInfo(*newUser), Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return AuthResponse{}, advisor_errors.New(advisor_errors.ErrInvalidInput, MsgLoginFieldsRequired)
	}

	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	u, err := s.users.GetUserByEmail(storeCtx, in.Email)
	if err != nil {
		if errors.Is(err, advisor_errors.ErrNotFound) {
			return AuthResponse{}, invalidCredentials()
		}
		return AuthResponse{}, upstream("get user by email", err)
	}

	if !s.hasher.Verify(in.Password, u.PasswordHash) {
		return AuthResponse{}, invalidCredentials()
	}

	token, err := s.tokens.Issue(u.ID, u.Email, u.FullName)
	if err != nil {
		return AuthResponse{}, upstream("issue token", err)
	}

	s.publish(ctx, events.UserLoggedIn, u)
	return AuthResponse{User: toUserInfo(u), Token: token}, nil
}

// Logout has no server-side effect: tokens are self-contained, so the caller
// only discards its copy.
func (s *AuthService) Logout(context.Context) error {
	return nil
}

// Authenticate verifies a session token and returns its claims.
func (s *AuthService) Authenticate(token string) (SessionClaims, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return SessionClaims{}, fmt.Errorf("%w: %w", advisor_errors.ErrUnauthorized, err)
	}
	return claims, nil
}

// Ping checks that the user store is reachable.
func (s *AuthService) Ping(ctx context.Context) error {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()
	return s.users.Ping(storeCtx)
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, advisor_errors.ErrInvalidInput),
		errors.Is(err, advisor_errors.ErrAlreadyExists),
		errors.Is(err, advisor_errors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, advisor_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func (s *AuthService) ensureEmailAvailable(ctx context.Context, email string) error {
	storeCtx, cancel := s.storeContext(ctx)
	defer cancel()

	if _, err := s.users.GetUserByEmail(storeCtx, email); err == nil {
		return advisor_errors.New(advisor_errors.ErrAlreadyExists, MsgUserExists)
	} else if !errors.Is(err, advisor_errors.ErrNotFound) {
		return upstream("get user by email", err)
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType string, u user.User) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(ctx, events.AuthChannel, events.Event{
		Type:      eventType,
		Payload:   events.UserPayload{UserID: u.ID, Email: u.Email},
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		s.logger.ErrorCtx(ctx, "auth event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *AuthService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.storeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.storeTimeout)
}

func validateRegister(in RegisterInput) error {
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return advisor_errors.New(advisor_errors.ErrInvalidInput, MsgRegisterFieldsRequired)
	}
	if len(in.Password) < MinPasswordLength {
		return advisor_errors.New(advisor_errors.ErrInvalidInput, MsgPasswordTooShort)
	}
	return nil
}

func invalidCredentials() error {
	return advisor_errors.New(advisor_errors.ErrInvalidCredentials, MsgInvalidCredentials)
}

func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, advisor_errors.ErrUpstream, err)
}

func toUserInfo(u user.User) UserInfo {
	return UserInfo{ID: u.ID, Email: u.Email}
}
