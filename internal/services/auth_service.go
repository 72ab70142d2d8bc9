package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fourohfour/recipeshare/internal/config"
	"github.com/fourohfour/recipeshare/internal/dto"
	"github.com/fourohfour/recipeshare/internal/models"
	"github.com/fourohfour/recipeshare/internal/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const defaultAvatar = "/placeholder.svg?height=100&width=100"

// DemoUser is the hard-coded fallback identity: login with its credentials
// succeeds even on an empty registry so first-time visitors can explore.
var DemoUser = models.User{
	ID:       "1",
	Name:     "John Doe",
	Email:    "user@example.com",
	Password: "password",
	Role:     "user",
	Avatar:   defaultAvatar,
}

// AuthService owns the mock user registry and the current session. Both are
// mirrored to the blob store on every mutation; the registry survives
// restarts, the session record makes restarts resume logged in.
//
// Credentials are plaintext on purpose: this is a local mock, not an
// authentication system.
type AuthService struct {
	store storage.Store
	cfg   *config.Config

	mu      sync.RWMutex
	users   []models.User
	current *models.User
	checked bool
}

func NewAuthService(store storage.Store, cfg *config.Config) *AuthService {
	s := &AuthService{store: store, cfg: cfg}
	s.users = s.loadRegistry()
	return s
}

// CheckAuth restores the persisted session, if any. Until it has run the
// service reports a transitional loading state. Malformed or absent session
// records resolve to unauthenticated, never to an error.
func (s *AuthService) CheckAuth(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.checked = true }()

	raw, err := s.store.Get(ctx, storage.KeyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("session restore failed, starting unauthenticated", "error", err)
		}
		return
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil || user.ID == "" {
		slog.Warn("stored session is malformed, starting unauthenticated")
		return
	}

	user.Password = ""
	s.current = &user
	slog.Info("session restored", "user_id", user.ID, "email", user.Email)
}

// Loading reports whether the startup session check is still pending.
func (s *AuthService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.checked
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*dto.AuthResponse, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("name, email and password are required")
	}

	if err := simulate(ctx, delayRegister, s.cfg.LatencyFactor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrEmailTaken
		}
	}

	user := models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
		Role:     "user",
		Avatar:   defaultAvatar,
	}

	s.users = append(s.users, user)
	s.persistRegistryLocked(ctx)
	s.setSessionLocked(ctx, user)

	return s.authResponse(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	if err := simulate(ctx, delayLogin, s.cfg.LatencyFactor); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var match *models.User
	for i := range s.users {
		if s.users[i].Email == email && s.users[i].Password == password {
			match = &s.users[i]
			break
		}
	}
	if match == nil && email == DemoUser.Email && password == DemoUser.Password {
		demo := DemoUser
		match = &demo
	}
	if match == nil {
		return nil, ErrInvalidCredentials
	}

	s.setSessionLocked(ctx, *match)
	return s.authResponse(*match)
}

// Logout clears the session from memory and storage. It never fails; a
// storage error leaves nothing worth reporting to the caller.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Delete(ctx, storage.KeyUser); err != nil {
		slog.Warn("failed to clear persisted session", "error", err)
	}
}

// Session returns a copy of the current session user, or nil.
func (s *AuthService) Session() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

func (s *AuthService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *AuthService) setSessionLocked(ctx context.Context, user models.User) {
	session := user.Sanitized()
	s.current = &session

	raw, err := json.Marshal(session)
	if err == nil {
		err = s.store.Put(ctx, storage.KeyUser, raw)
	}
	if err != nil {
		slog.Warn("failed to persist session", "error", err, "user_id", user.ID)
	}
}

func (s *AuthService) persistRegistryLocked(ctx context.Context) {
	raw, err := json.Marshal(s.users)
	if err == nil {
		err = s.store.Put(ctx, storage.KeyRegisteredUsers, raw)
	}
	if err != nil {
		slog.Warn("failed to persist user registry", "error", err, "users", len(s.users))
	}
}

func (s *AuthService) loadRegistry() []models.User {
	raw, err := s.store.Get(context.Background(), storage.KeyRegisteredUsers)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("failed to read user registry, starting empty", "error", err)
		}
		return nil
	}

	var users []models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		slog.Warn("user registry is malformed, starting empty", "error", err)
		return nil
	}
	return users
}

func (s *AuthService) authResponse(user models.User) (*dto.AuthResponse, error) {
	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		AccessToken: token,
		User:        dto.NewUserResponse(user),
	}, nil
}

func (s *AuthService) generateAccessToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
