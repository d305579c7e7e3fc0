package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/devilmonastery/warehouse/internal/auth"
	"github.com/devilmonastery/warehouse/internal/domain/entities"
	"github.com/devilmonastery/warehouse/internal/pkg/logger"
)

// ErrIncompleteTokenPair is returned when a login response lacks either token
var ErrIncompleteTokenPair = errors.New("login response did not include both access and refresh tokens")

// Field precedence used when turning a rejected signup or login into one message
var (
	SignupErrorFields = []string{"email", "password", "username"}
	LoginErrorFields  = []string{"username", "password"}
)

// AuthService handles the session lifecycle
type AuthService struct {
	api APIClient
	log *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(api APIClient) *AuthService {
	return &AuthService{
		api: api,
		log: slog.Default().With("component", "auth-service"),
	}
}

// Login authenticates and persists the returned token pair
func (s *AuthService) Login(ctx context.Context, username, password string) (*entities.TokenPair, error) {
	var pair entities.TokenPair
	req := entities.LoginRequest{Username: username, Password: password}
	if err := s.api.Do(ctx, http.MethodPost, s.api.Endpoints().Login, req, &pair); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if pair.Access == "" || pair.Refresh == "" {
		return nil, ErrIncompleteTokenPair
	}

	if err := s.api.Tokens().SetSession(pair.Access, pair.Refresh); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.log.Debug("logged in",
		slog.String("username", username),
		slog.String("token_prefix", logger.TokenPreview(pair.Access)))
	return &pair, nil
}

// Signup registers an account using the email as username. Nothing is
// persisted; the caller logs in separately.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*entities.RegisterResponse, error) {
	return s.Register(ctx, entities.RegisterRequest{Username: email, Email: email, Password: password})
}

// Register creates an account with an explicit username
func (s *AuthService) Register(ctx context.Context, req entities.RegisterRequest) (*entities.RegisterResponse, error) {
	var resp entities.RegisterResponse
	if err := s.api.Do(ctx, http.MethodPost, s.api.Endpoints().Register, req, &resp); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &resp, nil
}

// Logout clears the stored session. The backend keeps no server-side session to revoke.
func (s *AuthService) Logout() error {
	if err := s.api.Tokens().Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// SessionStatus describes the locally stored session
type SessionStatus struct {
	LoggedIn        bool
	HasRefreshToken bool
	// Claims is nil when the access token is absent or not a readable JWT
	Claims *auth.SessionInfo
}

// Status inspects the stored tokens without contacting the backend
func (s *AuthService) Status() (*SessionStatus, error) {
	tokens := s.api.Tokens()

	access, err := tokens.GetAccessToken()
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}
	refresh, err := tokens.GetRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh token: %w", err)
	}

	status := &SessionStatus{
		LoggedIn:        access != "",
		HasRefreshToken: refresh != "",
	}
	if access != "" {
		info, err := auth.ParseSessionInfo(access)
		if err != nil {
			s.log.Debug("access token is not a readable JWT", slog.String("error", err.Error()))
		} else {
			status.Claims = info
		}
	}
	return status, nil
}
