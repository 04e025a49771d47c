// Package auth manages the signed-in user's tokens: login, registration,
// logout and password reset, with credentials kept in the local store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/store"
)

// ErrNotLoggedIn is returned when an operation needs stored credentials.
var ErrNotLoggedIn = errors.New("not logged in")

// Service ties the authentication endpoints to the credential store.
type Service struct {
	client *api.Client
	creds  store.CredentialRepo
	logger *slog.Logger
}

// NewService creates a Service. client need not carry a token.
func NewService(client *api.Client, creds store.CredentialRepo, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{client: client, creds: creds, logger: logger}
}

// Login signs in and stores the issued tokens.
func (s *Service) Login(ctx context.Context, form LoginForm) (*store.Credentials, error) {
	form = form.normalize()
	if err := check(form); err != nil {
		return nil, err
	}
	sess, err := s.client.Login(ctx, form.Identifier, form.Password)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, sess)
}

// Register creates an account and stores the issued tokens.
func (s *Service) Register(ctx context.Context, form RegisterForm) (*store.Credentials, error) {
	form = form.normalize()
	if err := check(form); err != nil {
		return nil, err
	}
	sess, err := s.client.Register(ctx, api.RegisterRequest{
		Email:    form.Email,
		Username: form.Username,
		Password: form.Password,
	})
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, sess)
}

// Logout tells the server to revoke the refresh token and clears the
// stored credentials. A server failure is logged and does not prevent
// local logout; only a local failure is returned.
func (s *Service) Logout(ctx context.Context) error {
	c, err := s.creds.Load(ctx)
	if err != nil {
		return err
	}
	if c != nil && c.Refresh != "" {
		if err := s.client.WithAccessToken(c.Access).Logout(ctx, c.Refresh); err != nil {
			s.logger.Warn("server logout failed", "error", err)
		}
	}
	if err := s.creds.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// Current returns the stored credentials, or ErrNotLoggedIn.
func (s *Service) Current(ctx context.Context) (*store.Credentials, error) {
	c, err := s.creds.Load(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil || c.Access == "" {
		return nil, ErrNotLoggedIn
	}
	return c, nil
}

// Client returns an API client authenticated as the stored user.
func (s *Service) Client(ctx context.Context) (*api.Client, error) {
	c, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.WithAccessToken(c.Access), nil
}

// ForgotPassword asks the server to email a reset link.
func (s *Service) ForgotPassword(ctx context.Context, form ForgotForm) (string, error) {
	form = form.normalize()
	if err := check(form); err != nil {
		return "", err
	}
	return s.client.ForgotPassword(ctx, form.Email)
}

// ResetPassword sets a new password using the emailed uid and token.
func (s *Service) ResetPassword(ctx context.Context, form ResetForm) (string, error) {
	form = form.normalize()
	if err := check(form); err != nil {
		return "", err
	}
	return s.client.ResetPassword(ctx, form.UID, form.Token, form.NewPassword)
}

func (s *Service) persist(ctx context.Context, sess api.Session) (*store.Credentials, error) {
	c := store.Credentials{
		UserID:   sess.User.ID,
		Email:    sess.User.Email,
		Username: sess.User.Username,
		Access:   sess.Access,
		Refresh:  sess.Refresh,
		APIURL:   s.client.BaseURL(),
	}
	if err := s.creds.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("store credentials: %w", err)
	}
	s.logger.Info("signed in", "user", c.Username)
	return &c, nil
}
