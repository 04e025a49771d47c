package api

import (
	"context"
	"net/http"

	"github.com/abhisek/lugat/internal/vocab"
)

// User is the account the tokens were issued for.
type User struct {
	ID       vocab.ID `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
}

// Session is the token pair returned by login and registration.
type Session struct {
	User    User   `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginBody struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type detailReply struct {
	Detail string `json:"detail"`
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (Session, error) {
	var out Session
	if err := c.do(ctx, OpRegister, http.MethodPost, "/auth/register", nil, req, &out, authSchema); err != nil {
		return Session{}, err
	}
	return out, nil
}

// Login signs in with an email address or username.
func (c *Client) Login(ctx context.Context, identifier, password string) (Session, error) {
	var out Session
	body := loginBody{Identifier: identifier, Password: password}
	if err := c.do(ctx, OpLogin, http.MethodPost, "/auth/login", nil, body, &out, authSchema); err != nil {
		return Session{}, err
	}
	return out, nil
}

// Logout revokes the refresh token.
func (c *Client) Logout(ctx context.Context, refresh string) error {
	body := map[string]string{"refresh": refresh}
	return c.do(ctx, OpLogout, http.MethodPost, "/auth/logout", nil, body, &detailReply{}, nil)
}

// ForgotPassword asks the server to email a reset link. It returns the
// server's confirmation text.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var out detailReply
	body := map[string]string{"email": email}
	if err := c.do(ctx, OpForgotPassword, http.MethodPost, "/auth/forgot-password", nil, body, &out, nil); err != nil {
		return "", err
	}
	return out.Detail, nil
}

// ResetPassword completes a reset with the uid and token from the emailed link.
func (c *Client) ResetPassword(ctx context.Context, uid, token, newPassword string) (string, error) {
	var out detailReply
	body := map[string]string{"uid": uid, "token": token, "new_password": newPassword}
	if err := c.do(ctx, OpResetPassword, http.MethodPost, "/auth/reset-password-confirm", nil, body, &out, nil); err != nil {
		return "", err
	}
	return out.Detail, nil
}
