package account

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/auth"
	"github.com/abhisek/lugat/internal/screen"
	"github.com/abhisek/lugat/internal/store"
	"github.com/abhisek/lugat/internal/ui/components"
	"github.com/abhisek/lugat/internal/workspace"
)

// NewLogin creates the sign-in screen.
func NewLogin(ws *workspace.Workspace) *FormScreen {
	return &FormScreen{
		ws:    ws,
		title: "Log in",
		op:    api.OpLogin,
		form: components.NewForm(
			components.NewTextInput("Email or user", "you@example.com", 150),
			components.NewPasswordInput("Password"),
		),
		submit: func(ws *workspace.Workspace, v []string) tea.Cmd {
			form := auth.LoginForm{Identifier: v[0], Password: v[1]}
			return signIn(func(ctx context.Context) (*store.Credentials, error) {
				return ws.Accounts().Login(ctx, form)
			})
		},
	}
}

// NewRegister creates the account registration screen.
func NewRegister(ws *workspace.Workspace) *FormScreen {
	return &FormScreen{
		ws:    ws,
		title: "Register",
		op:    api.OpRegister,
		form: components.NewForm(
			components.NewTextInput("Email", "you@example.com", 254),
			components.NewTextInput("Username", "", 150),
			components.NewPasswordInput("Password"),
		),
		submit: func(ws *workspace.Workspace, v []string) tea.Cmd {
			form := auth.RegisterForm{Email: v[0], Username: v[1], Password: v[2]}
			return signIn(func(ctx context.Context) (*store.Credentials, error) {
				return ws.Accounts().Register(ctx, form)
			})
		},
	}
}

// NewForgot creates the screen that requests a password reset email.
func NewForgot(ws *workspace.Workspace) *FormScreen {
	return &FormScreen{
		ws:    ws,
		title: "Forgot password",
		intro: "We will email you a reset link.",
		op:    api.OpForgotPassword,
		form: components.NewForm(
			components.NewTextInput("Email", "you@example.com", 254),
		),
		submit: func(ws *workspace.Workspace, v []string) tea.Cmd {
			form := auth.ForgotForm{Email: v[0]}
			return notice(func(ctx context.Context) (string, error) {
				return ws.Accounts().ForgotPassword(ctx, form)
			})
		},
		followUp: func(ws *workspace.Workspace) screen.Screen { return NewReset(ws) },
	}
}

// NewReset creates the screen that sets a new password from the emailed
// uid and token.
func NewReset(ws *workspace.Workspace) *FormScreen {
	return &FormScreen{
		ws:    ws,
		title: "Reset password",
		intro: "Paste the uid and token from the reset link.",
		op:    api.OpResetPassword,
		form: components.NewForm(
			components.NewTextInput("UID", "", 64),
			components.NewTextInput("Token", "", 128),
			components.NewPasswordInput("New password"),
		),
		submit: func(ws *workspace.Workspace, v []string) tea.Cmd {
			form := auth.ResetForm{UID: v[0], Token: v[1], NewPassword: v[2]}
			return notice(func(ctx context.Context) (string, error) {
				return ws.Accounts().ResetPassword(ctx, form)
			})
		},
	}
}
