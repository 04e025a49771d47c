package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lugat/internal/api"
	"github.com/abhisek/lugat/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login [username-or-email]",
	Short: "Sign in and store the tokens locally",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		var ident string
		if len(args) == 1 {
			ident = args[0]
		}
		if ident, err = p.value(ident, "Username or email: "); err != nil {
			return err
		}
		flagPass, _ := cmd.Flags().GetString("password")
		pass, err := p.value(flagPass, "Password: ")
		if err != nil {
			return err
		}

		c, err := e.auth.Login(cmd.Context(), auth.LoginForm{Identifier: ident, Password: pass})
		if err != nil {
			return userError(err, api.OpLogin)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", displayName(c.Username, c.Email))
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		var form auth.RegisterForm
		flagEmail, _ := cmd.Flags().GetString("email")
		flagUser, _ := cmd.Flags().GetString("username")
		flagPass, _ := cmd.Flags().GetString("password")
		if form.Email, err = p.value(flagEmail, "Email: "); err != nil {
			return err
		}
		if form.Username, err = p.value(flagUser, "Username: "); err != nil {
			return err
		}
		if form.Password, err = p.value(flagPass, "Password: "); err != nil {
			return err
		}

		c, err := e.auth.Register(cmd.Context(), form)
		if err != nil {
			return userError(err, api.OpRegister)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", displayName(c.Username, c.Email))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.auth.Logout(cmd.Context()); err != nil {
			return userError(err, api.OpLogout)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		c, err := e.signedIn(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "User:    %s\n", displayName(c.Username, c.Email))
		if c.Email != "" {
			fmt.Fprintf(out, "Email:   %s\n", c.Email)
		}
		if c.APIURL != "" {
			fmt.Fprintf(out, "Server:  %s\n", c.APIURL)
		}
		fmt.Fprintf(out, "Session: %s\n", tokenStatus(c.Access, time.Now()))
		return nil
	},
}

var forgotCmd = &cobra.Command{
	Use:   "forgot-password [email]",
	Short: "Email a password reset link",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		var email string
		if len(args) == 1 {
			email = args[0]
		}
		if email, err = p.value(email, "Email: "); err != nil {
			return err
		}
		msg, err := e.auth.ForgotPassword(cmd.Context(), auth.ForgotForm{Email: email})
		if err != nil {
			return userError(err, api.OpForgotPassword)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <uid> <token>",
	Short: "Set a new password from a reset link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		flagPass, _ := cmd.Flags().GetString("password")
		pass, err := p.value(flagPass, "New password: ")
		if err != nil {
			return err
		}
		msg, err := e.auth.ResetPassword(cmd.Context(), auth.ResetForm{UID: args[0], Token: args[1], NewPassword: pass})
		if err != nil {
			return userError(err, api.OpResetPassword)
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("password", "", "Password (prompted when empty)")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("username", "", "Username")
	registerCmd.Flags().String("password", "", "Password, at least 8 characters")
	resetPasswordCmd.Flags().String("password", "", "New password (prompted when empty)")
}

func displayName(username, email string) string {
	if username != "" {
		return username
	}
	return email
}

// tokenStatus describes the access token's expiry for display.
func tokenStatus(access string, now time.Time) string {
	info, err := auth.Inspect(access)
	switch {
	case err != nil:
		return "unknown expiry"
	case info.ExpiresAt.IsZero():
		return "no expiry"
	case info.Expired(now):
		return "expired " + info.ExpiresAt.Local().Format(time.DateTime) + "; run `lugat login` again"
	}
	return "valid until " + info.ExpiresAt.Local().Format(time.DateTime)
}
