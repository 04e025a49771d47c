package auth

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoginForm signs in with an email address or a username.
type LoginForm struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

// RegisterForm creates an account.
type RegisterForm struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,max=150"`
	Password string `validate:"required,min=8"`
}

// ForgotForm requests a password reset link.
type ForgotForm struct {
	Email string `validate:"required,email"`
}

// ResetForm completes a password reset with the values from the emailed link.
type ResetForm struct {
	UID         string `validate:"required"`
	Token       string `validate:"required"`
	NewPassword string `validate:"required,min=8"`
}

// FormError rejects a form before it is sent.
type FormError struct {
	Field string
	Msg   string
}

func (e *FormError) Error() string { return e.Msg }

// UserMessage returns the text shown to the user.
func (e *FormError) UserMessage() string { return e.Msg }

var fieldLabels = map[string]string{
	"Identifier":  "Email or username",
	"Password":    "Password",
	"Email":       "Email",
	"Username":    "Username",
	"UID":         "Reset link uid",
	"Token":       "Reset link token",
	"NewPassword": "New password",
}

// check validates form and turns the first violation into a FormError.
func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	msg := label + " is invalid."
	switch fe.Tag() {
	case "required":
		msg = label + " is required."
	case "email":
		msg = "Enter a valid email address."
	case "min":
		msg = label + " must be at least " + fe.Param() + " characters."
	case "max":
		msg = label + " must be at most " + fe.Param() + " characters."
	}
	return &FormError{Field: fe.Field(), Msg: msg}
}

func (f LoginForm) normalize() LoginForm {
	f.Identifier = strings.TrimSpace(f.Identifier)
	return f
}

func (f RegisterForm) normalize() RegisterForm {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Username = strings.TrimSpace(f.Username)
	return f
}

func (f ForgotForm) normalize() ForgotForm {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	return f
}

func (f ResetForm) normalize() ResetForm {
	f.UID = strings.TrimSpace(f.UID)
	f.Token = strings.TrimSpace(f.Token)
	return f
}
