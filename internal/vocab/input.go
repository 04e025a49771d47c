package vocab

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxWordLength is the longest text the word store accepts for either side.
const MaxWordLength = 120

var validate = validator.New(validator.WithRequiredStructEnabled())

// WordInput is the payload for creating or updating a word.
type WordInput struct {
	English string `validate:"required,max=120"`
	Uzbek   string `validate:"required,max=120"`
}

// Normalize trims surrounding whitespace from both sides.
func (in WordInput) Normalize() WordInput {
	return WordInput{
		English: strings.TrimSpace(in.English),
		Uzbek:   strings.TrimSpace(in.Uzbek),
	}
}

// Validate checks the normalized input and returns a user-facing error.
func (in WordInput) Validate() error {
	err := validate.Struct(in.Normalize())
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := "English word"
	if fe.Field() == "Uzbek" {
		field = "Uzbek translation"
	}
	switch fe.Tag() {
	case "required":
		return &InputError{Field: fe.Field(), Msg: field + " is required"}
	case "max":
		return &InputError{Field: fe.Field(), Msg: fmt.Sprintf("%s must be at most %d characters", field, MaxWordLength)}
	}
	return &InputError{Field: fe.Field(), Msg: field + " is invalid"}
}

// InputError rejects a word before it reaches the server.
type InputError struct {
	Field string
	Msg   string
}

func (e *InputError) Error() string { return e.Msg }

// UserMessage returns the text shown to the user.
func (e *InputError) UserMessage() string { return e.Msg }
