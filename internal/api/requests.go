package api

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/lenshive/backend/internal/services"
)

const minPasswordLength = 6

// Validation messages, matching what API clients already expect.
const (
	msgFieldRequired    = "This field is required."
	msgInvalidEmail     = "Enter a valid email address."
	msgPasswordTooShort = "Ensure this field has at least 6 characters."
	msgEmailTaken       = "Email already registered"
)

var validate = validator.New()

// fieldErrors collects validation messages per input field.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// firstMessage returns the representative error chosen by the fixed field
// priority order email → password → full_name, or fallback when the map
// holds no errors for those fields.
func (fe fieldErrors) firstMessage(fallback string) string {
	for _, field := range []string{"email", "password", "full_name"} {
		if msgs := fe[field]; len(msgs) > 0 {
			return msgs[0]
		}
	}
	return fallback
}

// registerRequest accepts the full name under either the snake_case or the
// camelCase key; some clients send one, some the other.
type registerRequest struct {
	FullName      string `json:"full_name"`
	FullNameCamel string `json:"fullName"`
	Email         string `json:"email"`
	Password      string `json:"password"`
}

// fullName resolves the dual-key full name to one canonical value: the
// snake_case key wins when non-blank, otherwise the camelCase key is used.
// Returns "" when both are blank after trimming.
func (r *registerRequest) fullName() string {
	if v := strings.TrimSpace(r.FullName); v != "" {
		return v
	}
	return strings.TrimSpace(r.FullNameCamel)
}

// validateRegister checks a registration request and returns the per-field
// errors. The email-taken check is advisory; the store's unique index stays
// the final authority at insert time.
func validateRegister(ctx context.Context, svc AuthService, req *registerRequest) fieldErrors {
	errs := fieldErrors{}

	email := services.NormalizeEmail(req.Email)
	switch {
	case email == "":
		errs.add("email", msgFieldRequired)
	case validate.Var(email, "email") != nil:
		errs.add("email", msgInvalidEmail)
	default:
		if taken, err := svc.EmailRegistered(ctx, email); err == nil && taken {
			errs.add("email", msgEmailTaken)
		}
	}

	switch {
	case req.Password == "":
		errs.add("password", msgFieldRequired)
	case utf8.RuneCountInString(req.Password) < minPasswordLength:
		errs.add("password", msgPasswordTooShort)
	}

	if req.fullName() == "" {
		errs.add("full_name", msgFieldRequired)
	}

	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
