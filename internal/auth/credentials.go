package auth

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Messages shown to users when submitted credentials break a rule.
const (
	MsgNameRequired     = "Name is required"
	MsgInvalidEmail     = "Invalid email"
	MsgPasswordTooShort = "Password must be at least 6 characters long"
	MsgPasswordMismatch = "Password confirmation doesn't match"
	MsgEmailTaken       = "A user with this email is already registered"

	MsgEmailRequired    = "Email is required"
	MsgPasswordRequired = "A valid password is required"
)

// SignupInput is the raw signup form. Rules run in field order.
type SignupInput struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,contains=@"`
	Password        string `validate:"min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

// LoginInput is the raw login form. Login rules are intentionally weaker than signup's.
type LoginInput struct {
	Email    string `validate:"required,contains=@"`
	Password string `validate:"required,min=4"`
}

var signupMessages = map[string]string{
	"Name":            MsgNameRequired,
	"Email":           MsgInvalidEmail,
	"Password":        MsgPasswordTooShort,
	"ConfirmPassword": MsgPasswordMismatch,
}

var loginMessages = map[string]string{
	"Email":    MsgEmailRequired,
	"Password": MsgPasswordRequired,
}

// CredentialValidator runs the structural checks on login and signup input
// before any storage access. It never fails: violations come back as messages.
type CredentialValidator struct {
	validate *validator.Validate
}

// NewCredentialValidator creates a CredentialValidator.
func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{validate: validator.New()}
}

// Signup returns every violated signup rule, in a stable order. Email uniqueness
// needs a store lookup and is checked by the caller.
func (v *CredentialValidator) Signup(in SignupInput) []string {
	in.Name = strings.TrimSpace(in.Name)
	return v.messages(in, signupMessages)
}

// Login returns every violated login rule, in a stable order.
func (v *CredentialValidator) Login(in LoginInput) []string {
	return v.messages(in, loginMessages)
}

func (v *CredentialValidator) messages(in any, byField map[string]string) []string {
	messages := []string{}
	err := v.validate.Struct(in)
	if err == nil {
		return messages
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// Only reachable when in is not a struct.
		return append(messages, err.Error())
	}
	for _, fe := range fieldErrs {
		if msg, ok := byField[fe.StructField()]; ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
