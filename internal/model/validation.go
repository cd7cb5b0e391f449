package model

import "strings"

// Validation error codes produced by the identity manager during registration.
const (
	CodeDuplicateUserName               = "DuplicateUserName"
	CodeInvalidEmail                    = "InvalidEmail"
	CodePasswordTooShort                = "PasswordTooShort"
	CodePasswordRequiresDigit           = "PasswordRequiresDigit"
	CodePasswordRequiresLower           = "PasswordRequiresLower"
	CodePasswordRequiresUpper           = "PasswordRequiresUpper"
	CodePasswordRequiresNonAlphanumeric = "PasswordRequiresNonAlphanumeric"
)

// ValidationError is a single coded registration failure.
type ValidationError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ValidationErrors carries every violation found during registration so
// callers can enumerate them individually.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	descriptions := make([]string, len(e))
	for i, v := range e {
		descriptions[i] = v.Description
	}
	return strings.Join(descriptions, "; ")
}
