package model

// TokenManager issues and validates bearer tokens.
type TokenManager interface {
	Generate(subject string) (string, error)
	Parse(token string) (subject string, err error)
}
