package arco

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized marks rejected credentials or a session refused by the ERP
	ErrUnauthorized = errors.New("arco: unauthorized")
	// ErrNotFound marks a product code the ERP does not resolve
	ErrNotFound = errors.New("arco: not found")
	// ErrValidation marks input rejected before or by the ERP
	ErrValidation = errors.New("arco: validation failed")
	// ErrNetwork marks transport failures and unreadable responses
	ErrNetwork = errors.New("arco: network error")
)

// RequestError carries the HTTP level detail behind one of the sentinel errors.
type RequestError struct {
	StatusCode   int
	Err          error
	Body         string
	ErrorDetails map[string]any
}

func (r *RequestError) Error() string {
	return fmt.Sprintf("status: %d err: %v message: %s", r.StatusCode, r.Err, r.Body)
}

// Unwrap classifies the response so errors.Is works against the sentinels.
func (r *RequestError) Unwrap() error {
	switch {
	case r.StatusCode == 401 || r.StatusCode == 403:
		return ErrUnauthorized
	case r.StatusCode == 404:
		return ErrNotFound
	case r.StatusCode >= 400 && r.StatusCode < 500:
		return ErrValidation
	default:
		return ErrNetwork
	}
}

type Environment int

const (
	Demo Environment = iota
	Prod
)

func (e *Environment) BaseURL() string {
	switch *e {
	case Prod:
		return "https://lact.arco365.com/ArcoERP/v2"
	case Demo:
		return "https://demolact.arco365.com/ArcoERP/v2"
	}
	panic("Invalid environment")
}

func (e *Environment) Name() string {
	switch *e {
	case Prod:
		return "prod"
	case Demo:
		return "demo"
	}
	panic("Invalid environment")
}

func (e *Environment) UnmarshalText(text []byte) error {
	val := strings.ToLower(strings.TrimSpace(string(text)))

	switch val {
	case "prod":
		*e = Prod
	case "demo":
		*e = Demo
	default:
		return fmt.Errorf("invalid ARCO_ENV: %q (allowed: prod, demo)", val)
	}
	return nil
}
