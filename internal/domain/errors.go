package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict with current state")
	ErrInsufficientStock  = errors.New("insufficient stock")
	// ErrStorageUnavailable marks connectivity failures where no write was applied;
	// callers may retry the whole operation safely.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// InsufficientStockError reports every invoice line that could not be fulfilled.
// It unwraps to ErrInsufficientStock so errors.Is keeps working at call sites
// that do not care about the item list.
type InsufficientStockError struct {
	Items []string // product names (or IDs when the name is unknown)
}

func (e *InsufficientStockError) Error() string {
	if len(e.Items) == 0 {
		return ErrInsufficientStock.Error()
	}
	return fmt.Sprintf("not enough stock for %s", strings.Join(e.Items, ", "))
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
