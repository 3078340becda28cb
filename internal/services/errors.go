package services

import (
	"database/sql"
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrPlanLimit       = errors.New("plan limit reached")
	ErrFeatureDisabled = errors.New("feature not included in plan")
	ErrInvalidOptions  = errors.New("invalid options")
	ErrInvalidInput    = errors.New("invalid input")
	ErrVariantRequired = errors.New("choose a variant")
	ErrUnknownVariant  = errors.New("unknown variant")
	ErrUnavailable     = errors.New("item unavailable")
	ErrEmptyCart       = errors.New("cart empty")
)

// notFound maps a missing row onto ErrNotFound and leaves other errors alone.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
