package core

import (
	"errors"
	"fmt"
)

var (
	// ErrPlacementRejected is the sentinel every placement failure wraps.
	ErrPlacementRejected = errors.New("placement rejected")
	// ErrInvalidSave is returned when a save payload cannot be decoded.
	ErrInvalidSave = errors.New("invalid save")
)

// RejectReason says why a tower could not be placed.
type RejectReason string

const (
	ReasonOnPath            RejectReason = "on-path"
	ReasonOccupied          RejectReason = "occupied"
	ReasonInsufficientFunds RejectReason = "insufficient-funds"
	ReasonOutOfBounds       RejectReason = "out-of-bounds"
	ReasonUnknownTower      RejectReason = "unknown-tower"
)

// PlacementError describes a rejected placement.
type PlacementError struct {
	Reason RejectReason
	GridX  int
	GridY  int
	Tower  string
	Cost   int
	Money  int
}

func (e *PlacementError) Error() string {
	switch e.Reason {
	case ReasonInsufficientFunds:
		return fmt.Sprintf("placement rejected: %s costs %d, have %d", e.Tower, e.Cost, e.Money)
	case ReasonUnknownTower:
		return fmt.Sprintf("placement rejected: unknown tower %q", e.Tower)
	default:
		return fmt.Sprintf("placement rejected: (%d,%d) %s", e.GridX, e.GridY, e.Reason)
	}
}

func (e *PlacementError) Unwrap() error {
	return ErrPlacementRejected
}

// RejectionReason extracts the reason from a placement error.
func RejectionReason(err error) (RejectReason, bool) {
	var pe *PlacementError
	if errors.As(err, &pe) {
		return pe.Reason, true
	}
	return "", false
}
