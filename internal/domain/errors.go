package domain

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrFacilityNotFound  = errors.New("facility not found")
	ErrUserNotFound      = errors.New("user not found")

	// ErrDuplicateReading means a non-deleted ComputedLog already exists for
	// the same (equipment, canonical timestamp). Nothing is persisted.
	ErrDuplicateReading = errors.New("duplicate reading for equipment and timestamp")

	ErrBadTimestamp = errors.New("unparseable reading date/time/timezone")
)
