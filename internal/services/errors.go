package services

import "errors"

var (
	// ErrUserNotFound is returned when the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrNoEnergy is returned when a tap is attempted at zero energy
	ErrNoEnergy = errors.New("no energy remaining")

	// ErrSpinCooldown is returned when a spin is attempted inside the
	// 24-hour cooldown window
	ErrSpinCooldown = errors.New("daily spin already used")
)
