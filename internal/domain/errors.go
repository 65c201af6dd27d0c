package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is always wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPhoneNumber is returned when a phone number is not in E.164 format.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// ErrNegativeAmount is returned when a money amount is below zero where
	// the schema does not allow it.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountPrecision is returned when a money amount has more than two
	// fractional digits and would be rounded on storage.
	ErrAmountPrecision = errors.New("amount cannot have more than 2 decimal places")

	// ErrAmountOutOfRange is returned when a money amount does not fit
	// NUMERIC(10,2), i.e. its absolute value is 10^8 or more.
	ErrAmountOutOfRange = errors.New("amount out of range")

	// ErrMissingSubscriber is returned when an invoice is created without
	// a reference to its owning subscriber.
	ErrMissingSubscriber = errors.New("invoice requires a subscriber")

	// ErrMissingIssueDate is returned when an invoice has no issue date.
	ErrMissingIssueDate = errors.New("invoice requires an issue date")
)
