package domain

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrCorruptRecommendation marks a persisted recommendation payload that
	// can no longer be decoded.
	ErrCorruptRecommendation = errors.New("corrupt recommendation payload")
)
