package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrSelfDelete         = errors.New("users cannot delete themselves")
	ErrForbidden          = errors.New("access forbidden")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrEmptyOrder        = errors.New("order has no items")
	ErrRequestInFlight   = errors.New("an identical request is still being processed")

	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product unavailable")

	ErrTableNotFound = errors.New("table not found")
	ErrTableExists   = errors.New("table number already exists")

	ErrExpenseNotFound = errors.New("expense not found")
)
