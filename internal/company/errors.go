package company

import "errors"

var (
	// ErrNotFound means no company record exists for the user.
	ErrNotFound = errors.New("company details not found")

	// ErrUserRequired means the submission had no authenticated user id.
	ErrUserRequired = errors.New("user ID is required")

	// ErrOptionRequired means a constitution file was uploaded without the
	// accompanying option choice.
	ErrOptionRequired = errors.New("constitution option is required")

	// ErrInvalidOption means the option value is not 1, 2 or 3.
	ErrInvalidOption = errors.New("constitution option must be 1, 2 or 3")
)
