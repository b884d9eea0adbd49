package service

import "errors"

var (
	// ErrDuplicateCredential is returned by SignUp when the username is taken.
	ErrDuplicateCredential = errors.New("duplicate credential")

	// ErrRejectedCredential is returned by SignUp for a malformed username or short password.
	ErrRejectedCredential = errors.New("rejected credential")

	// ErrInvalidCredentials is returned by SignIn on unknown username or wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers bad signature, bad format, expiry and unparseable claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned when a user asks for another user's emoticon.
	ErrForbidden = errors.New("forbidden")

	// ErrServiceUnavailable is returned when the image service cannot be reached.
	ErrServiceUnavailable = errors.New("emoticon service is not accessed")

	// ErrUpstreamFailed is returned when the image service answers with a non-2xx status.
	ErrUpstreamFailed = errors.New("emoticon service returned an error")
)
