package handler

import (
	"errors"
	"net/http"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/middleware"
	"emoticon-rest-api/internal/service"
	"emoticon-rest-api/pkg/apierror"
	"emoticon-rest-api/pkg/response"
)

const (
	msgIncorrectCredentials = "Incorrect username or password"
	msgIncorrectUsername    = "Incorrect username"
	msgServiceNotAccessed   = "Service is not accessed"
	msgUpstreamFailed       = "Emoticon service returned an error"
)

// toAPIError maps a service error onto its HTTP representation.
// Unknown errors yield nil.
func toAPIError(err error) *apierror.Error {
	switch {
	case errors.Is(err, service.ErrDuplicateCredential),
		errors.Is(err, service.ErrRejectedCredential):
		return apierror.UnprocessableEntity(msgIncorrectCredentials)
	case errors.Is(err, service.ErrInvalidCredentials):
		return apierror.Unauthorized(msgIncorrectCredentials).WithChallenge()
	case errors.Is(err, service.ErrInvalidToken):
		return apierror.Unauthorized("Could not validate token").WithChallenge()
	case errors.Is(err, service.ErrForbidden):
		return apierror.Forbidden(msgIncorrectUsername).WithChallenge()
	case errors.Is(err, service.ErrServiceUnavailable):
		return apierror.Locked(msgServiceNotAccessed).WithChallenge()
	case errors.Is(err, service.ErrUpstreamFailed):
		return apierror.BadGateway(msgUpstreamFailed)
	}
	return nil
}

// writeError writes the mapped error, logging anything that becomes a 500.
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	if apiErr := toAPIError(err); apiErr != nil {
		response.Error(w, apiErr)
		return
	}

	log.Error(r.Context(), "request failed",
		"path", r.URL.Path,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
	response.Error(w, apierror.InternalError(""))
}
