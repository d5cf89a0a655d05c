package errors

import "net/http"

var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"One or more fields failed validation",
		http.StatusUnprocessableEntity,
	)

	ErrDuplicateKey = New(
		"DUPLICATE_KEY",
		"A record with the same name already exists at this level",
		http.StatusConflict,
	)

	ErrHasDependents = New(
		"HAS_DEPENDENTS",
		"Record is still referenced by other records and cannot be deleted",
		http.StatusConflict,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Record not found",
		http.StatusNotFound,
	)

	ErrGeocodeNoResult = New(
		"GEOCODE_NO_RESULT",
		"No coordinates could be resolved for the given address",
		http.StatusNotFound,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid credentials",
		http.StatusUnauthorized,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrFormSessionNotFound = New(
		"FORM_SESSION_NOT_FOUND",
		"Form session does not exist or has expired",
		http.StatusNotFound,
	)

	ErrStepNotAllowed = New(
		"STEP_NOT_ALLOWED",
		"Current step must pass validation before moving forward",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrStorageError = New(
		"STORAGE_ERROR",
		"Object storage operation failed",
		http.StatusBadGateway,
	)

	ErrSearchIndexError = New(
		"SEARCH_INDEX_ERROR",
		"Search index operation failed",
		http.StatusBadGateway,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
