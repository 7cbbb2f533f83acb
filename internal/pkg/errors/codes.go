package errors

import "net/http"

var (
	ErrRouteRequired = New(
		"ROUTE_REQUIRED",
		"Route must not be empty",
		http.StatusUnprocessableEntity,
	)

	ErrScheduleNotFound = New(
		"SCHEDULE_NOT_FOUND",
		"Schedule not found",
		http.StatusNotFound,
	)

	ErrDraftNotFound = New(
		"DRAFT_NOT_FOUND",
		"Schedule draft not found or expired",
		http.StatusNotFound,
	)

	ErrDraftNotEditable = New(
		"DRAFT_NOT_EDITABLE",
		"Schedule draft is not in editing state",
		http.StatusConflict,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidAuthorization = New(
		"INVALID_AUTHORIZATION_STATUS",
		"Invalid location authorization status",
		http.StatusBadRequest,
	)

	ErrLocationUnavailable = New(
		"LOCATION_UNAVAILABLE",
		"No location fix available yet",
		http.StatusServiceUnavailable,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
