package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound     = errors.New("requested resource not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden access")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("resource conflict")
	ErrValidation   = errors.New("validation failed")
)

// sentinelStatus is checked in order; the first match wins.
var sentinelStatus = []struct {
	err  error
	code int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrUnauthorized, http.StatusUnauthorized},
	{ErrForbidden, http.StatusForbidden},
	{ErrValidation, http.StatusBadRequest},
	{ErrBadRequest, http.StatusBadRequest},
	{ErrConflict, http.StatusConflict},
}

// constraintViolation describes a Postgres integrity error the client
// caused. Message is safe to return; the driver text is not.
type constraintViolation struct {
	code    int
	message string
}

var constraintViolations = map[string]constraintViolation{
	"23505": {http.StatusConflict, "Resource already exists"},              // unique_violation
	"23503": {http.StatusBadRequest, "Referenced resource does not exist"}, // foreign_key_violation
	"23514": {http.StatusBadRequest, "Value is outside the allowed range"}, // check_violation
	"23502": {http.StatusBadRequest, "A required field is missing"},        // not_null_violation
}

func pgViolation(err error) (constraintViolation, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return constraintViolation{}, false
	}
	v, ok := constraintViolations[pgErr.Code]
	return v, ok
}

// HTTPStatusFromError maps domain errors and client-caused database
// constraint violations to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.code
		}
	}
	if v, ok := pgViolation(err); ok {
		return v.code
	}
	return http.StatusInternalServerError
}

// ClientMessage is the message shown to API clients for a 4xx err. Database
// violations get a fixed message so driver details never leak.
func ClientMessage(err error) string {
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return err.Error()
		}
	}
	if v, ok := pgViolation(err); ok {
		return v.message
	}
	return err.Error()
}
