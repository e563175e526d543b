package practicum

import "errors"

var (
	// ErrAPIRequest indicates the request could not be performed (network, TLS, timeout).
	ErrAPIRequest = errors.New("practicum api request failed")

	// ErrServiceUnavailable indicates the API answered with 503.
	ErrServiceUnavailable = errors.New("practicum api is unavailable")

	// ErrFromDateFormat indicates the API rejected the from_date value (400).
	ErrFromDateFormat = errors.New("invalid from_date value")

	// ErrUnauthorized indicates the OAuth token was missing or rejected (401).
	ErrUnauthorized = errors.New("practicum api authorization failed")

	// ErrUnexpectedStatusCode indicates any other non-200 response.
	ErrUnexpectedStatusCode = errors.New("unexpected practicum api response code")

	// ErrResponseType indicates the response body or one of its fields has an unexpected JSON type.
	ErrResponseType = errors.New("unexpected practicum api response type")

	// ErrResponseKeys indicates a required key is absent from the response body.
	ErrResponseKeys = errors.New("missing key in practicum api response")
)
