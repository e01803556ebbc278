// Package handlers contains the HTTP layer adapters. Each handler parses
// and validates the request, delegates to a service, and maps service
// errors to HTTP status codes.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// maxBodySize caps request bodies at 1 MiB.
const maxBodySize = 1 << 20

// parseJSON decodes the request body into a value of type T.
// Unknown fields are rejected so typos in field names surface as errors
// instead of silently ignored input.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON body: %w", err)
	}

	return v, nil
}

// queryBool reads a boolean query parameter, treating absence and parse
// failures as false.
func queryBool(r *http.Request, name string) bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && value
}
