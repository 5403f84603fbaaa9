// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dublix/dublix/internal/platform/apperr"
	"github.com/dublix/dublix/internal/platform/validate"
	"github.com/dublix/dublix/pkg/convert"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter and parses it as a positive integer.

Returns:
  - int: The parsed value
  - error: apperr.ValidationError when the segment is not a positive integer
*/
func IntParam(request *http.Request, name string) (int, error) {
	value := convert.ToInt(chi.URLParam(request, name))
	if value < 1 {
		return 0, apperr.ValidationError("Invalid "+name, apperr.FieldError{
			Field:   name,
			Message: "Must be a positive integer",
		})
	}
	return value, nil
}
