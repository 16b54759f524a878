package validation

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/skybi/myday-gateway/internal/api/schema"
)

var (
	errQueryParameterMissing = func(name string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.missing",
			Message: fmt.Sprintf("The query parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
	errQueryParameterInvalidType = func(name, value, expectedType string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameter.invalidType",
			Message: fmt.Sprintf("The query parameter '%s' ('%s') could not be assigned to the required type (%s).", name, value, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"value":         value,
				"expected_type": expectedType,
			},
		}
	}
	errQueryParametersConflicting = func(names ...string) *schema.Error {
		return &schema.Error{
			Type:    "validation.query.parameters.conflicting",
			Message: fmt.Sprintf("The query parameters '%s' can not be combined.", strings.Join(names, "', '")),
			Details: map[string]any{
				"parameters": names,
			},
		}
	}
)

// QueryString extracts a string value out of the query parameters of the given request.
// The value is not trimmed or otherwise modified.
func QueryString(request *http.Request, key string, required bool) (string, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" && required {
		return "", errQueryParameterMissing(key)
	}
	return value, nil
}

// QueryUnsigned extracts and validates an unsigned 64-bit integer value out of the query parameters of the given
// request
func QueryUnsigned(request *http.Request, key string, required bool, def uint64) (uint64, *schema.Error) {
	value := request.URL.Query().Get(key)
	if value == "" {
		if required {
			return 0, errQueryParameterMissing(key)
		}
		return def, nil
	}

	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errQueryParameterInvalidType(key, value, "unsigned 64-bit integer")
	}
	return parsed, nil
}

// Present reports which of the given query parameters are present in the request, even if their value is empty
func Present(request *http.Request, keys ...string) []string {
	query := request.URL.Query()
	var present []string
	for _, key := range keys {
		if query.Has(key) {
			present = append(present, key)
		}
	}
	return present
}

// Exclusive makes sure that parameters of at most one of the given groups are present in the request.
// It returns the index of the group in use or -1 if none of the parameters were given.
func Exclusive(request *http.Request, groups ...[]string) (int, *schema.Error) {
	used := -1
	var conflicting []string
	for i, group := range groups {
		present := Present(request, group...)
		if len(present) == 0 {
			continue
		}
		conflicting = append(conflicting, present...)
		if used >= 0 {
			return -1, errQueryParametersConflicting(conflicting...)
		}
		used = i
	}
	return used, nil
}
