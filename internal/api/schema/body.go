package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
)

var (
	errRequestBodyInvalidJSON = func(err string) *Error {
		return &Error{
			Type:    "validation.requestBody.invalidJSON",
			Message: "Request body is not a valid JSON input.",
			Details: map[string]any{
				"error": err,
			},
		}
	}
	errRequestBodyTooLarge = func(limit int64) *Error {
		return &Error{
			Type:    "validation.requestBody.tooLarge",
			Message: fmt.Sprintf("The request body exceeds the maximum allowed size of %d bytes.", limit),
			Details: map[string]any{
				"limit": limit,
			},
		}
	}
	errRequestBodyParameterInvalidType = func(name, expectedType string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.invalidType",
			Message: fmt.Sprintf("The request body parameter '%s' could not be assigned to the required type (%s).", name, expectedType),
			Details: map[string]any{
				"parameter":     name,
				"expected_type": expectedType,
			},
		}
	}
	errRequestBodyParameterMissing = func(name string) *Error {
		return &Error{
			Type:    "validation.requestBody.parameter.missing",
			Message: fmt.Sprintf("The request body parameter '%s' is required but was not present in the request.", name),
			Details: map[string]any{
				"parameter": name,
			},
		}
	}
)

// UnmarshalBody parses and decodes a JSON request body and performs validations on it.
// Fields tagged with `required:"true"` have to be pointers and are reported as missing if they are nil.
func UnmarshalBody[T any](request *http.Request) (*T, []*Error, error) {
	target := new(T)
	if err := render.DecodeJSON(request.Body, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		var syntaxErr *json.SyntaxError
		var sizeErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr):
			return nil, []*Error{errRequestBodyParameterInvalidType(typeErr.Field, typeErr.Type.String())}, nil
		case errors.As(err, &sizeErr):
			return nil, []*Error{errRequestBodyTooLarge(sizeErr.Limit)}, nil
		case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			return nil, []*Error{errRequestBodyInvalidJSON(err.Error())}, nil
		default:
			return nil, nil, err
		}
	}

	errs, err := validateStruct("", target)
	if err != nil {
		return nil, nil, err
	}
	return target, errs, nil
}

func validateStruct(fieldPrefix string, val any) ([]*Error, error) {
	ref := reflect.ValueOf(val)
	if ref.Kind() == reflect.Pointer {
		ref = ref.Elem()
	}
	if ref.Kind() != reflect.Struct {
		return nil, errors.New("illegal call to validateStruct with non-struct parameter")
	}
	typ := ref.Type()

	var errs []*Error
	for i := 0; i < typ.NumField(); i++ {
		fieldDef := typ.Field(i)
		fieldName := fieldPrefix + getFieldName(fieldDef)
		field := ref.Field(i)

		if strings.EqualFold(fieldDef.Tag.Get("required"), "true") {
			if field.Kind() != reflect.Pointer {
				return nil, fmt.Errorf("required field '%s' has to be a pointer", fieldName)
			}
			if field.IsNil() {
				errs = append(errs, errRequestBodyParameterMissing(fieldName))
				continue
			}
		}

		// Descend into nested structures
		if field.Kind() == reflect.Pointer {
			if field.IsNil() {
				continue
			}
			field = field.Elem()
		}
		if field.Kind() == reflect.Struct {
			subErrs, err := validateStruct(fieldName+".", field.Interface())
			if err != nil {
				return nil, err
			}
			errs = append(errs, subErrs...)
		}
	}

	return errs, nil
}

func getFieldName(def reflect.StructField) string {
	jsonVal, ok := def.Tag.Lookup("json")
	if !ok || jsonVal == "-" {
		return def.Name
	}
	name, _, _ := strings.Cut(jsonVal, ",")
	return name
}
