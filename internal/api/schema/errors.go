package schema

var emptyMap = map[string]any{}

var (
	ErrInternal = &Error{
		Type:    "generic.internal",
		Message: "An internal error occurred.",
		Details: emptyMap,
	}
	ErrNotFound = &Error{
		Type:    "generic.notFound",
		Message: "Resource not found.",
		Details: emptyMap,
	}
	ErrMethodNotAllowed = &Error{
		Type:    "generic.methodNotAllowed",
		Message: "Method not allowed.",
		Details: emptyMap,
	}
	ErrUpstreamUnavailable = &Error{
		Type:    "upstream.unavailable",
		Message: "The myday API could not be reached.",
		Details: emptyMap,
	}
	ErrUpstreamProtocol = &Error{
		Type:    "upstream.unexpectedResponse",
		Message: "The myday API responded in an unexpected way.",
		Details: emptyMap,
	}
)

// ErrorResponse represents the response structure sent by the gateway API whenever errors occurred
type ErrorResponse struct {
	Status int      `json:"status"`
	Errors []*Error `json:"errors"`
}

// Error represents a single error present in the ErrorResponse
type Error struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// Error makes Error usable as a regular Go error value
func (err *Error) Error() string {
	return err.Type + ": " + err.Message
}
