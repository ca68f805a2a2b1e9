package portfolio

import "fmt"

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

const (
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeMemberNotFound    = "MEMBER_NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
)

func invalidTransition(intent string, reason string) *Error {
	return &Error{
		Status:  409,
		Code:    CodeInvalidTransition,
		Message: fmt.Sprintf("%s is not allowed: %s", intent, reason),
		Details: map[string]any{"intent": intent},
	}
}

func memberNotFound(id any) *Error {
	return &Error{
		Status:  404,
		Code:    CodeMemberNotFound,
		Message: "member not found",
		Details: map[string]any{"memberId": id},
	}
}

func invalidField(field string, reason string) *Error {
	return &Error{
		Status:  422,
		Code:    CodeValidation,
		Message: "invalid field",
		Details: map[string]any{"field": field, "reason": reason},
	}
}
