package apperror

import (
	"fmt"
	"net/http"
)

// Kind distinguishes domain error classes so callers can branch behavior
// instead of matching on HTTP codes or message text.
type Kind string

const (
	KindReferenceNotFound    Kind = "REFERENCE_NOT_FOUND"
	KindDuplicateApplication Kind = "DUPLICATE_APPLICATION"
	KindNotFound             Kind = "NOT_FOUND"
	KindInvalidInterviewData Kind = "INVALID_INTERVIEW_DATA"
	KindBadRequest           Kind = "BAD_REQUEST"
	KindInternal             Kind = "INTERNAL"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// ReferenceNotFound reports a remote reference that is missing or whose
// owning service could not be reached. Both cases surface as 404 on purpose
// (fail-closed); the cause keeps the distinction for logs.
func ReferenceNotFound(entity string, id interface{}, cause error) *AppError {
	return New(http.StatusNotFound, KindReferenceNotFound,
		fmt.Sprintf("%s not found with ID: %v", entity, id), cause)
}

// DuplicateApplication reports a second application for the same job offer
// and job seeker pair.
func DuplicateApplication() *AppError {
	return New(http.StatusConflict, KindDuplicateApplication,
		"Application already exists for this JobOffer and JobSeeker", nil)
}

// InvalidInterview reports an interview validation or state-machine violation.
func InvalidInterview(message string) *AppError {
	return New(http.StatusBadRequest, KindInvalidInterviewData, message, nil)
}
