// Package errors provides structured error handling for the HL7 SDK.
// It defines error types that carry an HL7 error code (table 0357 where one
// applies, SDK specific codes otherwise) and rich context for debugging and
// programmatic error handling.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Category represents the type/category of an error for classification and handling
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryParse      Category = "parse"
	CategoryNotFound   Category = "not_found"
	CategoryInternal   Category = "internal"
	CategoryCancelled  Category = "cancelled"
	CategoryProtocol   Category = "protocol"
)

// Severity indicates how critical an error is
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Context provides additional context about where and when an error occurred
type Context struct {
	ControlID  string                 `json:"control_id,omitempty"`
	Segment    string                 `json:"segment,omitempty"`
	Position   int                    `json:"position,omitempty"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Component  string                 `json:"component,omitempty"`
	Operation  string                 `json:"operation,omitempty"`
	TraceID    string                 `json:"trace_id,omitempty"`
}

// HL7Error defines the interface for all HL7 SDK errors
type HL7Error interface {
	error

	// Code returns the HL7 error code
	Code() int

	// Message returns a human-readable error message
	Message() string

	// Details returns detailed technical description for debugging
	Details() string

	// Data returns structured error data for programmatic handling
	Data() interface{}

	// Category returns the error category for classification
	Category() Category

	// Severity returns the error severity level
	Severity() Severity

	// Context returns the error context information
	Context() *Context

	// WithContext returns a new error with the provided context
	WithContext(ctx *Context) HL7Error

	// WithDetail returns a new error with additional detail
	WithDetail(detail string) HL7Error

	// WithData returns a new error with structured data
	WithData(data interface{}) HL7Error

	// Unwrap returns the underlying error for error chain traversal
	Unwrap() error

	// ToJSON returns the error as a JSON-serializable map
	ToJSON() map[string]interface{}
}

type baseError struct {
	code     int
	message  string
	details  string
	data     interface{}
	category Category
	severity Severity
	context  *Context
	cause    error
}

// Error implements the error interface
func (e *baseError) Error() string {
	if e.details != "" {
		return fmt.Sprintf("%s: %s", e.message, e.details)
	}
	return e.message
}

func (e *baseError) Code() int {
	return e.code
}

func (e *baseError) Message() string {
	return e.message
}

func (e *baseError) Details() string {
	return e.details
}

func (e *baseError) Data() interface{} {
	return e.data
}

func (e *baseError) Category() Category {
	return e.category
}

func (e *baseError) Severity() Severity {
	return e.severity
}

func (e *baseError) Context() *Context {
	return e.context
}

// WithContext returns a copy of the error carrying ctx
func (e *baseError) WithContext(ctx *Context) HL7Error {
	newErr := *e
	newErr.context = ctx
	return &newErr
}

// WithDetail returns a copy of the error with detail appended
func (e *baseError) WithDetail(detail string) HL7Error {
	newErr := *e
	if newErr.details != "" {
		newErr.details = fmt.Sprintf("%s; %s", newErr.details, detail)
	} else {
		newErr.details = detail
	}
	return &newErr
}

// WithData returns a copy of the error carrying data
func (e *baseError) WithData(data interface{}) HL7Error {
	newErr := *e
	newErr.data = data
	return &newErr
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ToJSON returns the error as a JSON-serializable map
func (e *baseError) ToJSON() map[string]interface{} {
	result := map[string]interface{}{
		"code":     e.code,
		"name":     GetErrorCodeName(e.code),
		"message":  e.message,
		"category": string(e.category),
		"severity": string(e.severity),
	}

	if e.details != "" {
		result["details"] = e.details
	}

	if e.data != nil {
		result["data"] = e.data
	}

	if e.context != nil {
		result["context"] = e.context
	}

	if e.cause != nil {
		result["cause"] = e.cause.Error()
	}

	return result
}

// MarshalJSON implements json.Marshaler for baseError
func (e *baseError) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToJSON())
}

// NewError creates a new HL7Error with the specified parameters
func NewError(code int, message string, category Category, severity Severity) HL7Error {
	return &baseError{
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		context: &Context{
			Timestamp: time.Now(),
		},
	}
}

// NewErrorf creates a new HL7Error with formatted message
func NewErrorf(code int, category Category, severity Severity, format string, args ...interface{}) HL7Error {
	return NewError(code, fmt.Sprintf(format, args...), category, severity)
}

// WrapError wraps an existing error as an HL7Error
func WrapError(err error, code int, message string, category Category, severity Severity) HL7Error {
	return &baseError{
		code:     code,
		message:  message,
		category: category,
		severity: severity,
		cause:    err,
		context: &Context{
			Timestamp: time.Now(),
		},
	}
}

// WrapErrorf wraps an existing error as an HL7Error with formatted message
func WrapErrorf(err error, code int, category Category, severity Severity, format string, args ...interface{}) HL7Error {
	return WrapError(err, code, fmt.Sprintf(format, args...), category, severity)
}

// AsHL7Error finds the first HL7Error in err's chain.
func AsHL7Error(err error) (HL7Error, bool) {
	if err == nil {
		return nil, false
	}

	var hl7Err HL7Error
	if errors.As(err, &hl7Err) {
		return hl7Err, true
	}

	return nil, false
}

// IsHL7Error checks if an error is an HL7Error
func IsHL7Error(err error) bool {
	_, ok := AsHL7Error(err)
	return ok
}

// IsCategory checks if an error is of a specific category
func IsCategory(err error, category Category) bool {
	if hl7Err, ok := AsHL7Error(err); ok {
		return hl7Err.Category() == category
	}
	return false
}

// IsCode checks if an error has a specific error code
func IsCode(err error, code int) bool {
	if hl7Err, ok := AsHL7Error(err); ok {
		return hl7Err.Code() == code
	}
	return false
}
