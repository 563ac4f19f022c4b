package errors

import (
	"fmt"
	"unicode/utf8"
)

// ValidationErrorData contains structured data for validation errors
type ValidationErrorData struct {
	Field      string      `json:"field"`
	Value      interface{} `json:"value,omitempty"`
	Expected   string      `json:"expected"`
	Got        string      `json:"got,omitempty"`
	Constraint string      `json:"constraint,omitempty"`
}

// IndexErrorData contains structured data for out of range access
type IndexErrorData struct {
	Kind  string `json:"kind"`
	Index int    `json:"index"`
	Size  int    `json:"size"`
}

// ValidationError creates a generic validation error
func ValidationError(message string) HL7Error {
	return NewError(CodeDataTypeError, message, CategoryValidation, SeverityError)
}

// ValidationErrorf creates a generic validation error with formatting
func ValidationErrorf(format string, args ...interface{}) HL7Error {
	return NewErrorf(CodeDataTypeError, CategoryValidation, SeverityError, format, args...)
}

// InvalidDelimiter creates an error for a delimiter value that is not
// exactly one byte long.
func InvalidDelimiter(setting, value string) HL7Error {
	got := fmt.Sprintf("%d bytes", len(value))
	if len(value) < 16 {
		got = fmt.Sprintf("%q (%d bytes, %d runes)", value, len(value), utf8.RuneCountInString(value))
	}

	return NewError(
		CodeInvalidDelimiter,
		fmt.Sprintf("Invalid delimiter for '%s': expected exactly one character, got %s", setting, got),
		CategoryValidation,
		SeverityError,
	).WithData(&ValidationErrorData{
		Field:      setting,
		Value:      value,
		Expected:   "single character",
		Got:        got,
		Constraint: "len == 1",
	})
}

// UnknownSetting creates an error for a configuration setting name the SDK
// does not define.
func UnknownSetting(name string) HL7Error {
	return NewError(
		CodeUnknownSetting,
		fmt.Sprintf("Unknown setting: %s", name),
		CategoryValidation,
		SeverityError,
	).WithData(&ValidationErrorData{
		Field:    name,
		Expected: "known setting name",
	})
}

// IndexOutOfRange creates an error for access outside a segment list or
// field list.
func IndexOutOfRange(kind string, index, size int) HL7Error {
	return NewError(
		CodeIndexOutOfRange,
		fmt.Sprintf("%s index %d out of range [0, %d)", kind, index, size),
		CategoryNotFound,
		SeverityError,
	).WithData(&IndexErrorData{
		Kind:  kind,
		Index: index,
		Size:  size,
	})
}
