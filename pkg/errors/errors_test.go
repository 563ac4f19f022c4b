package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
)

func TestHL7ErrorInterface(t *testing.T) {
	tests := []struct {
		name     string
		err      HL7Error
		wantCode int
		wantCat  Category
		wantSev  Severity
	}{
		{
			name:     "invalid delimiter",
			err:      InvalidDelimiter("FIELD_SEPARATOR", "##"),
			wantCode: CodeInvalidDelimiter,
			wantCat:  CategoryValidation,
			wantSev:  SeverityError,
		},
		{
			name:     "invalid header",
			err:      InvalidHeader("first segment is PID"),
			wantCode: CodeInvalidHeader,
			wantCat:  CategoryParse,
			wantSev:  SeverityError,
		},
		{
			name:     "index out of range",
			err:      IndexOutOfRange("segment", 4, 2),
			wantCode: CodeIndexOutOfRange,
			wantCat:  CategoryNotFound,
			wantSev:  SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Code(); got != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got, tt.wantCode)
			}
			if got := tt.err.Category(); got != tt.wantCat {
				t.Errorf("Category() = %v, want %v", got, tt.wantCat)
			}
			if got := tt.err.Severity(); got != tt.wantSev {
				t.Errorf("Severity() = %v, want %v", got, tt.wantSev)
			}

			if msg := tt.err.Error(); msg == "" {
				t.Error("Error() returned empty string")
			}
		})
	}
}

func TestErrorContext(t *testing.T) {
	err := ValidationError("test error")

	if ctx := err.Context(); ctx == nil {
		t.Error("Context() should never return nil")
	}

	msgCtx := &Context{
		ControlID: "MSG00001",
		Segment:   "PID",
		Component: "message",
	}

	errWithCtx := err.WithContext(msgCtx)
	if got := errWithCtx.Context(); got != msgCtx {
		t.Errorf("WithContext() failed, got %v, want %v", got, msgCtx)
	}

	// Original error should be unchanged
	if err.Context().ControlID != "" {
		t.Error("Original error was modified by WithContext()")
	}
}

func TestErrorChaining(t *testing.T) {
	cause := fmt.Errorf("underlying cause")
	err := WrapError(cause, CodeInternalError, "wrapped error", CategoryInternal, SeverityError)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	outer := fmt.Errorf("outer: %w", err)
	if !IsCode(outer, CodeInternalError) {
		t.Error("IsCode() should see through fmt.Errorf wrapping")
	}
}

func TestInvalidDelimiterData(t *testing.T) {
	err := InvalidDelimiter("COMPONENT_SEPARATOR", "")

	data, ok := err.Data().(*ValidationErrorData)
	if !ok {
		t.Fatalf("Data() = %T, want *ValidationErrorData", err.Data())
	}
	if data.Field != "COMPONENT_SEPARATOR" {
		t.Errorf("Field = %q, want COMPONENT_SEPARATOR", data.Field)
	}
	if data.Constraint != "len == 1" {
		t.Errorf("Constraint = %q, want len == 1", data.Constraint)
	}
}

func TestInvalidSegmentContext(t *testing.T) {
	err := InvalidSegment(3, "pi", "name must be three upper-case characters")

	if got := err.Context().Segment; got != "pi" {
		t.Errorf("Context().Segment = %q, want pi", got)
	}
	if got := err.Context().Position; got != 3 {
		t.Errorf("Context().Position = %d, want 3", got)
	}
}

func TestErrorSerialization(t *testing.T) {
	err := InvalidHeader("missing field separator").
		WithContext(&Context{ControlID: "123"}).
		WithDetail("Additional detail information")

	jsonData := err.ToJSON()
	if jsonData["code"] != CodeInvalidHeader {
		t.Errorf("ToJSON() code = %v, want %v", jsonData["code"], CodeInvalidHeader)
	}
	if jsonData["name"] != "InvalidHeader" {
		t.Errorf("ToJSON() name = %v, want InvalidHeader", jsonData["name"])
	}

	jsonBytes, err2 := json.Marshal(err)
	if err2 != nil {
		t.Fatalf("Failed to marshal error: %v", err2)
	}

	var unmarshaled map[string]interface{}
	if err2 := json.Unmarshal(jsonBytes, &unmarshaled); err2 != nil {
		t.Fatalf("Failed to unmarshal error: %v", err2)
	}

	if unmarshaled["code"] != float64(CodeInvalidHeader) {
		t.Errorf("Unmarshaled code = %v, want %v", unmarshaled["code"], CodeInvalidHeader)
	}
}

func TestConvertStandardError(t *testing.T) {
	if ConvertStandardError(nil) != nil {
		t.Error("ConvertStandardError(nil) should return nil")
	}

	cancelled := ConvertStandardError(context.Canceled)
	if cancelled.Code() != CodeOperationCancelled {
		t.Errorf("Code() = %v, want %v", cancelled.Code(), CodeOperationCancelled)
	}

	original := EmptyMessage()
	if got := ConvertStandardError(original); got != original {
		t.Error("ConvertStandardError should return HL7 errors unchanged")
	}

	internal := ConvertStandardError(fmt.Errorf("boom"))
	if internal.Category() != CategoryInternal {
		t.Errorf("Category() = %v, want %v", internal.Category(), CategoryInternal)
	}
}

func TestErrorCodeRegistry(t *testing.T) {
	if !IsHL7TableCode(CodeUnsupportedVersion) {
		t.Error("203 is an HL7 table 0357 code")
	}
	if IsHL7TableCode(CodeInvalidDelimiter) {
		t.Error("CodeInvalidDelimiter is an SDK code")
	}
	if GetErrorCodeName(424242) != "UnknownError" {
		t.Error("unregistered code should be UnknownError")
	}
	if GetErrorCodeCategory(CodeParseError) != CategoryParse {
		t.Error("CodeParseError should be in the parse category")
	}
}
