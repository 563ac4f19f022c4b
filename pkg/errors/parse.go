package errors

import (
	"context"
	"errors"
	"fmt"
)

// SegmentErrorData identifies the segment a parse error refers to
type SegmentErrorData struct {
	Position int    `json:"position"`
	Name     string `json:"name,omitempty"`
	Reason   string `json:"reason"`
}

// ParseError creates a generic parse error
func ParseError(reason string, cause error) HL7Error {
	return WrapError(
		cause,
		CodeParseError,
		fmt.Sprintf("Failed to parse message: %s", reason),
		CategoryParse,
		SeverityError,
	)
}

// EmptyMessage creates an error for message text without any segment
func EmptyMessage() HL7Error {
	return NewError(CodeEmptyMessage, "Message contains no segments", CategoryParse, SeverityError)
}

// InvalidHeader creates an error for a missing or malformed MSH segment
func InvalidHeader(reason string) HL7Error {
	return NewError(
		CodeInvalidHeader,
		fmt.Sprintf("Invalid MSH header: %s", reason),
		CategoryParse,
		SeverityError,
	).WithData(&SegmentErrorData{
		Position: 0,
		Name:     "MSH",
		Reason:   reason,
	})
}

// InvalidSegment creates an error for a segment at position whose name or
// layout is not valid.
func InvalidSegment(position int, name, reason string) HL7Error {
	err := NewError(
		CodeInvalidSegment,
		fmt.Sprintf("Invalid segment %q at position %d: %s", name, position, reason),
		CategoryParse,
		SeverityError,
	).WithData(&SegmentErrorData{
		Position: position,
		Name:     name,
		Reason:   reason,
	})
	ctx := *err.Context()
	ctx.Segment = name
	ctx.Position = position
	return err.WithContext(&ctx)
}

// SegmentSequence creates an error for a segment placed where the message
// structure does not allow it (HL7 table 0357 code 100).
func SegmentSequence(position int, name, reason string) HL7Error {
	return NewError(
		CodeSegmentSequenceError,
		fmt.Sprintf("Segment sequence error: %s at position %d: %s", name, position, reason),
		CategoryProtocol,
		SeverityError,
	).WithData(&SegmentErrorData{
		Position: position,
		Name:     name,
		Reason:   reason,
	})
}

// OperationCancelled creates an error for an operation stopped by its context
func OperationCancelled(operation string, cause error) HL7Error {
	return WrapError(
		cause,
		CodeOperationCancelled,
		fmt.Sprintf("Operation cancelled: %s", operation),
		CategoryCancelled,
		SeverityInfo,
	)
}

// ConvertStandardError converts common Go errors to appropriate HL7 errors
func ConvertStandardError(err error) HL7Error {
	if err == nil {
		return nil
	}

	if hl7Err, ok := AsHL7Error(err); ok {
		return hl7Err
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return OperationCancelled("request", err)
	}

	return WrapError(err, CodeInternalError, "Internal error", CategoryInternal, SeverityError)
}
