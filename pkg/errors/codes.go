package errors

// HL7 v2 message error condition codes (HL7 table 0357).
// These are the values an application places in ERR-3 / MSA-6.
const (
	CodeMessageAccepted       int = 0   // Success
	CodeSegmentSequenceError  int = 100 // Segment out of order, missing, or unexpected
	CodeRequiredFieldMissing  int = 101 // Required field missing from a segment
	CodeDataTypeError         int = 102 // Field content does not match its data type
	CodeTableValueNotFound    int = 103 // Coded value not in the referenced table
	CodeUnsupportedMessage    int = 200 // Unsupported message type
	CodeUnsupportedEvent      int = 201 // Unsupported event code
	CodeUnsupportedProcessing int = 202 // Unsupported processing ID
	CodeUnsupportedVersion    int = 203 // Unsupported version ID
	CodeInternalError         int = 207 // Application internal error
)

// SDK specific error codes.
// They sit above the table 0357 range so they never collide with HL7 values.
const (
	// Configuration Errors (1000 to 1099)
	CodeInvalidDelimiter int = 1000 // Delimiter is not exactly one character
	CodeUnknownSetting   int = 1001 // Setting name not recognised

	// Parse Errors (1100 to 1199)
	CodeParseError     int = 1100 // Generic parse failure
	CodeEmptyMessage   int = 1101 // Message text contained no segments
	CodeInvalidHeader  int = 1102 // First segment missing or not a valid MSH
	CodeInvalidSegment int = 1103 // Segment name malformed

	// Access Errors (1200 to 1299)
	CodeIndexOutOfRange int = 1200 // Segment or field index outside bounds

	// Operation Errors (1300 to 1399)
	CodeOperationCancelled int = 1300 // Operation was cancelled
)

// ErrorCodeInfo provides human-readable information about error codes
type ErrorCodeInfo struct {
	Code        int
	Name        string
	Description string
	Category    Category
	Severity    Severity
}

var errorCodeRegistry = map[int]ErrorCodeInfo{
	// HL7 table 0357
	CodeMessageAccepted:       {CodeMessageAccepted, "MessageAccepted", "Message accepted", CategoryProtocol, SeverityInfo},
	CodeSegmentSequenceError:  {CodeSegmentSequenceError, "SegmentSequenceError", "Segment sequence error", CategoryProtocol, SeverityError},
	CodeRequiredFieldMissing:  {CodeRequiredFieldMissing, "RequiredFieldMissing", "Required field missing", CategoryValidation, SeverityError},
	CodeDataTypeError:         {CodeDataTypeError, "DataTypeError", "Data type error", CategoryValidation, SeverityError},
	CodeTableValueNotFound:    {CodeTableValueNotFound, "TableValueNotFound", "Table value not found", CategoryValidation, SeverityError},
	CodeUnsupportedMessage:    {CodeUnsupportedMessage, "UnsupportedMessageType", "Unsupported message type", CategoryProtocol, SeverityError},
	CodeUnsupportedEvent:      {CodeUnsupportedEvent, "UnsupportedEventCode", "Unsupported event code", CategoryProtocol, SeverityError},
	CodeUnsupportedProcessing: {CodeUnsupportedProcessing, "UnsupportedProcessingID", "Unsupported processing ID", CategoryProtocol, SeverityError},
	CodeUnsupportedVersion:    {CodeUnsupportedVersion, "UnsupportedVersionID", "Unsupported version ID", CategoryProtocol, SeverityError},
	CodeInternalError:         {CodeInternalError, "ApplicationInternalError", "Application internal error", CategoryInternal, SeverityCritical},

	// Configuration
	CodeInvalidDelimiter: {CodeInvalidDelimiter, "InvalidDelimiter", "Delimiter must be exactly one character", CategoryValidation, SeverityError},
	CodeUnknownSetting:   {CodeUnknownSetting, "UnknownSetting", "Unknown configuration setting", CategoryValidation, SeverityError},

	// Parse
	CodeParseError:     {CodeParseError, "ParseError", "Message could not be parsed", CategoryParse, SeverityError},
	CodeEmptyMessage:   {CodeEmptyMessage, "EmptyMessage", "Message contains no segments", CategoryParse, SeverityError},
	CodeInvalidHeader:  {CodeInvalidHeader, "InvalidHeader", "Invalid MSH header segment", CategoryParse, SeverityError},
	CodeInvalidSegment: {CodeInvalidSegment, "InvalidSegment", "Invalid segment", CategoryParse, SeverityError},

	// Access
	CodeIndexOutOfRange: {CodeIndexOutOfRange, "IndexOutOfRange", "Index out of range", CategoryNotFound, SeverityError},

	// Operation
	CodeOperationCancelled: {CodeOperationCancelled, "OperationCancelled", "Operation cancelled", CategoryCancelled, SeverityInfo},
}

// GetErrorCodeInfo returns information about an error code
func GetErrorCodeInfo(code int) (ErrorCodeInfo, bool) {
	info, exists := errorCodeRegistry[code]
	return info, exists
}

// GetErrorCodeName returns the name of an error code
func GetErrorCodeName(code int) string {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Name
	}
	return "UnknownError"
}

// GetErrorCodeDescription returns the description of an error code
func GetErrorCodeDescription(code int) string {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Description
	}
	return "Unknown error"
}

// GetErrorCodeCategory returns the category of an error code
func GetErrorCodeCategory(code int) Category {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Category
	}
	return CategoryInternal
}

// GetErrorCodeSeverity returns the severity of an error code
func GetErrorCodeSeverity(code int) Severity {
	if info, exists := errorCodeRegistry[code]; exists {
		return info.Severity
	}
	return SeverityError
}

// IsHL7TableCode reports whether code is defined by HL7 table 0357 rather
// than by the SDK.
func IsHL7TableCode(code int) bool {
	return code >= CodeMessageAccepted && code < CodeInvalidDelimiter
}
