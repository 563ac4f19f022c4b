package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Level colors for terminal output
const (
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
	colorReset  = "\033[0m"
)

// truncatedSuffix marks a value cut by MaxValueLength
const truncatedSuffix = "..."

// TextFormatter formats log entries as one line of text:
//
//	2024-01-02 03:04:05.000 [INFO] [CTL9] factory/parse: Parsed message | segments=3
type TextFormatter struct {
	// TimestampFormat is the format for timestamps
	TimestampFormat string
	// DisableColors disables terminal colors
	DisableColors bool
	// DisableTimestamp disables timestamp output
	DisableTimestamp bool
	// DisableSorting keeps fields in map order
	DisableSorting bool
	// MaxValueLength truncates string values longer than this many bytes.
	// Zero keeps them whole.
	MaxValueLength int
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
	}
}

// Format formats a log entry as text
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer

	f.writeHeader(&buf, entry)
	buf.WriteString(entry.Message)

	keys := f.fieldKeys(entry)
	for i, k := range keys {
		if i == 0 {
			buf.WriteString(" | ")
		} else {
			buf.WriteByte(' ')
		}
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(textValue(entry.Fields[k], f.MaxValueLength))
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// writeHeader writes timestamp, level, control ID and component/operation
func (f *TextFormatter) writeHeader(buf *bytes.Buffer, entry *Entry) {
	if !f.DisableTimestamp {
		buf.WriteString(entry.Timestamp.Format(f.TimestampFormat))
		buf.WriteByte(' ')
	}

	level := "[" + entry.Level.String() + "]"
	if color := levelColor(entry.Level); color != "" && !f.DisableColors {
		level = color + level + colorReset
	}
	buf.WriteString(level)
	buf.WriteByte(' ')

	if entry.ControlID != "" {
		fmt.Fprintf(buf, "[%s] ", entry.ControlID)
	}

	if entry.Component != "" {
		buf.WriteString(entry.Component)
		if entry.Operation != "" {
			buf.WriteByte('/')
			buf.WriteString(entry.Operation)
		}
		buf.WriteString(": ")
	}
}

// fieldKeys lists the field keys not already shown in the header
func (f *TextFormatter) fieldKeys(entry *Entry) []string {
	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		switch {
		case k == ControlIDKey:
		case k == "component" && entry.Component != "":
		// operation is only shown alongside a component
		case k == "operation" && entry.Component != "" && entry.Operation != "":
		default:
			keys = append(keys, k)
		}
	}

	if !f.DisableSorting {
		sort.Strings(keys)
	}
	return keys
}

func levelColor(level Level) string {
	switch level {
	case DebugLevel:
		return colorGray
	case InfoLevel:
		return colorBlue
	case WarnLevel:
		return colorYellow
	case ErrorLevel, FatalLevel:
		return colorRed
	default:
		return ""
	}
}

// textValue renders v for key=value output. Delimiters are quoted as
// characters and raw HL7 text is quoted so CR separators stay on one line.
func textValue(v interface{}, max int) string {
	switch val := v.(type) {
	case byte:
		return strconv.QuoteRune(rune(val))
	case error:
		return val.Error()
	case string:
		val = truncate(val, max)
		if strings.ContainsAny(val, " \r\n\t") {
			return strconv.Quote(val)
		}
		return val
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + truncatedSuffix
}

// JSONFormatter formats log entries as JSON
type JSONFormatter struct {
	// PrettyPrint enables pretty printing
	PrettyPrint bool
	// TimestampFormat is the format for timestamps
	TimestampFormat string
	// DisableTimestamp disables timestamp output
	DisableTimestamp bool
	// MaxValueLength truncates string values longer than this many bytes.
	// Zero keeps them whole.
	MaxValueLength int
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

// Format formats a log entry as JSON
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	data := make(map[string]interface{}, len(entry.Fields)+3)

	for k, v := range entry.Fields {
		switch val := v.(type) {
		case error:
			data[k] = val.Error()
		case byte:
			// delimiters are logged as characters, not numbers
			data[k] = string(rune(val))
		case string:
			data[k] = truncate(val, f.MaxValueLength)
		default:
			data[k] = v
		}
	}

	// core keys win over fields of the same name
	data["level"] = entry.Level.String()
	data["message"] = entry.Message
	if !f.DisableTimestamp {
		data["timestamp"] = entry.Timestamp.Format(f.TimestampFormat)
	}

	var out []byte
	var err error
	if f.PrettyPrint {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log entry: %w", err)
	}

	return append(out, '\n'), nil
}
