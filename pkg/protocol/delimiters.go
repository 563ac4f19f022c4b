package protocol

import (
	"fmt"

	hl7errors "github.com/ajitpratap0/hl7-sdk-go/pkg/errors"
)

// Default delimiter set and header values used when nothing is overridden.
const (
	DefaultSegmentSeparator      byte = '\r'
	DefaultFieldSeparator        byte = '|'
	DefaultComponentSeparator    byte = '^'
	DefaultRepetitionSeparator   byte = '~'
	DefaultEscapeCharacter       byte = '\\'
	DefaultSubcomponentSeparator byte = '&'

	// DefaultNull is the HL7 "present but null" value: two double quotes.
	DefaultNull = `""`

	DefaultVersion = "2.2"
)

// Setting names one entry of a DelimiterConfig.
type Setting string

const (
	SettingSegmentSeparator      Setting = "SEGMENT_SEPARATOR"
	SettingFieldSeparator        Setting = "FIELD_SEPARATOR"
	SettingComponentSeparator    Setting = "COMPONENT_SEPARATOR"
	SettingRepetitionSeparator   Setting = "REPETITION_SEPARATOR"
	SettingEscapeCharacter       Setting = "ESCAPE_CHARACTER"
	SettingSubcomponentSeparator Setting = "SUBCOMPONENT_SEPARATOR"
	SettingNull                  Setting = "NULL"
	SettingVersion               Setting = "HL7_VERSION"
)

// Settings lists every setting in a stable order.
var Settings = []Setting{
	SettingSegmentSeparator,
	SettingFieldSeparator,
	SettingComponentSeparator,
	SettingRepetitionSeparator,
	SettingEscapeCharacter,
	SettingSubcomponentSeparator,
	SettingNull,
	SettingVersion,
}

// IsDelimiter reports whether the setting holds a single character.
func (s Setting) IsDelimiter() bool {
	switch s {
	case SettingSegmentSeparator, SettingFieldSeparator, SettingComponentSeparator,
		SettingRepetitionSeparator, SettingEscapeCharacter, SettingSubcomponentSeparator:
		return true
	default:
		return false
	}
}

// Valid reports whether s is one of the known settings.
func (s Setting) Valid() bool {
	return s.IsDelimiter() || s == SettingNull || s == SettingVersion
}

// DelimiterConfig is the set of special characters and header values shared
// by every message and segment built from one factory.
//
// It is a plain value: copying it yields an independent configuration.
// Delimiters are single bytes, so "one character" means one code unit.
type DelimiterConfig struct {
	SegmentSeparator      byte   `json:"segment_separator"`
	FieldSeparator        byte   `json:"field_separator"`
	ComponentSeparator    byte   `json:"component_separator"`
	RepetitionSeparator   byte   `json:"repetition_separator"`
	EscapeCharacter       byte   `json:"escape_character"`
	SubcomponentSeparator byte   `json:"subcomponent_separator"`
	Null                  string `json:"null"`
	Version               string `json:"version"`
}

// DefaultConfig returns the standard HL7 delimiter set, the `""` null
// token and version 2.2.
func DefaultConfig() DelimiterConfig {
	return DelimiterConfig{
		SegmentSeparator:      DefaultSegmentSeparator,
		FieldSeparator:        DefaultFieldSeparator,
		ComponentSeparator:    DefaultComponentSeparator,
		RepetitionSeparator:   DefaultRepetitionSeparator,
		EscapeCharacter:       DefaultEscapeCharacter,
		SubcomponentSeparator: DefaultSubcomponentSeparator,
		Null:                  DefaultNull,
		Version:               DefaultVersion,
	}
}

// Get returns the value of one setting as a string.
func (c DelimiterConfig) Get(s Setting) (string, error) {
	switch s {
	case SettingSegmentSeparator:
		return char(c.SegmentSeparator), nil
	case SettingFieldSeparator:
		return char(c.FieldSeparator), nil
	case SettingComponentSeparator:
		return char(c.ComponentSeparator), nil
	case SettingRepetitionSeparator:
		return char(c.RepetitionSeparator), nil
	case SettingEscapeCharacter:
		return char(c.EscapeCharacter), nil
	case SettingSubcomponentSeparator:
		return char(c.SubcomponentSeparator), nil
	case SettingNull:
		return c.Null, nil
	case SettingVersion:
		return c.Version, nil
	default:
		return "", hl7errors.UnknownSetting(string(s))
	}
}

// With returns a copy of c with one setting replaced. Delimiter settings
// must be given exactly one byte; on rejection c is returned unchanged
// together with an InvalidDelimiter error.
func (c DelimiterConfig) With(s Setting, value string) (DelimiterConfig, error) {
	if !s.Valid() {
		return c, hl7errors.UnknownSetting(string(s))
	}
	if s.IsDelimiter() && len(value) != 1 {
		return c, hl7errors.InvalidDelimiter(string(s), value)
	}

	switch s {
	case SettingSegmentSeparator:
		c.SegmentSeparator = value[0]
	case SettingFieldSeparator:
		c.FieldSeparator = value[0]
	case SettingComponentSeparator:
		c.ComponentSeparator = value[0]
	case SettingRepetitionSeparator:
		c.RepetitionSeparator = value[0]
	case SettingEscapeCharacter:
		c.EscapeCharacter = value[0]
	case SettingSubcomponentSeparator:
		c.SubcomponentSeparator = value[0]
	case SettingNull:
		c.Null = value
	case SettingVersion:
		c.Version = value
	}
	return c, nil
}

// Map returns the configuration as the eight named settings.
func (c DelimiterConfig) Map() map[Setting]string {
	m := make(map[Setting]string, len(Settings))
	for _, s := range Settings {
		// every entry of Settings is known to Get
		m[s], _ = c.Get(s)
	}
	return m
}

// EncodingCharacters returns the MSH-2 value: component, repetition,
// escape and subcomponent characters in that order.
func (c DelimiterConfig) EncodingCharacters() string {
	return string([]byte{
		c.ComponentSeparator,
		c.RepetitionSeparator,
		c.EscapeCharacter,
		c.SubcomponentSeparator,
	})
}

// Delimiters returns the six single-character settings.
func (c DelimiterConfig) Delimiters() []byte {
	return []byte{
		c.SegmentSeparator,
		c.FieldSeparator,
		c.ComponentSeparator,
		c.RepetitionSeparator,
		c.EscapeCharacter,
		c.SubcomponentSeparator,
	}
}

// Distinct reports whether no two delimiters share a character. Nothing in
// the SDK requires it; callers that need a well-formed set can check.
func (c DelimiterConfig) Distinct() bool {
	var seen [256]bool
	for _, d := range c.Delimiters() {
		if seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

// char keeps bytes above 0x7F as a single byte rather than a UTF-8 rune.
func char(b byte) string {
	return string([]byte{b})
}

// String renders the configuration for logs.
func (c DelimiterConfig) String() string {
	return fmt.Sprintf("DelimiterConfig{segment=%q field=%q encoding=%q null=%q version=%q}",
		c.SegmentSeparator, c.FieldSeparator, c.EncodingCharacters(), c.Null, c.Version)
}
