package message

import (
	"regexp"
	"strings"

	hl7errors "github.com/ajitpratap0/hl7-sdk-go/pkg/errors"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/protocol"
)

// HeaderName is the name of the message header segment.
const HeaderName = "MSH"

var segmentName = regexp.MustCompile(`^[A-Z][A-Z0-9]{2}$`)

// ValidSegmentName reports whether name is three upper-case alphanumerics
// starting with a letter (Z-segments included).
func ValidSegmentName(name string) bool {
	return segmentName.MatchString(name)
}

// Segment is one line of an HL7 message. Fields are addressed by their HL7
// sequence number starting at 1; position 0 holds the segment name.
type Segment struct {
	cfg    protocol.DelimiterConfig
	fields []string
}

// NewSegment creates an empty segment named name.
func NewSegment(name string, cfg protocol.DelimiterConfig) (*Segment, error) {
	if !ValidSegmentName(name) {
		return nil, hl7errors.InvalidSegment(0, name, "name must be three upper-case alphanumerics")
	}
	return newSegment(name, cfg), nil
}

func newSegment(name string, cfg protocol.DelimiterConfig) *Segment {
	return &Segment{
		cfg:    cfg,
		fields: []string{name},
	}
}

// Name returns the three letter segment identifier.
func (s *Segment) Name() string {
	return s.fields[0]
}

// Config returns the delimiter configuration the segment was built with.
func (s *Segment) Config() protocol.DelimiterConfig {
	return s.cfg
}

// Size returns the number of fields, not counting the name.
func (s *Segment) Size() int {
	return len(s.fields) - 1
}

// Field returns the raw value of field i, or "" when the segment has no
// such field.
func (s *Segment) Field(i int) string {
	if i < 0 || i >= len(s.fields) {
		return ""
	}
	return s.fields[i]
}

// SetField sets field i, growing the segment with empty fields as needed.
// Position 0 (the name) cannot be set.
func (s *Segment) SetField(i int, value string) error {
	if i < 1 {
		return hl7errors.IndexOutOfRange("field", i, len(s.fields))
	}
	for len(s.fields) <= i {
		s.fields = append(s.fields, "")
	}
	s.fields[i] = value
	return nil
}

// Fields returns a copy of fields from..to inclusive. A negative to means
// "through the last field". Out of range bounds are clamped.
func (s *Segment) Fields(from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to < 0 || to >= len(s.fields) {
		to = len(s.fields) - 1
	}
	if from > to {
		return nil
	}
	out := make([]string, to-from+1)
	copy(out, s.fields[from:to+1])
	return out
}

// Components splits field i on the component separator.
func (s *Segment) Components(i int) []string {
	return strings.Split(s.Field(i), char(s.cfg.ComponentSeparator))
}

// Repetitions splits field i on the repetition separator.
func (s *Segment) Repetitions(i int) []string {
	return strings.Split(s.Field(i), char(s.cfg.RepetitionSeparator))
}

// SetComponents joins values with the component separator into field i.
func (s *Segment) SetComponents(i int, values ...string) error {
	return s.SetField(i, strings.Join(values, char(s.cfg.ComponentSeparator)))
}

// IsNull reports whether field i holds the null token, i.e. is present
// but explicitly null. An empty field is absent, not null.
func (s *Segment) IsNull(i int) bool {
	return i > 0 && i < len(s.fields) && s.fields[i] == s.cfg.Null
}

// SetNull stores the null token in field i.
func (s *Segment) SetNull(i int) error {
	return s.SetField(i, s.cfg.Null)
}

// IsHeader reports whether this is an MSH segment.
func (s *Segment) IsHeader() bool {
	return s.Name() == HeaderName
}

// String encodes the segment using its own configuration.
func (s *Segment) String() string {
	return s.encode(s.cfg.FieldSeparator)
}

// encode joins the fields with fs. MSH-1 is the field separator itself, so
// the header is written without a separator between the name and MSH-1.
func (s *Segment) encode(fs byte) string {
	sep := char(fs)
	if !s.IsHeader() || len(s.fields) < 2 {
		return strings.Join(s.fields, sep)
	}

	var b strings.Builder
	b.WriteString(s.fields[0])
	b.WriteByte(fs)
	b.WriteString(strings.Join(s.fields[2:], sep))
	return b.String()
}

func char(b byte) string {
	return string([]byte{b})
}
