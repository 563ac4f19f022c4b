package message

import (
	"strings"

	hl7errors "github.com/ajitpratap0/hl7-sdk-go/pkg/errors"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/protocol"
)

// Message is an ordered list of segments sharing one delimiter
// configuration. A non-empty message starts with an MSH segment.
type Message struct {
	cfg      protocol.DelimiterConfig
	segments []*Segment
}

// NewMessage builds a message from raw text using cfg.
//
// Empty text yields a message with no segments. Otherwise text is split on
// cfg.SegmentSeparator and the first segment must be MSH. The field
// separator and encoding characters declared in that header take precedence
// over cfg for the whole message, as does a non-empty MSH-12.
func NewMessage(text string, cfg protocol.DelimiterConfig) (*Message, error) {
	m := &Message{cfg: cfg}
	if text == "" {
		return m, nil
	}

	lines := splitSegments(text, cfg.SegmentSeparator)
	if len(lines) == 0 {
		return nil, hl7errors.EmptyMessage()
	}

	header, err := parseHeader(lines[0], &m.cfg)
	if err != nil {
		return nil, err
	}
	m.segments = append(m.segments, header)

	for i, line := range lines[1:] {
		seg, err := parseSegment(i+1, line, m.cfg)
		if err != nil {
			return nil, err
		}
		m.segments = append(m.segments, seg)
	}

	return m, nil
}

func splitSegments(text string, sep byte) []string {
	raw := strings.Split(text, char(sep))
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if sep == '\r' {
			// tolerate CRLF line endings
			line = strings.TrimPrefix(line, "\n")
		}
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// parseHeader reads the MSH segment and copies the delimiters it declares
// into cfg.
func parseHeader(line string, cfg *protocol.DelimiterConfig) (*Segment, error) {
	if !strings.HasPrefix(line, HeaderName) {
		name := line
		if len(name) > 3 {
			name = name[:3]
		}
		return nil, hl7errors.InvalidHeader("message must start with MSH, got " + name)
	}
	if len(line) < 4 {
		return nil, hl7errors.InvalidHeader("missing field separator")
	}

	fs := line[3]
	parts := strings.Split(line[4:], char(fs))
	enc := parts[0]
	if len(enc) < 4 {
		return nil, hl7errors.InvalidHeader("encoding characters must be at least 4 characters, got " + enc)
	}

	cfg.FieldSeparator = fs
	cfg.ComponentSeparator = enc[0]
	cfg.RepetitionSeparator = enc[1]
	cfg.EscapeCharacter = enc[2]
	cfg.SubcomponentSeparator = enc[3]

	seg := newSegment(HeaderName, *cfg)
	seg.fields = append(seg.fields, char(fs))
	seg.fields = append(seg.fields, parts...)

	if v := seg.Field(MSHVersionID); v != "" {
		// MSH-12 may carry components (version^country); keep the ID
		cfg.Version = strings.SplitN(v, char(cfg.ComponentSeparator), 2)[0]
		seg.cfg = *cfg
	}

	return seg, nil
}

func parseSegment(position int, line string, cfg protocol.DelimiterConfig) (*Segment, error) {
	parts := strings.Split(line, char(cfg.FieldSeparator))
	name := parts[0]

	if name == HeaderName {
		return nil, hl7errors.SegmentSequence(position, name, "MSH is only allowed as the first segment")
	}
	if !ValidSegmentName(name) {
		return nil, hl7errors.InvalidSegment(position, name, "name must be three upper-case alphanumerics")
	}

	return &Segment{cfg: cfg, fields: parts}, nil
}

// Config returns the delimiter configuration of the message.
func (m *Message) Config() protocol.DelimiterConfig {
	return m.cfg
}

// Len returns the number of segments.
func (m *Message) Len() int {
	return len(m.segments)
}

// Segments returns the segments in order. The slice is a copy; the
// segments are shared.
func (m *Message) Segments() []*Segment {
	out := make([]*Segment, len(m.segments))
	copy(out, m.segments)
	return out
}

// Segment returns the segment at index i.
func (m *Message) Segment(i int) (*Segment, error) {
	if i < 0 || i >= len(m.segments) {
		return nil, hl7errors.IndexOutOfRange("segment", i, len(m.segments))
	}
	return m.segments[i], nil
}

// SegmentsByName returns every segment named name, in order.
func (m *Message) SegmentsByName(name string) []*Segment {
	var out []*Segment
	for _, seg := range m.segments {
		if seg.Name() == name {
			out = append(out, seg)
		}
	}
	return out
}

// Header returns the MSH segment, or nil for an empty message.
func (m *Message) Header() *MSHSegment {
	if len(m.segments) == 0 {
		return nil
	}
	return AsMSH(m.segments[0])
}

// AddSegment appends seg.
func (m *Message) AddSegment(seg *Segment) error {
	if err := m.checkPlacement(len(m.segments), seg); err != nil {
		return err
	}
	m.segments = append(m.segments, seg)
	return nil
}

// InsertSegment inserts seg before index i. i may equal Len().
func (m *Message) InsertSegment(i int, seg *Segment) error {
	if i < 0 || i > len(m.segments) {
		return hl7errors.IndexOutOfRange("segment", i, len(m.segments)+1)
	}
	if err := m.checkPlacement(i, seg); err != nil {
		return err
	}
	if i == 0 && len(m.segments) > 0 {
		return hl7errors.SegmentSequence(0, seg.Name(), "message already has a header")
	}

	m.segments = append(m.segments, nil)
	copy(m.segments[i+1:], m.segments[i:])
	m.segments[i] = seg
	return nil
}

// SetSegment replaces the segment at index i.
func (m *Message) SetSegment(i int, seg *Segment) error {
	if i < 0 || i >= len(m.segments) {
		return hl7errors.IndexOutOfRange("segment", i, len(m.segments))
	}
	if err := m.checkPlacement(i, seg); err != nil {
		return err
	}
	m.segments[i] = seg
	return nil
}

// RemoveSegment deletes the segment at index i.
func (m *Message) RemoveSegment(i int) error {
	if i < 0 || i >= len(m.segments) {
		return hl7errors.IndexOutOfRange("segment", i, len(m.segments))
	}
	if i == 0 && len(m.segments) > 1 {
		return hl7errors.SegmentSequence(0, HeaderName, "header cannot be removed while other segments remain")
	}
	m.segments = append(m.segments[:i], m.segments[i+1:]...)
	return nil
}

// checkPlacement enforces that MSH is the first segment and only there.
func (m *Message) checkPlacement(i int, seg *Segment) error {
	if seg == nil {
		return hl7errors.InvalidSegment(i, "", "segment is nil")
	}
	if i == 0 && !seg.IsHeader() {
		return hl7errors.SegmentSequence(i, seg.Name(), "first segment must be MSH")
	}
	if i > 0 && seg.IsHeader() {
		return hl7errors.SegmentSequence(i, seg.Name(), "MSH is only allowed as the first segment")
	}
	return nil
}

// String encodes the message. Every segment, the last included, is
// followed by the segment separator.
func (m *Message) String() string {
	var b strings.Builder
	for _, seg := range m.segments {
		b.WriteString(seg.encode(m.cfg.FieldSeparator))
		b.WriteByte(m.cfg.SegmentSeparator)
	}
	return b.String()
}
