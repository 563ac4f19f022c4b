package message

import (
	"time"

	"github.com/ajitpratap0/hl7-sdk-go/pkg/protocol"
)

// MSH field sequence numbers.
const (
	MSHFieldSeparator       = 1
	MSHEncodingCharacters   = 2
	MSHSendingApplication   = 3
	MSHSendingFacility      = 4
	MSHReceivingApplication = 5
	MSHReceivingFacility    = 6
	MSHDateTime             = 7
	MSHSecurity             = 8
	MSHMessageType          = 9
	MSHControlID            = 10
	MSHProcessingID         = 11
	MSHVersionID            = 12
)

// TimestampLayout is the HL7 TS format written to MSH-7.
const TimestampLayout = "20060102150405"

// ProcessingProduction is the default MSH-11 value.
const ProcessingProduction = "P"

// MSHSegment is the message header. It records the delimiter set of the
// message in MSH-1 and MSH-2.
type MSHSegment struct {
	*Segment
}

type mshOptions struct {
	now       func() time.Time
	controlID string
	generator ControlIDGenerator
}

// MSHOption customises a new header.
type MSHOption func(*mshOptions)

// WithTimestamp fixes MSH-7 instead of using the current time.
func WithTimestamp(t time.Time) MSHOption {
	return func(o *mshOptions) {
		o.now = func() time.Time { return t }
	}
}

// WithControlID fixes MSH-10.
func WithControlID(id string) MSHOption {
	return func(o *mshOptions) {
		o.controlID = id
	}
}

// WithControlIDGenerator sets the generator used for MSH-10.
func WithControlIDGenerator(g ControlIDGenerator) MSHOption {
	return func(o *mshOptions) {
		if g != nil {
			o.generator = g
		}
	}
}

// NewMSH creates a header from cfg. MSH-1 and MSH-2 carry the field
// separator and encoding characters, MSH-7 the creation time, MSH-10 a
// fresh control ID, MSH-11 "P" and MSH-12 the configured version.
func NewMSH(cfg protocol.DelimiterConfig, opts ...MSHOption) *MSHSegment {
	o := &mshOptions{
		now:       time.Now,
		generator: defaultGenerator,
	}
	for _, opt := range opts {
		opt(o)
	}

	controlID := o.controlID
	if controlID == "" {
		controlID = o.generator.Generate()
	}

	msh := &MSHSegment{Segment: newSegment(HeaderName, cfg)}
	// all positions below are >= 1, SetField cannot fail
	_ = msh.SetField(MSHFieldSeparator, char(cfg.FieldSeparator))
	_ = msh.SetField(MSHEncodingCharacters, cfg.EncodingCharacters())
	_ = msh.SetField(MSHDateTime, o.now().Format(TimestampLayout))
	_ = msh.SetField(MSHControlID, controlID)
	_ = msh.SetField(MSHProcessingID, ProcessingProduction)
	_ = msh.SetField(MSHVersionID, cfg.Version)
	return msh
}

// AsMSH wraps seg as a header. It returns nil when seg is not an MSH segment.
func AsMSH(seg *Segment) *MSHSegment {
	if seg == nil || !seg.IsHeader() {
		return nil
	}
	return &MSHSegment{Segment: seg}
}

// FieldSeparator returns MSH-1.
func (m *MSHSegment) FieldSeparator() string {
	return m.Field(MSHFieldSeparator)
}

// EncodingCharacters returns MSH-2.
func (m *MSHSegment) EncodingCharacters() string {
	return m.Field(MSHEncodingCharacters)
}

// ControlID returns MSH-10.
func (m *MSHSegment) ControlID() string {
	return m.Field(MSHControlID)
}

// Version returns MSH-12.
func (m *MSHSegment) Version() string {
	return m.Field(MSHVersionID)
}

// ProcessingID returns MSH-11.
func (m *MSHSegment) ProcessingID() string {
	return m.Field(MSHProcessingID)
}

// Timestamp parses MSH-7. Precision shorter than seconds is accepted.
func (m *MSHSegment) Timestamp() (time.Time, error) {
	v := m.Field(MSHDateTime)
	layout := TimestampLayout
	if len(v) < len(layout) {
		layout = layout[:len(v)]
	}
	return time.Parse(layout, v)
}

// MessageType returns the message code and trigger event of MSH-9.
func (m *MSHSegment) MessageType() (code, trigger string) {
	parts := m.Components(MSHMessageType)
	code = parts[0]
	if len(parts) > 1 {
		trigger = parts[1]
	}
	return code, trigger
}

// SetMessageType sets MSH-9 from a message code and trigger event.
func (m *MSHSegment) SetMessageType(code, trigger string) {
	if trigger == "" {
		_ = m.SetField(MSHMessageType, code)
		return
	}
	_ = m.SetComponents(MSHMessageType, code, trigger)
}

// SetSender sets MSH-3 and MSH-4.
func (m *MSHSegment) SetSender(application, facility string) {
	_ = m.SetField(MSHSendingApplication, application)
	_ = m.SetField(MSHSendingFacility, facility)
}

// SetReceiver sets MSH-5 and MSH-6.
func (m *MSHSegment) SetReceiver(application, facility string) {
	_ = m.SetField(MSHReceivingApplication, application)
	_ = m.SetField(MSHReceivingFacility, facility)
}
