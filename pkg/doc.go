// Package pkg provides the core components of the HL7 v2.x SDK.
//
// HL7 v2 messages are carriage-return separated segments whose fields,
// components, repetitions and subcomponents are split by characters the
// message header itself declares. This package contains several
// sub-packages that implement different aspects of that model.
//
// # Factory Usage
//
// A factory owns the delimiter configuration and builds messages from it:
//
//	f := factory.New()
//	f.SetNull("N/A")
//
//	msh := f.CreateMSH()
//	msh.SetMessageType("ORU", "R01")
//
//	msg, err := f.CreateMessage(text)
//	if err != nil {
//	    // Handle error
//	}
//
// # Sub-packages
//
//   - factory: configurable construction and parsing entry point
//   - protocol: DelimiterConfig and setting names
//   - message: Message, Segment and MSHSegment
//   - errors: coded HL7 errors
//   - logging: structured logger with text and JSON output
//   - observability: Prometheus metrics and OpenTelemetry tracing
package pkg
