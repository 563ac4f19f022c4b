// Package hl7 is the root of the HL7 v2.x SDK for Go, re-exporting the
// entry points of its sub-packages.
//
// HL7 v2 is a segment-based text protocol for clinical data. A message is
// a list of segments separated by carriage returns; each segment is a
// three-letter name followed by fields separated by `|`, which in turn
// split into components (`^`), repetitions (`~`) and subcomponents (`&`).
// The first segment, MSH, declares those characters for the message.
//
// # Overview
//
// The SDK consists of several sub-packages:
//
//   - pkg/factory: the configurable construction point for messages and headers
//   - pkg/protocol: the DelimiterConfig value type and setting names
//   - pkg/message: Message, Segment and MSHSegment
//   - pkg/errors: coded errors, including HL7 table 0357 codes
//   - pkg/logging: structured logging
//   - pkg/observability: Prometheus metrics and OpenTelemetry tracing
//
// # Building a Message
//
//	f := hl7.NewFactory()
//	if !f.SetFieldSeparator("|") {
//	    // value rejected, configuration unchanged
//	}
//
//	msh := f.CreateMSH()
//	msh.SetMessageType("ADT", "A01")
//
//	msg, _ := f.CreateMessage("")
//	_ = msg.AddSegment(msh.Segment)
//
//	pid, _ := hl7.NewSegment("PID", msg.Config())
//	_ = pid.SetComponents(5, "EVERYMAN", "ADAM")
//	_ = msg.AddSegment(pid)
//
//	wire := msg.String()
//
// # Reading Messages
//
// Messages received from elsewhere are parsed with the delimiters their own
// MSH segment declares:
//
//	msg, err := f.ParseMessage(ctx, text)
//	if err != nil {
//	    if errors.IsCode(err, errors.CodeInvalidHeader) {
//	        // not an HL7 message
//	    }
//	}
//
// ParseBatch parses many messages concurrently and returns them in input
// order.
//
// # Observability
//
// Factories accept a logging.Logger, an observability.MetricsProvider and an
// OpenTelemetry TracerProvider:
//
//	metrics, _ := observability.NewMetricsProvider(observability.MetricsConfig{})
//	f := hl7.NewFactory(
//	    hl7.WithMetrics(metrics),
//	    hl7.WithTracerProvider(tracing.TracerProvider()),
//	)
package hl7
