// Package hl7 provides a Go toolkit for building and reading HL7 v2.x messages
package hl7

import (
	"github.com/ajitpratap0/hl7-sdk-go/pkg/factory"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/message"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/protocol"
)

// Version represents the current version of the SDK
const Version = "0.1.0"

// These exports provide direct access to the core SDK components
var (
	// NewFactory creates a factory holding the default delimiters
	NewFactory = factory.New

	// NewMessage parses text with an explicit configuration
	NewMessage = message.NewMessage

	// NewMSH builds a header segment with an explicit configuration
	NewMSH = message.NewMSH

	// NewSegment builds an empty segment
	NewSegment = message.NewSegment

	// DefaultConfig returns the standard HL7 delimiters
	DefaultConfig = protocol.DefaultConfig
)

// Factory options
var (
	WithLogger             = factory.WithLogger
	WithMetrics            = factory.WithMetrics
	WithTracerProvider     = factory.WithTracerProvider
	WithControlIDGenerator = factory.WithControlIDGenerator
	WithBatchWorkers       = factory.WithBatchWorkers
)

// Default delimiters
const (
	DefaultSegmentSeparator      = protocol.DefaultSegmentSeparator
	DefaultFieldSeparator        = protocol.DefaultFieldSeparator
	DefaultComponentSeparator    = protocol.DefaultComponentSeparator
	DefaultRepetitionSeparator   = protocol.DefaultRepetitionSeparator
	DefaultEscapeCharacter       = protocol.DefaultEscapeCharacter
	DefaultSubcomponentSeparator = protocol.DefaultSubcomponentSeparator
	DefaultNull                  = protocol.DefaultNull
	DefaultVersion               = protocol.DefaultVersion
)
