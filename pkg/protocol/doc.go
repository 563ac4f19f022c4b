// Package protocol defines the core HL7 v2.x encoding types shared by the SDK.
//
// An HL7 v2 message is text organised into segments, fields, components and
// subcomponents. The characters that separate those units are not fixed by
// the standard: every message declares them in its MSH header, and a sender
// may choose different ones. DelimiterConfig carries that choice:
//
//	segment separator        CR (0x0D)
//	field separator          |
//	component separator      ^
//	repetition separator     ~
//	escape character         \
//	subcomponent separator   &
//
// plus the null token (`""`, meaning "present but null") and the HL7 version
// written to MSH-12.
//
// DelimiterConfig is a value type. Passing it by value hands the receiver an
// independent snapshot, which is how messages and segments are isolated from
// later changes to the configuration they were built with.
//
// # Settings
//
// Each entry has a canonical Setting name (FIELD_SEPARATOR, NULL,
// HL7_VERSION, ...). Map returns all eight by name and With replaces one,
// rejecting delimiter values that are not exactly one byte long.
package protocol
