// Package message implements the HL7 v2 message and segment types built by
// the factory.
//
// A Message is an ordered list of Segments. Each Segment stores its fields
// as raw strings addressed by HL7 sequence number, so Field(3) of a PID
// segment is PID-3. The MSH header is special: MSH-1 is the field separator
// itself and MSH-2 holds the encoding characters, which is why parsing a
// message reads its delimiters from the header rather than trusting the
// configuration it was handed.
//
// Escape sequence handling and transport framing are not part of this
// package; values are stored and returned exactly as they appear in the text.
package message
