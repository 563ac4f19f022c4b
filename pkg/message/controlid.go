package message

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxControlIDLength is the width of MSH-10 (message control ID).
const MaxControlIDLength = 20

// ControlIDGenerator produces MSH-10 values.
type ControlIDGenerator interface {
	Generate() string
}

// UUIDGenerator generates control IDs from random UUIDs, keeping the first
// MaxControlIDLength hex digits.
type UUIDGenerator struct{}

// Generate generates a new control ID
func (g *UUIDGenerator) Generate() string {
	id := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(id[:MaxControlIDLength])
}

// PrefixedGenerator prepends a fixed prefix to another generator's IDs,
// truncating the result to MaxControlIDLength. A nil Generator falls back
// to UUIDGenerator.
type PrefixedGenerator struct {
	Prefix    string
	Generator ControlIDGenerator
}

// Generate generates a new prefixed control ID
func (g *PrefixedGenerator) Generate() string {
	gen := g.Generator
	if gen == nil {
		gen = defaultGenerator
	}
	id := fmt.Sprintf("%s%s", g.Prefix, gen.Generate())
	if len(id) > MaxControlIDLength {
		id = id[:MaxControlIDLength]
	}
	return id
}

// GeneratorFunc adapts a function to ControlIDGenerator.
type GeneratorFunc func() string

// Generate calls f
func (f GeneratorFunc) Generate() string {
	return f()
}

var defaultGenerator ControlIDGenerator = &UUIDGenerator{}
