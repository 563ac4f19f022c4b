package message

import (
	"strings"
	"testing"
	"time"

	hl7errors "github.com/ajitpratap0/hl7-sdk-go/pkg/errors"
	"github.com/ajitpratap0/hl7-sdk-go/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSegmentValidatesName(t *testing.T) {
	for _, name := range []string{"PID", "ZPI", "OBX", "PV1"} {
		_, err := NewSegment(name, protocol.DefaultConfig())
		assert.NoError(t, err, name)
	}
	for _, name := range []string{"", "pid", "PI", "PIDX", "1AB"} {
		_, err := NewSegment(name, protocol.DefaultConfig())
		assert.True(t, hl7errors.IsCode(err, hl7errors.CodeInvalidSegment), name)
	}
}

func TestSegmentFields(t *testing.T) {
	seg, err := NewSegment("PID", protocol.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, seg.Size())
	require.NoError(t, seg.SetField(3, "ID1"))
	assert.Equal(t, 3, seg.Size())
	assert.Equal(t, "PID|||ID1", seg.String())

	assert.Equal(t, []string{"", "", "ID1"}, seg.Fields(1, -1))
	assert.Equal(t, []string{"PID", ""}, seg.Fields(0, 1))
	assert.Nil(t, seg.Fields(5, 2))

	err = seg.SetField(0, "OBX")
	assert.True(t, hl7errors.IsCode(err, hl7errors.CodeIndexOutOfRange))
	assert.Equal(t, "PID", seg.Name())
}

func TestSegmentComponentsAndRepetitions(t *testing.T) {
	seg, err := NewSegment("PID", protocol.DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, seg.SetComponents(5, "EVERYMAN", "ADAM", "A"))
	assert.Equal(t, "EVERYMAN^ADAM^A", seg.Field(5))
	assert.Equal(t, []string{"EVERYMAN", "ADAM", "A"}, seg.Components(5))

	require.NoError(t, seg.SetField(13, "555-1234~555-9876"))
	assert.Equal(t, []string{"555-1234", "555-9876"}, seg.Repetitions(13))
}

func TestSegmentNull(t *testing.T) {
	cfg, err := protocol.DefaultConfig().With(protocol.SettingNull, "N/A")
	require.NoError(t, err)

	seg, err := NewSegment("OBX", cfg)
	require.NoError(t, err)

	require.NoError(t, seg.SetNull(5))
	require.NoError(t, seg.SetField(6, ""))

	assert.True(t, seg.IsNull(5))
	assert.False(t, seg.IsNull(6), "empty is absent, not null")
	assert.False(t, seg.IsNull(0))
	assert.Equal(t, "OBX|||||N/A|", seg.String())
}

func TestNewMSH(t *testing.T) {
	ts := time.Date(2004, 8, 6, 7, 38, 54, 0, time.UTC)
	msh := NewMSH(protocol.DefaultConfig(), WithTimestamp(ts), WithControlID("CTL42"))

	assert.Equal(t, "MSH", msh.Name())
	assert.Equal(t, "|", msh.FieldSeparator())
	assert.Equal(t, `^~\&`, msh.EncodingCharacters())
	assert.Equal(t, "CTL42", msh.ControlID())
	assert.Equal(t, "P", msh.ProcessingID())
	assert.Equal(t, "2.2", msh.Version())

	got, err := msh.Timestamp()
	require.NoError(t, err)
	assert.True(t, got.Equal(ts))

	assert.Equal(t, "MSH|^~\\&|||||20040806073854|||CTL42|P|2.2", msh.String())
}

func TestNewMSHCustomDelimiters(t *testing.T) {
	cfg, err := protocol.DefaultConfig().With(protocol.SettingFieldSeparator, "#")
	require.NoError(t, err)
	cfg, err = cfg.With(protocol.SettingVersion, "2.5.1")
	require.NoError(t, err)

	msh := NewMSH(cfg, WithControlID("X"))
	msh.SetMessageType("ORU", "R01")
	msh.SetSender("LAB", "GHH")

	assert.Equal(t, "#", msh.FieldSeparator())
	assert.Equal(t, "2.5.1", msh.Version())
	assert.True(t, strings.HasPrefix(msh.String(), "MSH#^~\\&#LAB#GHH#"))
	assert.Contains(t, msh.String(), "#ORU^R01#X#")
}

func TestNewMSHGeneratesControlID(t *testing.T) {
	a := NewMSH(protocol.DefaultConfig())
	b := NewMSH(protocol.DefaultConfig())

	assert.Len(t, a.ControlID(), MaxControlIDLength)
	assert.NotEqual(t, a.ControlID(), b.ControlID())

	seq := 0
	gen := &PrefixedGenerator{
		Prefix: "LAB",
		Generator: GeneratorFunc(func() string {
			seq++
			return strings.Repeat("0", 30)
		}),
	}
	c := NewMSH(protocol.DefaultConfig(), WithControlIDGenerator(gen))
	assert.Equal(t, 1, seq)
	assert.Len(t, c.ControlID(), MaxControlIDLength)
	assert.True(t, strings.HasPrefix(c.ControlID(), "LAB0"))
}

func TestPrefixedGeneratorWithoutGenerator(t *testing.T) {
	gen := &PrefixedGenerator{Prefix: "LAB"}

	var id string
	require.NotPanics(t, func() { id = gen.Generate() })
	assert.Len(t, id, MaxControlIDLength)
	assert.True(t, strings.HasPrefix(id, "LAB"))
	assert.NotEqual(t, id, gen.Generate())
}

func TestAsMSH(t *testing.T) {
	pid, err := NewSegment("PID", protocol.DefaultConfig())
	require.NoError(t, err)
	assert.Nil(t, AsMSH(pid))
	assert.Nil(t, AsMSH(nil))

	msh := NewMSH(protocol.DefaultConfig())
	assert.NotNil(t, AsMSH(msh.Segment))
}
