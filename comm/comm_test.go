package comm

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessage(t *testing.T) {
	tests := []struct {
		line string
		want Message
	}{
		{"READY", Message{Kind: Ready}},
		{"RBTN.1=1", Message{Kind: ButtonPressed, Source: 1}},
		{"RBTN.2=0", Message{Kind: ButtonReleased, Source: 2}},
		{"RVAL.0=3", Message{Kind: KnobTurned, Source: 0, Value: 3}},
		{"RVAL.0=-2", Message{Kind: KnobTurned, Source: 0, Value: -2}},
	}
	for _, tt := range tests {
		got, err := ParseMessage(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}

	for _, line := range []string{"", "HELLO", "RBTN.x=1", "RLED.1=1"} {
		_, err := ParseMessage(line)
		assert.Error(t, err, line)
	}
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "RST", NewResetCommand().String())
	assert.Equal(t, "RLED.3=0", NewClearLEDCommand(3).String())
	assert.Equal(t, "RLED.0=Y", NewSetLEDCommand(0, 'Y').String())
	assert.Equal(t, "RLED.2=1", NewToggleLEDCommand(2, true).String())
	assert.Equal(t, "RLED.2=0", NewToggleLEDCommand(2, false).String())
	assert.Equal(t, "", Command{}.String())
}

func TestNewLevelCommands(t *testing.T) {
	leds := []int{8, 7, 6, 5, 4}
	render := func(cmds []Command) string {
		var parts []string
		for _, c := range cmds {
			parts = append(parts, c.String())
		}
		return strings.Join(parts, " ")
	}

	tests := []struct {
		level, max uint32
		want       string
	}{
		{0, 100, "RLED.8=0 RLED.7=0 RLED.6=0 RLED.5=0 RLED.4=0"},
		{1, 100, "RLED.8=1 RLED.7=0 RLED.6=0 RLED.5=0 RLED.4=0"},
		{50, 100, "RLED.8=1 RLED.7=1 RLED.6=1 RLED.5=0 RLED.4=0"},
		{100, 100, "RLED.8=1 RLED.7=1 RLED.6=1 RLED.5=1 RLED.4=1"},
		{150, 100, "RLED.8=1 RLED.7=1 RLED.6=1 RLED.5=1 RLED.4=1"},
		{10, 0, "RLED.8=0 RLED.7=0 RLED.6=0 RLED.5=0 RLED.4=0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, render(NewLevelCommands(leds, tt.level, tt.max)), "%d/%d", tt.level, tt.max)
	}
}

type fakePort struct {
	io.Reader
	written bytes.Buffer
	closed  bool
}

func (p *fakePort) Write(b []byte) (int, error) { return p.written.Write(b) }
func (p *fakePort) Close() error                { p.closed = true; return nil }

func TestBoardReadsMessages(t *testing.T) {
	port := &fakePort{Reader: strings.NewReader("READY\r\n\nRVAL.0=1\nRBTN.2=0\n")}
	b := NewBoard(port, log.New(io.Discard))

	var got []Message
	for msg := range b.Messages() {
		got = append(got, msg)
	}
	assert.Equal(t, []Message{
		{Kind: Ready},
		{Kind: KnobTurned, Source: 0, Value: 1},
		{Kind: ButtonReleased, Source: 2},
	}, got)
	assert.ErrorIs(t, b.Err(), io.ErrUnexpectedEOF)
}

func TestBoardStopsOnInvalidMessage(t *testing.T) {
	port := &fakePort{Reader: strings.NewReader("READY\nGARBAGE\nRVAL.0=1\n")}
	b := NewBoard(port, log.New(io.Discard))

	var got []Message
	for msg := range b.Messages() {
		got = append(got, msg)
	}
	assert.Equal(t, []Message{{Kind: Ready}}, got)
	assert.ErrorContains(t, b.Err(), "GARBAGE")
}

func TestBoardSend(t *testing.T) {
	port := &fakePort{Reader: strings.NewReader("")}
	b := NewBoard(port, log.New(io.Discard))

	require.NoError(t, b.Send(NewResetCommand()))
	require.NoError(t, b.Send(NewSetLEDCommand(1, '1')))
	assert.Error(t, b.Send(Command{}))
	assert.Equal(t, "RST\nRLED.1=1\n", port.written.String())

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.True(t, port.closed)
}
