package ddc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiefmaster/ddcwin/ddc"
)

func TestParseInputSource(t *testing.T) {
	tests := []struct {
		in   string
		want ddc.InputSource
	}{
		{"dp", ddc.DisplayPort},
		{"DisplayPort", ddc.DisplayPort},
		{"mdp", ddc.MiniDisplayPort},
		{"mini-displayport", ddc.MiniDisplayPort},
		{" HDMI1 ", ddc.HDMI1},
		{"hdmi", ddc.HDMI1},
		{"hdmi2", ddc.HDMI2},
		{"17", ddc.HDMI1},
		{"0x12", ddc.HDMI2},
	}
	for _, tt := range tests {
		got, err := ddc.ParseInputSource(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseInputSourceUnknown(t *testing.T) {
	for _, in := range []string{"", "vga", "hdmi3", "3", "-1"} {
		_, err := ddc.ParseInputSource(in)
		assert.ErrorIs(t, err, ddc.ErrDecode, in)
	}
}

func TestInputSourceString(t *testing.T) {
	assert.Equal(t, "mdp", ddc.MiniDisplayPort.String())
	assert.Equal(t, "input(3)", ddc.InputSource(3).String())
	assert.True(t, ddc.HDMI2.Valid())
	assert.False(t, ddc.InputSource(19).Valid())
}
