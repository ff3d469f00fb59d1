package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiefmaster/ddcwin/ddc"
	"github.com/thiefmaster/ddcwin/ddc/ddctest"
)

func TestDemo(t *testing.T) {
	clock := ddctest.NewClock()
	api := ddctest.NewAPI(clock)
	left := api.AddDisplay("left")
	right := api.AddDisplay("right", "right (second device)")
	session := ddc.NewSession(api, ddc.WithClock(clock))
	for _, d := range []ddc.Display{left, right} {
		for _, m := range api.Monitors(d) {
			api.SetReply(m.Handle, ddc.InputSelect, uint32(ddc.MiniDisplayPort), 0)
		}
	}

	var held []time.Duration
	sleep := func(d time.Duration) {
		held = append(held, d)
		clock.Advance(d)
	}
	require.NoError(t, demo(session, ddc.HDMI1, ddc.MiniDisplayPort, 10*time.Second, sleep))

	assert.Equal(t, []time.Duration{10 * time.Second}, held)

	leftHandle := api.Monitors(left)[0].Handle
	rightHandle := api.Monitors(right)[0].Handle
	var got []ddctest.Write
	for _, w := range api.Writes() {
		got = append(got, ddctest.Write{Handle: w.Handle, Code: w.Code, Value: w.Value})
	}
	assert.Equal(t, []ddctest.Write{
		{Handle: leftHandle, Code: ddc.InputSelect, Value: uint32(ddc.HDMI1)},
		{Handle: rightHandle, Code: ddc.InputSelect, Value: uint32(ddc.HDMI1)},
		{Handle: leftHandle, Code: ddc.InputSelect, Value: uint32(ddc.MiniDisplayPort)},
		{Handle: rightHandle, Code: ddc.InputSelect, Value: uint32(ddc.MiniDisplayPort)},
	}, got)

	// the second device of the right display is released when opening it
	assert.ElementsMatch(t, []ddc.Handle{
		leftHandle, rightHandle, api.Monitors(right)[1].Handle,
	}, api.Destroyed())
}

func TestDemoClosesHandlesOnFailure(t *testing.T) {
	api := ddctest.NewAPI(nil)
	d := api.AddDisplay("monitor")
	api.SetReply(api.Monitors(d)[0].Handle, ddc.InputSelect, uint32(ddc.DisplayPort), 0)
	api.SetErr = errors.New("no ack")
	session := ddc.NewSession(api)

	err := demo(session, ddc.HDMI1, ddc.DisplayPort, 0, func(time.Duration) {})
	assert.ErrorIs(t, err, ddc.ErrCommand)
	assert.Equal(t, []ddc.Handle{api.Monitors(d)[0].Handle}, api.Destroyed())
}

func TestOpenMonitors(t *testing.T) {
	api := ddctest.NewAPI(nil)
	api.AddDisplay("left")
	right := api.AddDisplay("right", "right (second device)")
	session := ddc.NewSession(api)

	all, err := openMonitors(session, -1)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	require.NoError(t, closeMonitors(session, all))

	only, err := openMonitors(session, 1)
	require.NoError(t, err)
	assert.Equal(t, api.Monitors(right), only)
	require.NoError(t, closeMonitors(session, only))

	_, err = openMonitors(session, 2)
	assert.ErrorContains(t, err, "display 2 does not exist")
}

func TestOpenMonitorsReleasesOnFailure(t *testing.T) {
	api := ddctest.NewAPI(nil)
	first := api.AddDisplay("left")
	api.AddDisplay()
	session := ddc.NewSession(api)

	_, err := openMonitors(session, -1)
	assert.ErrorIs(t, err, ddc.ErrResolution)
	assert.Equal(t, []ddc.Handle{api.Monitors(first)[0].Handle}, api.Destroyed())
}

func TestPrintBrightnessAndInputs(t *testing.T) {
	api := ddctest.NewAPI(nil)
	d := api.AddDisplay("DELL U2720Q")
	h := api.Monitors(d)[0].Handle
	api.SetReply(h, ddc.Brightness, 42, 100)
	api.SetReply(h, ddc.InputSelect, uint32(ddc.HDMI2), 0)
	session := ddc.NewSession(api)

	var out bytes.Buffer
	require.NoError(t, printBrightness(&out, session, api.Monitors(d)))
	require.NoError(t, printInputs(&out, session, api.Monitors(d)))
	assert.Equal(t, "DELL U2720Q: 42/100\nDELL U2720Q: hdmi2\n", out.String())

	assert.Equal(t, "brightness 42/100, input hdmi2", describeMonitor(session, h))
	api.GetErr = errors.New("timeout")
	assert.Equal(t, "brightness n/a, input n/a", describeMonitor(session, h))
}
