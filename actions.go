package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/thiefmaster/ddcwin/ddc"
)

var (
	listCmd = &cobra.Command{
		Use:         "list",
		Short:       "List displays and their physical monitors",
		Args:        cobra.NoArgs,
		RunE:        runList,
		Annotations: sessionAnnotation,
	}

	brightnessCmd = &cobra.Command{
		Use:         "brightness [value]",
		Short:       "Show or set the brightness",
		Args:        cobra.MaximumNArgs(1),
		RunE:        runBrightness,
		Annotations: sessionAnnotation,
	}

	inputCmd = &cobra.Command{
		Use:         "input [dp|mdp|hdmi1|hdmi2]",
		Short:       "Show or switch the input source",
		Args:        cobra.MaximumNArgs(1),
		RunE:        runInput,
		Annotations: sessionAnnotation,
	}

	demoCmd = &cobra.Command{
		Use:         "demo",
		Short:       "Switch every monitor to another input and back again",
		Args:        cobra.NoArgs,
		RunE:        runDemo,
		Annotations: sessionAnnotation,
	}
)

// openMonitors opens the physical monitors of every display, or of the
// display at index when index is not negative.
func openMonitors(session *ddc.Session, index int) ([]ddc.PhysicalMonitor, error) {
	displays, err := session.ListDisplays()
	if err != nil {
		return nil, err
	}
	if index >= len(displays) {
		return nil, fmt.Errorf("display %d does not exist, found %d displays", index, len(displays))
	}
	var monitors []ddc.PhysicalMonitor
	for i, d := range displays {
		if index >= 0 && i != index {
			continue
		}
		opened, err := session.OpenHandles(d)
		if err != nil {
			return nil, errors.Join(err, closeMonitors(session, monitors))
		}
		monitors = append(monitors, opened...)
	}
	return monitors, nil
}

func closeMonitors(session *ddc.Session, monitors []ddc.PhysicalMonitor) error {
	var errs []error
	for _, m := range monitors {
		if err := session.CloseHandle(m.Handle); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func withMonitors(fn func([]ddc.PhysicalMonitor) error) (err error) {
	monitors, err := openMonitors(state.session, displayIndex)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeMonitors(state.session, monitors))
	}()
	return fn(monitors)
}

func runList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	displays, err := state.session.ListDisplays()
	if err != nil {
		return err
	}
	for i, d := range displays {
		primary := ""
		if d.Primary {
			primary = " (primary)"
		}
		fmt.Fprintf(out, "display %d: %dx%d at %d,%d%s\n",
			i, d.Bounds.Width(), d.Bounds.Height(), d.Bounds.Left, d.Bounds.Top, primary)
	}

	i := 0
	for m, err := range state.session.PhysicalMonitors(true) {
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "monitor %d: %s: %s\n", i, m.Description, describeMonitor(state.session, m.Handle))
		i++
	}
	return nil
}

// describeMonitor reads what it can; monitors without DDC/CI support are
// still listed.
func describeMonitor(session *ddc.Session, h ddc.Handle) string {
	var parts []string
	if current, err := session.Brightness(h); err != nil {
		state.logger.Debug("could not read brightness", "handle", h, "err", err)
		parts = append(parts, "brightness n/a")
	} else if maximum, err := session.MaxBrightness(h); err == nil {
		parts = append(parts, fmt.Sprintf("brightness %d/%d", current, maximum))
	}
	if source, err := session.InputSource(h); err != nil {
		state.logger.Debug("could not read input source", "handle", h, "err", err)
		parts = append(parts, "input n/a")
	} else {
		parts = append(parts, "input "+source.String())
	}
	return strings.Join(parts, ", ")
}

func printBrightness(out io.Writer, session *ddc.Session, monitors []ddc.PhysicalMonitor) error {
	for _, m := range monitors {
		current, err := session.Brightness(m.Handle)
		if err != nil {
			return err
		}
		maximum, err := session.MaxBrightness(m.Handle)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d/%d\n", m.Description, current, maximum)
	}
	return nil
}

func setBrightness(session *ddc.Session, monitors []ddc.PhysicalMonitor, value uint32) error {
	for _, m := range monitors {
		state.logger.Info("setting brightness", "monitor", m.Description, "value", value)
		if err := session.SetBrightness(m.Handle, value); err != nil {
			return err
		}
	}
	return nil
}

func runBrightness(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return withMonitors(func(monitors []ddc.PhysicalMonitor) error {
			return printBrightness(cmd.OutOrStdout(), state.session, monitors)
		})
	}
	value, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid brightness %q: %w", args[0], err)
	}
	return withMonitors(func(monitors []ddc.PhysicalMonitor) error {
		return setBrightness(state.session, monitors, uint32(value))
	})
}

func printInputs(out io.Writer, session *ddc.Session, monitors []ddc.PhysicalMonitor) error {
	for _, m := range monitors {
		source, err := session.InputSource(m.Handle)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", m.Description, source)
	}
	return nil
}

func switchInputs(session *ddc.Session, handles []ddc.Handle, source ddc.InputSource) error {
	for _, h := range handles {
		state.logger.Info("switching input source", "handle", h, "source", source)
		if err := session.SetInputSource(h, source); err != nil {
			return err
		}
	}
	return nil
}

func runInput(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return withMonitors(func(monitors []ddc.PhysicalMonitor) error {
			return printInputs(cmd.OutOrStdout(), state.session, monitors)
		})
	}
	source, err := ddc.ParseInputSource(args[0])
	if err != nil {
		return err
	}
	return withMonitors(func(monitors []ddc.PhysicalMonitor) error {
		handles := make([]ddc.Handle, len(monitors))
		for i, m := range monitors {
			handles[i] = m.Handle
		}
		return switchInputs(state.session, handles, source)
	})
}

// runDemo opens one handle per display, switches all of them to demo.to,
// waits demo.hold and switches them to demo.back.
func runDemo(cmd *cobra.Command, args []string) error {
	to, back, err := state.config.Demo.sources()
	if err != nil {
		return err
	}
	return demo(state.session, to, back, state.config.Demo.Hold, time.Sleep)
}

func demo(session *ddc.Session, to, back ddc.InputSource, hold time.Duration, sleep func(time.Duration)) (err error) {
	displays, err := session.ListDisplays()
	if err != nil {
		return err
	}

	var handles []ddc.Handle
	defer func() {
		for _, h := range handles {
			err = errors.Join(err, session.CloseHandle(h))
		}
	}()
	for _, d := range displays {
		h, err := session.OpenHandle(d)
		if err != nil {
			return err
		}
		handles = append(handles, h)
	}

	if err := switchInputs(session, handles, to); err != nil {
		return err
	}
	state.logger.Info("waiting before switching back", "hold", hold)
	sleep(hold)
	return switchInputs(session, handles, back)
}
