package main

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/thiefmaster/ddcwin/comm"
	"github.com/thiefmaster/ddcwin/ddc"
)

// rotaryboard inputs and LEDs
const (
	knob = iota
	buttonTopLeft
	buttonBottomLeft
	buttonBottomRight
	LED5
	LED4
	LED3
	LED2
	LED1
)

var levelLEDs = []int{LED1, LED2, LED3, LED4, LED5}

var knobCmd = &cobra.Command{
	Use:   "knob",
	Short: "Control brightness and input source with the rotaryboard",
	Long: `Turning the knob changes the brightness of all monitors, the LED bar shows
the resulting level. Releasing the bottom left button toggles all monitors
between the two inputs configured in knob.inputs.`,
	Args:        cobra.NoArgs,
	RunE:        runKnob,
	Annotations: sessionAnnotation,
}

type boardConn interface {
	Messages() <-chan comm.Message
	Send(cmd comm.Command) error
	Err() error
}

type knobController struct {
	session  *ddc.Session
	monitors []ddc.PhysicalMonitor
	step     int
	inputs   [2]ddc.InputSource
	logger   *log.Logger
}

func runKnob(cmd *cobra.Command, args []string) error {
	inputs, err := state.config.Knob.sources()
	if err != nil {
		return err
	}
	return withMonitors(func(monitors []ddc.PhysicalMonitor) error {
		board, err := comm.OpenBoard(state.config.Port, state.logger)
		if err != nil {
			return err
		}
		defer board.Close()

		k := &knobController{
			session:  state.session,
			monitors: monitors,
			step:     state.config.Knob.Step,
			inputs:   inputs,
			logger:   state.logger,
		}
		return k.run(board)
	})
}

// run handles board messages until the board goes away. Failed monitor
// commands are logged and do not stop the loop.
func (k *knobController) run(board boardConn) error {
	msgs := board.Messages()
	var carry *comm.Message
	for {
		var msg comm.Message
		if carry != nil {
			msg, carry = *carry, nil
		} else {
			m, ok := <-msgs
			if !ok {
				return board.Err()
			}
			msg = m
		}
		if msg.Kind == comm.KnobTurned {
			msg, carry = coalesceTurns(msg, msgs)
		}

		cmds, err := k.handle(msg)
		if err != nil {
			k.logger.Error("could not handle rotaryboard message", "kind", msg.Kind, "source", msg.Source, "err", err)
		}
		for _, cmd := range cmds {
			if err := board.Send(cmd); err != nil {
				return err
			}
		}
	}
}

// coalesceTurns adds up turns of the same knob that are already queued, so
// turns made while a write waits for its cooldown are applied in one step.
// The first queued message that is not such a turn is returned as rest.
func coalesceTurns(msg comm.Message, msgs <-chan comm.Message) (merged comm.Message, rest *comm.Message) {
	for {
		select {
		case m, ok := <-msgs:
			if !ok {
				return msg, nil
			}
			if m.Kind == comm.KnobTurned && m.Source == msg.Source {
				msg.Value += m.Value
				continue
			}
			return msg, &m
		default:
			return msg, nil
		}
	}
}

func (k *knobController) handle(msg comm.Message) ([]comm.Command, error) {
	switch {
	case len(k.monitors) == 0:
		return nil, nil
	case msg.Kind == comm.Ready:
		return k.showLevel()
	case msg.Kind == comm.KnobTurned && msg.Source == knob:
		return k.adjustBrightness(msg.Value)
	case msg.Kind == comm.ButtonReleased && msg.Source == buttonBottomLeft:
		return k.toggleInput()
	}
	return nil, nil
}

func (k *knobController) showLevel() ([]comm.Command, error) {
	h := k.monitors[0].Handle
	level, err := k.session.Brightness(h)
	if err != nil {
		return nil, err
	}
	maximum, err := k.session.MaxBrightness(h)
	if err != nil {
		return nil, err
	}
	return comm.NewLevelCommands(levelLEDs, level, maximum), nil
}

func (k *knobController) adjustBrightness(turns int) ([]comm.Command, error) {
	k.logger.Info("adjusting brightness", "by", turns*k.step)
	var level, top uint32
	for i, m := range k.monitors {
		current, err := k.session.Brightness(m.Handle)
		if err != nil {
			return nil, err
		}
		maximum, err := k.session.MaxBrightness(m.Handle)
		if err != nil {
			return nil, err
		}
		next := int64(current) + int64(turns*k.step)
		if next < 0 {
			next = 0
		} else if next > int64(maximum) {
			next = int64(maximum)
		}
		if err := k.session.SetBrightness(m.Handle, uint32(next)); err != nil {
			return nil, err
		}
		if i == 0 {
			level, top = uint32(next), maximum
		}
	}
	return comm.NewLevelCommands(levelLEDs, level, top), nil
}

// toggleInput switches to the second configured input if the first monitor
// shows the first one, otherwise to the first one. Monitors on an unknown
// input are switched unconditionally.
func (k *knobController) toggleInput() ([]comm.Command, error) {
	next := k.inputs[0]
	current, err := k.session.InputSource(k.monitors[0].Handle)
	switch {
	case errors.Is(err, ddc.ErrDecode):
		k.logger.Warn("unknown input source, switching to first configured input", "err", err)
	case err != nil:
		return nil, err
	case current == k.inputs[0]:
		next = k.inputs[1]
	}

	for _, m := range k.monitors {
		k.logger.Info("switching input source", "monitor", m.Description, "source", next)
		err := k.session.SetInputSource(m.Handle, next)
		if errors.Is(err, ddc.ErrDecode) {
			err = k.session.SetFeature(m.Handle, ddc.InputSelect, uint32(next))
		}
		if err != nil {
			return nil, err
		}
	}
	return []comm.Command{comm.NewToggleLEDCommand(buttonBottomLeft, next == k.inputs[1])}, nil
}
