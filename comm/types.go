package comm

// MessageKind identifies a message sent by the rotaryboard.
type MessageKind int

type commandKind int

const (
	invalid MessageKind = iota
	Ready
	KnobTurned
	ButtonPressed
	ButtonReleased
)

func (k MessageKind) String() string {
	switch k {
	case Ready:
		return "ready"
	case KnobTurned:
		return "knob-turned"
	case ButtonPressed:
		return "button-pressed"
	case ButtonReleased:
		return "button-released"
	default:
		return "invalid"
	}
}

const (
	_ commandKind = iota
	reset
	clearLED
	setLED
)

// Message is an event from the board. Value is the number of detents a
// knob was turned, negative for counter-clockwise.
type Message struct {
	Kind   MessageKind
	Source int
	Value  int
}

// Command is a request sent to the board.
type Command struct {
	command commandKind
	target  int
	color   byte
}
