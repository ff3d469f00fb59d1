package comm

import (
	"fmt"
)

// ParseMessage decodes one line received from the board.
func ParseMessage(s string) (Message, error) {
	var id, value int
	if s == "READY" {
		return Message{Kind: Ready}, nil
	} else if _, err := fmt.Sscanf(s, "RBTN.%d=1", &id); err == nil {
		return Message{Kind: ButtonPressed, Source: id}, nil
	} else if _, err := fmt.Sscanf(s, "RBTN.%d=0", &id); err == nil {
		return Message{Kind: ButtonReleased, Source: id}, nil
	} else if _, err := fmt.Sscanf(s, "RVAL.%d=%d", &id, &value); err == nil {
		return Message{Kind: KnobTurned, Source: id, Value: value}, nil
	}
	return Message{Kind: invalid}, fmt.Errorf("unexpected message: %q", s)
}

// String returns the wire form of c without the line terminator.
func (c Command) String() string {
	switch c.command {
	case reset:
		return "RST"
	case clearLED:
		return fmt.Sprintf("RLED.%d=0", c.target)
	case setLED:
		return fmt.Sprintf("RLED.%d=%c", c.target, c.color)
	default:
		return ""
	}
}
