package comm

func NewResetCommand() Command {
	return Command{command: reset}
}

func NewClearLEDCommand(target int) Command {
	return Command{command: clearLED, target: target}
}

func NewSetLEDCommand(target int, color byte) Command {
	return Command{command: setLED, target: target, color: color}
}

func NewToggleLEDCommand(target int, on bool) Command {
	if on {
		return NewSetLEDCommand(target, '1')
	}
	return NewClearLEDCommand(target)
}

// NewLevelCommands lights leds from the start as a bar proportional to
// level/max. A non-zero level always lights at least one LED.
func NewLevelCommands(leds []int, level, max uint32) []Command {
	lit := 0
	if max > 0 && level > 0 {
		lit = int((uint64(level)*uint64(len(leds)) + uint64(max)/2) / uint64(max))
		if lit == 0 {
			lit = 1
		}
		if lit > len(leds) {
			lit = len(leds)
		}
	}
	cmds := make([]Command, len(leds))
	for i, led := range leds {
		cmds[i] = NewToggleLEDCommand(led, i < lit)
	}
	return cmds
}
