package ddc

import (
	"fmt"
	"strconv"
	"strings"
)

// InputSource is a value of the input select feature (VCP 0x60).
type InputSource uint32

const (
	DisplayPort     InputSource = 15
	MiniDisplayPort InputSource = 16
	HDMI1           InputSource = 17
	HDMI2           InputSource = 18
)

var inputSourceNames = map[InputSource]string{
	DisplayPort:     "dp",
	MiniDisplayPort: "mdp",
	HDMI1:           "hdmi1",
	HDMI2:           "hdmi2",
}

var inputSourceAliases = map[string]InputSource{
	"displayport":      DisplayPort,
	"minidp":           MiniDisplayPort,
	"mini-displayport": MiniDisplayPort,
	"hdmi":             HDMI1,
}

// Valid reports whether s is one of the known input sources.
func (s InputSource) Valid() bool {
	_, ok := inputSourceNames[s]
	return ok
}

func (s InputSource) String() string {
	if name, ok := inputSourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("input(%d)", uint32(s))
}

// ParseInputSource accepts the names returned by String, a few common
// aliases, and the numeric codes of the known sources.
func ParseInputSource(name string) (InputSource, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for source, n := range inputSourceNames {
		if n == name {
			return source, nil
		}
	}
	if source, ok := inputSourceAliases[name]; ok {
		return source, nil
	}
	if code, err := strconv.ParseUint(name, 0, 32); err == nil && InputSource(code).Valid() {
		return InputSource(code), nil
	}
	return 0, &Error{Kind: ErrDecode, Op: "ParseInputSource", Err: fmt.Errorf("unknown input source %q", name)}
}
