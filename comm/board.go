// Package comm talks to the rotaryboard, a serial device with a push knob,
// three buttons and a row of LEDs.
package comm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tarm/serial"
)

const baudRate = 19200

// Board is a connection to a rotaryboard. Messages are delivered on the
// channel returned by Messages until the connection fails or is closed.
type Board struct {
	port     io.ReadWriteCloser
	logger   *log.Logger
	messages chan Message
	done     chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once

	errMu sync.Mutex
	err   error
}

// OpenBoard opens the serial port and resets the board.
func OpenBoard(name string, logger *log.Logger) (*Board, error) {
	logger.Info("opening serial port", "port", name)
	port, err := serial.OpenPort(&serial.Config{Name: name, Baud: baudRate})
	if err != nil {
		return nil, fmt.Errorf("could not open serial port %s: %w", name, err)
	}
	b := NewBoard(port, logger)
	logger.Debug("resetting rotaryboard")
	if err := b.Send(NewResetCommand()); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// NewBoard starts reading messages from an already opened port.
func NewBoard(port io.ReadWriteCloser, logger *log.Logger) *Board {
	b := &Board{
		port:     port,
		logger:   logger,
		messages: make(chan Message, 8),
		done:     make(chan struct{}),
	}
	go b.readLoop()
	return b
}

func (b *Board) readLoop() {
	defer close(b.messages)
	scanner := bufio.NewScanner(b.port)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		msg, err := ParseMessage(line)
		if err != nil {
			b.setErr(err)
			return
		}
		b.logger.Debug("rotaryboard message", "kind", msg.Kind, "source", msg.Source, "value", msg.Value)
		select {
		case b.messages <- msg:
		case <-b.done:
			return
		}
	}
	select {
	case <-b.done:
	default:
		if err := scanner.Err(); err != nil {
			b.setErr(fmt.Errorf("could not read from rotaryboard: %w", err))
		} else {
			b.setErr(io.ErrUnexpectedEOF)
		}
	}
}

func (b *Board) setErr(err error) {
	b.errMu.Lock()
	defer b.errMu.Unlock()
	if b.err == nil {
		b.err = err
	}
}

// Messages returns the channel of received messages. It is closed when
// reading stops; Err then tells why.
func (b *Board) Messages() <-chan Message {
	return b.messages
}

// Err returns the error that stopped reading, or nil after Close.
func (b *Board) Err() error {
	b.errMu.Lock()
	defer b.errMu.Unlock()
	return b.err
}

// Send writes one command to the board.
func (b *Board) Send(cmd Command) error {
	s := cmd.String()
	if s == "" {
		return fmt.Errorf("unexpected command: %#v", cmd)
	}
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	if _, err := io.WriteString(b.port, s+"\n"); err != nil {
		return fmt.Errorf("could not write to rotaryboard: %w", err)
	}
	return nil
}

func (b *Board) Close() error {
	var err error
	b.closeOnce.Do(func() {
		close(b.done)
		err = b.port.Close()
	})
	return err
}
