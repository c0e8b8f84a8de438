// Package midi is the output-only MIDI surface: list ports, connect to one
// by name, send Control Change messages.
package midi

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// NoPort is the display name when nothing is connected.
const NoPort = "none"

// Output is the MIDI collaborator the controller needs.
type Output interface {
	Ports() []string
	Connect(name string) error
	Disconnect()
	Send(channel, controlNumber, value uint8) error
	PortName() string
	Connected() bool
}

// PortOutput sends Control Change messages to one rtmidi output port.
type PortOutput struct {
	mu   sync.Mutex
	port drivers.Out
	send func(gomidi.Message) error
}

// NewPortOutput creates an unconnected output.
func NewPortOutput() *PortOutput {
	return &PortOutput{}
}

// Ports lists the names of all MIDI output ports.
func (o *PortOutput) Ports() []string {
	var names []string
	for _, p := range outPorts() {
		names = append(names, p.String())
	}
	return names
}

// outPorts scans with a timeout guard (CoreMIDI can hang).
func outPorts() []drivers.Out {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs
	case <-time.After(3 * time.Second):
		// MIDI backend is hung - treat as no ports
		return nil
	}
}

// Connect opens the first output port whose name contains name,
// case-insensitive. An empty name matches the first available port.
// The previous port, if any, is closed first.
func (o *PortOutput) Connect(name string) error {
	want := strings.ToLower(strings.TrimSpace(name))

	var port drivers.Out
	for _, p := range outPorts() {
		if want == "" || strings.Contains(strings.ToLower(p.String()), want) {
			port = p
			break
		}
	}
	if port == nil {
		return fmt.Errorf("no MIDI output port matching %q", name)
	}

	send, err := gomidi.SendTo(port)
	if err != nil {
		return fmt.Errorf("open output %s: %w", port.String(), err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.port != nil {
		o.port.Close()
	}
	o.port = port
	o.send = send
	return nil
}

// Disconnect closes the current port.
func (o *PortOutput) Disconnect() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.port != nil {
		o.port.Close()
		o.port = nil
		o.send = nil
	}
}

// Send transmits one Control Change message.
func (o *PortOutput) Send(channel, controlNumber, value uint8) error {
	o.mu.Lock()
	send := o.send
	o.mu.Unlock()

	if send == nil {
		return fmt.Errorf("no MIDI port connected")
	}
	return send(gomidi.ControlChange(channel, controlNumber, value))
}

// PortName returns the connected port's name, or NoPort.
func (o *PortOutput) PortName() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.port == nil {
		return NoPort
	}
	return o.port.String()
}

// Connected reports whether a port is open.
func (o *PortOutput) Connected() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.port != nil
}
