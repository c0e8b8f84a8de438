package bank

import "fmt"

// Parameter is one editable MIDI control slot on the grid.
type Parameter struct {
	Name          string `json:"name"`
	Value         int    `json:"value"`
	Channel       int    `json:"channel"`
	ControlNumber int    `json:"controlNumber"`
}

// ClampValue clamps a CC value or controller number to the MIDI data range.
func ClampValue(v int) int {
	return clamp(v, 0, 127)
}

// ClampChannel clamps to the 16 MIDI channels (0-15).
func ClampChannel(v int) int {
	return clamp(v, 0, 15)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// defaultParam is the slot's factory state: name P<index>, everything zero.
func defaultParam(index int) Parameter {
	return Parameter{Name: fmt.Sprintf("P%02d", index)}
}

// MIDIMessage is a transient Control Change message. It is never stored,
// only handed to the MIDI output.
type MIDIMessage struct {
	Channel       uint8
	ControlNumber uint8
	Value         uint8
}

// NewMIDIMessage builds a Control Change message with all fields clamped.
func NewMIDIMessage(channel, controlNumber, value int) MIDIMessage {
	return MIDIMessage{
		Channel:       uint8(ClampChannel(channel)),
		ControlNumber: uint8(ClampValue(controlNumber)),
		Value:         uint8(ClampValue(value)),
	}
}

// Message returns the parameter's current state as a Control Change message.
func (p Parameter) Message() MIDIMessage {
	return NewMIDIMessage(p.Channel, p.ControlNumber, p.Value)
}
