package bank

import (
	"errors"
	"fmt"
)

// Grid dimensions. Parameter index = row*GridSize + col.
const (
	GridSize  = 8
	NumParams = GridSize * GridSize
)

// ErrIndexOutOfRange means a parameter access outside [0,64). The UI clamps
// its cursor, so hitting this is a grid/bank desync bug, not user error.
var ErrIndexOutOfRange = errors.New("parameter index out of range")

// Bank is a named set of exactly NumParams parameters. Banks are values:
// every update returns a new Bank with a fresh parameter slice, so old
// snapshots stay valid.
type Bank struct {
	Name   string
	Params []Parameter
}

// New returns a fresh bank with 64 default parameters P00..P63. Names longer
// than three characters are truncated.
func New(name string) Bank {
	if len(name) > 3 {
		name = name[:3]
	}
	params := make([]Parameter, NumParams)
	for i := range params {
		params[i] = defaultParam(i)
	}
	return Bank{Name: name, Params: params}
}

// Param returns the parameter at index.
func (b Bank) Param(index int) (Parameter, error) {
	if index < 0 || index >= len(b.Params) {
		return Parameter{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return b.Params[index], nil
}

func (b Bank) withParam(index int, p Parameter) (Bank, error) {
	if index < 0 || index >= len(b.Params) {
		return Bank{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	params := make([]Parameter, len(b.Params))
	copy(params, b.Params)
	params[index] = p
	return Bank{Name: b.Name, Params: params}, nil
}

// UpdateValue replaces the parameter's value, clamped to 0-127.
func (b Bank) UpdateValue(index, value int) (Bank, error) {
	p, err := b.Param(index)
	if err != nil {
		return Bank{}, err
	}
	p.Value = ClampValue(value)
	return b.withParam(index, p)
}

// Rename replaces the parameter's name. The caller is responsible for
// validating the name (input.CleanName).
func (b Bank) Rename(index int, name string) (Bank, error) {
	p, err := b.Param(index)
	if err != nil {
		return Bank{}, err
	}
	p.Name = name
	return b.withParam(index, p)
}

// UpdateChannel replaces the parameter's MIDI channel, clamped to 0-15.
func (b Bank) UpdateChannel(index, channel int) (Bank, error) {
	p, err := b.Param(index)
	if err != nil {
		return Bank{}, err
	}
	p.Channel = ClampChannel(channel)
	return b.withParam(index, p)
}

// UpdateControlNumber replaces the parameter's CC number, clamped to 0-127.
func (b Bank) UpdateControlNumber(index, controlNumber int) (Bank, error) {
	p, err := b.Param(index)
	if err != nil {
		return Bank{}, err
	}
	p.ControlNumber = ClampValue(controlNumber)
	return b.withParam(index, p)
}
