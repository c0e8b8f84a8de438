package bank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBankDefaults(t *testing.T) {
	b := New("XXX")

	require.Len(t, b.Params, NumParams)
	for i, p := range b.Params {
		assert.Equal(t, fmt.Sprintf("P%02d", i), p.Name)
		assert.Zero(t, p.Value)
		assert.Zero(t, p.Channel)
		assert.Zero(t, p.ControlNumber)
	}
}

func TestNewBankTruncatesName(t *testing.T) {
	assert.Equal(t, "BAN", New("BANKS").Name)
}

func TestUpdateValueClamps(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{65, 65},
		{200, 127},
		{-5, 0},
		{0, 0},
		{127, 127},
	}

	for _, tt := range tests {
		b, err := New("XXX").UpdateValue(3, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Params[3].Value, "input %d", tt.in)
	}
}

func TestUpdateChannelClamps(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{7, 7},
		{20, 15},
		{-1, 0},
	}

	for _, tt := range tests {
		b, err := New("XXX").UpdateChannel(0, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, b.Params[0].Channel, "input %d", tt.in)
	}
}

func TestUpdateControlNumberClamps(t *testing.T) {
	b, err := New("XXX").UpdateControlNumber(0, 200)
	require.NoError(t, err)
	assert.Equal(t, 127, b.Params[0].ControlNumber)

	b, err = New("XXX").UpdateControlNumber(0, -3)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Params[0].ControlNumber)
}

func TestRenamePreservesOtherFields(t *testing.T) {
	b := New("XXX")
	b, err := b.UpdateValue(5, 100)
	require.NoError(t, err)
	b, err = b.UpdateChannel(5, 9)
	require.NoError(t, err)

	b, err = b.Rename(5, "CUT")
	require.NoError(t, err)

	p := b.Params[5]
	assert.Equal(t, "CUT", p.Name)
	assert.Equal(t, 100, p.Value)
	assert.Equal(t, 9, p.Channel)
}

func TestIndexOutOfRange(t *testing.T) {
	b := New("XXX")

	for _, idx := range []int{-1, NumParams, 1000} {
		_, err := b.UpdateValue(idx, 1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)

		_, err = b.Param(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
	}
}

func TestUpdateIsCopyOnWrite(t *testing.T) {
	b1 := New("XXX")
	b2, err := b1.UpdateValue(0, 64)
	require.NoError(t, err)

	assert.Equal(t, 0, b1.Params[0].Value, "old snapshot must be untouched")
	assert.Equal(t, 64, b2.Params[0].Value)
}

func TestMessageClamps(t *testing.T) {
	msg := NewMIDIMessage(20, 200, -5)
	assert.Equal(t, uint8(15), msg.Channel)
	assert.Equal(t, uint8(127), msg.ControlNumber)
	assert.Equal(t, uint8(0), msg.Value)

	p := Parameter{Name: "CUT", Value: 65, Channel: 2, ControlNumber: 74}
	assert.Equal(t, MIDIMessage{Channel: 2, ControlNumber: 74, Value: 65}, p.Message())
}
