package bank

import "sort"

// DefaultBankName is the bank created when no saved data exists.
const DefaultBankName = "XXX"

// AppState is an immutable snapshot of everything needed to render and
// resume a session. Every transition returns a new AppState; banks and
// parameters held by an old snapshot are never mutated, so callers can
// compare snapshots to detect change.
type AppState struct {
	CurrentBank   string
	Banks         map[string]Bank
	CursorX       int
	CursorY       int
	PreferredPort string

	ShowHelp        bool
	ShowCursorValue bool
	ShowAllValues   bool

	// Generation increments on every transition that touches bank data.
	// The controller schedules a save exactly when it changes.
	Generation uint64
}

// NewAppState builds the startup state. An empty bank set gets the default
// bank; the current bank is the default if present, else the first by name.
func NewAppState(banks map[string]Bank, preferredPort string) AppState {
	if len(banks) == 0 {
		banks = map[string]Bank{DefaultBankName: New(DefaultBankName)}
	}
	current := DefaultBankName
	if _, ok := banks[current]; !ok {
		names := make([]string, 0, len(banks))
		for name := range banks {
			names = append(names, name)
		}
		sort.Strings(names)
		current = names[0]
	}
	return AppState{
		CurrentBank:   current,
		Banks:         banks,
		PreferredPort: preferredPort,
		ShowHelp:      true,
	}
}

// Current returns the bank the cursor operates on.
func (s AppState) Current() Bank {
	return s.Banks[s.CurrentBank]
}

// CursorIndex maps the cursor position to a parameter index.
func (s AppState) CursorIndex() int {
	return s.CursorY*GridSize + s.CursorX
}

// CursorParam returns the parameter under the cursor.
func (s AppState) CursorParam() (Parameter, error) {
	return s.Current().Param(s.CursorIndex())
}

func copyBanks(banks map[string]Bank) map[string]Bank {
	out := make(map[string]Bank, len(banks))
	for name, b := range banks {
		out[name] = b
	}
	return out
}

// withCurrentBank replaces the current bank and marks bank data changed.
func (s AppState) withCurrentBank(b Bank) AppState {
	banks := copyBanks(s.Banks)
	banks[s.CurrentBank] = b
	s.Banks = banks
	s.Generation++
	return s
}

// MoveCursor shifts the cursor by (dx, dy), clamped to the grid. No wrap.
func (s AppState) MoveCursor(dx, dy int) AppState {
	s.CursorX = clamp(s.CursorX+dx, 0, GridSize-1)
	s.CursorY = clamp(s.CursorY+dy, 0, GridSize-1)
	return s
}

// SetValue sets the parameter's value and returns the updated parameter so
// the caller can forward it as a Control Change message.
func (s AppState) SetValue(index, value int) (AppState, Parameter, error) {
	b, err := s.Current().UpdateValue(index, value)
	if err != nil {
		return s, Parameter{}, err
	}
	p := b.Params[index]
	return s.withCurrentBank(b), p, nil
}

// AdjustValue nudges the cursor parameter's value by delta, clamped.
func (s AppState) AdjustValue(delta int) (AppState, Parameter, error) {
	p, err := s.CursorParam()
	if err != nil {
		return s, Parameter{}, err
	}
	return s.SetValue(s.CursorIndex(), p.Value+delta)
}

// RenameParam renames the parameter at index. The name must already be
// validated.
func (s AppState) RenameParam(index int, name string) (AppState, error) {
	b, err := s.Current().Rename(index, name)
	if err != nil {
		return s, err
	}
	return s.withCurrentBank(b), nil
}

// SetChannel sets the parameter's MIDI channel, clamped.
func (s AppState) SetChannel(index, channel int) (AppState, error) {
	b, err := s.Current().UpdateChannel(index, channel)
	if err != nil {
		return s, err
	}
	return s.withCurrentBank(b), nil
}

// SetControlNumber sets the parameter's CC number, clamped.
func (s AppState) SetControlNumber(index, controlNumber int) (AppState, error) {
	b, err := s.Current().UpdateControlNumber(index, controlNumber)
	if err != nil {
		return s, err
	}
	return s.withCurrentBank(b), nil
}

// SwitchBank makes the named bank current, creating a fresh one if it does
// not exist. Switching to an existing bank leaves bank data untouched.
func (s AppState) SwitchBank(name string) AppState {
	if _, ok := s.Banks[name]; !ok {
		banks := copyBanks(s.Banks)
		banks[name] = New(name)
		s.Banks = banks
		s.Generation++
	}
	s.CurrentBank = name
	return s
}

// ResetCurrentBank replaces the current bank with factory defaults.
// Destructive: there is no undo.
func (s AppState) ResetCurrentBank() AppState {
	return s.withCurrentBank(New(s.CurrentBank))
}

// WithPreferredPort records a newly connected MIDI port name.
func (s AppState) WithPreferredPort(name string) AppState {
	s.PreferredPort = name
	return s
}

// ToggleHelp flips the help line.
func (s AppState) ToggleHelp() AppState {
	s.ShowHelp = !s.ShowHelp
	return s
}

// ToggleAllValues flips between showing names and showing every value.
func (s AppState) ToggleAllValues() AppState {
	s.ShowAllValues = !s.ShowAllValues
	return s
}

// FlipCursorDisplay alternates the cursor cell between name and value.
// Driven by the controller's flip timer, not by user input.
func (s AppState) FlipCursorDisplay() AppState {
	s.ShowCursorValue = !s.ShowCursorValue
	return s
}
