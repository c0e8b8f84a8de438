// Package input decodes raw key presses and prompt text into validated
// commands. It is stateless: all validation is pure string work.
package input

import (
	"strconv"
	"strings"

	"ccgrid/bank"
)

// Kind identifies the command a key maps to.
type Kind int

const (
	None Kind = iota
	Move
	Increment
	Decrement
	PromptValue
	PromptRename
	PromptChannel
	PromptControlNumber
	PromptBank
	ResetBank
	PromptPort
	ToggleHelp
	ToggleAllValues
	Quit
)

// Action is a decoded key press. Move actions carry the cursor delta.
type Action struct {
	Kind   Kind
	DX, DY int
}

// Decode maps a key (bubbletea's KeyMsg.String() form) to an action.
// Unknown keys decode to None.
func Decode(key string) Action {
	switch key {
	case "up":
		return Action{Kind: Move, DY: -1}
	case "down":
		return Action{Kind: Move, DY: 1}
	case "left":
		return Action{Kind: Move, DX: -1}
	case "right":
		return Action{Kind: Move, DX: 1}
	case "+", "=":
		return Action{Kind: Increment}
	case "-", "_":
		return Action{Kind: Decrement}
	case "v":
		return Action{Kind: PromptValue}
	case "r":
		return Action{Kind: PromptRename}
	case "c":
		return Action{Kind: PromptChannel}
	case "n":
		return Action{Kind: PromptControlNumber}
	case "b":
		return Action{Kind: PromptBank}
	case "x":
		return Action{Kind: ResetBank}
	case "m":
		return Action{Kind: PromptPort}
	case "h":
		return Action{Kind: ToggleHelp}
	case " ":
		return Action{Kind: ToggleAllValues}
	case "q":
		return Action{Kind: Quit}
	}
	return Action{Kind: None}
}

// ParseMIDIValue parses a 0-127 field. Unparseable input falls back to the
// field's current value rather than erroring: bad text is silently ignored.
func ParseMIDIValue(s string, current int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return current
	}
	return bank.ClampValue(n)
}

// ParseChannel parses a 0-15 channel field with the same fallback policy.
func ParseChannel(s string, current int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return current
	}
	return bank.ClampChannel(n)
}

// CleanName normalizes a parameter or bank name: trim, uppercase, truncate
// to three characters. Valid only if the result is non-empty and every
// character is an ASCII letter or digit.
func CleanName(s string) (string, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(s))
	if len(cleaned) > 3 {
		cleaned = cleaned[:3]
	}
	if cleaned == "" {
		return "", false
	}
	for _, r := range cleaned {
		if !alnum(r) {
			return "", false
		}
	}
	return cleaned, true
}

func alnum(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
