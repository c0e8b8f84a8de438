package theme

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type RGB [3]uint8

type Palette struct {
	Name   string
	Colors []RGB
}

// Builtin returns the default dark-to-bright ramp used when no palette file
// is configured.
func Builtin() *Palette {
	return &Palette{
		Name: "ember",
		Colors: []RGB{
			{0x14, 0x0d, 0x1f},
			{0x2a, 0x1b, 0x3d},
			{0x50, 0x2b, 0x59},
			{0x83, 0x3a, 0x6d},
			{0xb8, 0x4a, 0x6b},
			{0xe1, 0x66, 0x5a},
			{0xf4, 0x8b, 0x50},
			{0xfb, 0xb9, 0x54},
			{0xf9, 0xe8, 0x6c},
		},
	}
}

// LoadGPL reads a GIMP palette file.
func LoadGPL(path string) (*Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p := &Palette{}
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Name:") {
			p.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
			continue
		}

		// Skip headers and comments
		if line == "" || line[0] == '#' || strings.HasPrefix(line, "GIMP") || strings.HasPrefix(line, "Columns") {
			continue
		}

		// Parse RGB values (first 3 fields are R G B)
		fields := strings.Fields(line)
		if len(fields) >= 3 {
			r, err1 := strconv.Atoi(fields[0])
			g, err2 := strconv.Atoi(fields[1])
			b, err3 := strconv.Atoi(fields[2])
			if err1 == nil && err2 == nil && err3 == nil {
				p.Colors = append(p.Colors, RGB{uint8(r), uint8(g), uint8(b)})
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(p.Colors) == 0 {
		return nil, fmt.Errorf("no colors found in palette %s", path)
	}

	return p, nil
}

// Load returns the palette at path, or the builtin ramp when path is empty
// or unreadable.
func Load(path string) *Palette {
	if path == "" {
		return Builtin()
	}
	p, err := LoadGPL(path)
	if err != nil {
		return Builtin()
	}
	return p
}

// Lookup returns interpolated color for normalized value 0-1
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	a := p.Colors[i]
	b := p.Colors[i+1]

	return RGB{
		uint8(float64(a[0]) + frac*(float64(b[0])-float64(a[0]))),
		uint8(float64(a[1]) + frac*(float64(b[1])-float64(a[1]))),
		uint8(float64(a[2]) + frac*(float64(b[2])-float64(a[2]))),
	}
}
