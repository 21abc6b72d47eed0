package merge

import (
	"fmt"
	"strings"
)

// Mode selects how a Merger aggregates its inputs.
type Mode int

// Supported merge modes.
const (
	Mean Mode = iota
	Sum
	Max
	Min
	GMean
	TSharpen
)

// SharpenPower is the exponent applied by TSharpen before averaging.
const SharpenPower = 0.5

var modeNames = [...]string{
	Mean:     "mean",
	Sum:      "sum",
	Max:      "max",
	Min:      "min",
	GMean:    "gmean",
	TSharpen: "tsharpen",
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

// Modes returns every supported mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, len(modeNames))
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// ParseMode resolves a configuration name such as "mean" or "tsharpen".
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseMode(name string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == key {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown merge mode %q", ErrInvalidConfiguration, name)
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unknown merge mode %d", ErrInvalidConfiguration, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
