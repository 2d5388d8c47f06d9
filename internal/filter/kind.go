// Package filter implements the preset filter engine: a closed set of eight
// parameterless transforms applied to a source image, always returning output
// at the source's exact pixel dimensions.
package filter

import "fmt"

// Kind identifies one of the fixed preset transforms. The set is closed; no
// preset takes parameters.
type Kind int

const (
	// None selects no preset: the engine passes the source through as a
	// pixel-identical copy.
	None Kind = iota
	Chrome
	Fade
	Instant
	Mono
	Noir
	Process
	Tonal
	Transfer
)

var kindNames = map[Kind]string{
	None:     "none",
	Chrome:   "chrome",
	Fade:     "fade",
	Instant:  "instant",
	Mono:     "mono",
	Noir:     "noir",
	Process:  "process",
	Tonal:    "tonal",
	Transfer: "transfer",
}

var kindDisplayNames = map[Kind]string{
	None:     "Original",
	Chrome:   "Chrome",
	Fade:     "Fade",
	Instant:  "Instant",
	Mono:     "Mono",
	Noir:     "Noir",
	Process:  "Process",
	Tonal:    "Tonal",
	Transfer: "Transfer",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// DisplayName is the label shown in the filter selector.
func (k Kind) DisplayName() string {
	if name, ok := kindDisplayNames[k]; ok {
		return name
	}
	return k.String()
}

// IsPreset reports whether k names an actual preset transform, as opposed to
// None or an out-of-range value.
func (k Kind) IsPreset() bool {
	return k > None && k <= Transfer
}

// Kinds returns the eight preset kinds in selector order.
func Kinds() []Kind {
	return []Kind{Chrome, Fade, Instant, Mono, Noir, Process, Tonal, Transfer}
}

// Parse resolves a preset identifier. "none" and the empty string resolve to
// None.
func Parse(name string) (Kind, error) {
	if name == "" {
		return None, nil
	}
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return None, fmt.Errorf("unknown filter kind: %q", name)
}
