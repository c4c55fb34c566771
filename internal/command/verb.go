// Package command maps the load/save/test verbs onto registry operations.
package command

import (
	"errors"
	"fmt"
)

// ErrUnknownVerb is returned for a Verb value outside the declared set.
var ErrUnknownVerb = errors.New("unknown verb")

// Verb is the closed set of skin commands.
type Verb int

const (
	VerbLoad Verb = iota + 1
	VerbSave
	VerbTest
)

// Verbs returns every verb in display order.
func Verbs() []Verb {
	return []Verb{VerbLoad, VerbSave, VerbTest}
}

func (v Verb) String() string {
	switch v {
	case VerbLoad:
		return "load"
	case VerbSave:
		return "save"
	case VerbTest:
		return "test"
	default:
		return fmt.Sprintf("Verb(%d)", int(v))
	}
}

// Args is the number of arguments the verb requires.
func (v Verb) Args() int {
	switch v {
	case VerbLoad:
		return 3
	case VerbSave, VerbTest:
		return 1
	default:
		return 0
	}
}

// Usage is the argument synopsis shown on misuse.
func (v Verb) Usage() string {
	switch v {
	case VerbLoad:
		return "load <json filePath> <png filePath> <geometryName>"
	case VerbSave:
		return "save <name>"
	case VerbTest:
		return "test <name>"
	default:
		return v.String()
	}
}

// Short is a one-line description of the verb.
func (v Verb) Short() string {
	switch v {
	case VerbLoad:
		return "Load a skin from a geometry JSON file and a PNG texture"
	case VerbSave:
		return "Save the current skin under a name"
	case VerbTest:
		return "Apply a saved skin as the current skin"
	default:
		return ""
	}
}
