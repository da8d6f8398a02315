package publisher

import (
	"errors"
	"fmt"
	"strings"
)

// Action selects what a run does.
type Action int

const (
	// ActionBump increments the patch component of the manifest version.
	ActionBump Action = iota + 1
	// ActionPackAndPush packs the project and pushes the package.
	ActionPackAndPush
)

// ErrUnknownAction is returned for an unrecognized action argument.
var ErrUnknownAction = errors.New("unknown action")

// actionAliases maps every accepted spelling to its action.
//
//nolint:gochecknoglobals // Read-only lookup table.
var actionAliases = map[string]Action{
	"updateversion":  ActionBump,
	"0":              ActionBump,
	"packandpush":    ActionPackAndPush,
	"packandpublish": ActionPackAndPush,
	"1":              ActionPackAndPush,
}

// ParseAction converts a CLI argument into an Action. Matching ignores case.
func ParseAction(s string) (Action, error) {
	action, ok := actionAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w %q, expected updateVersion (0) or packAndPush (1)", ErrUnknownAction, s)
	}

	return action, nil
}

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case ActionBump:
		return "updateVersion"
	case ActionPackAndPush:
		return "packAndPush"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}
