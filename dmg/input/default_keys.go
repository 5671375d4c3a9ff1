// Package input holds backend-independent key mapping tables.
package input

import "dmgcore/dmg/input/action"

// DefaultKeyMap provides the default key-to-action mapping shared by every
// backend. Backends translate their own native key names into these strings
// before looking them up here.
var DefaultKeyMap = map[string]action.Action{
	"z":     action.ButtonA,
	"x":     action.ButtonB,
	"Enter": action.ButtonStart,
	"Shift": action.ButtonSelect,
	"Up":    action.DPadUp,
	"Down":  action.DPadDown,
	"Left":  action.DPadLeft,
	"Right": action.DPadRight,

	"w": action.DPadUp,
	"s": action.DPadDown,
	"a": action.DPadLeft,
	"d": action.DPadRight,

	"Escape": action.Quit,
	"q":      action.Quit,
}

// GetDefaultMapping returns the default action for a key, if one exists.
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
