package entity

import (
	"math"

	"github.com/quennell/appliancelink/internal/catalog"
)

// SecondsToMinutes converts a native seconds value to display minutes.
func SecondsToMinutes(seconds float64) float64 {
	return seconds / 60
}

// MinutesToSeconds converts a display minutes value to native seconds.
func MinutesToSeconds(minutes float64) float64 {
	return minutes * 60
}

// ClampToStep clamps value into [min, max], then rounds to the nearest step
// measured from min. Clamping happens first so a value just past a bound
// lands exactly on the bound rather than one step beyond it.
func ClampToStep(value, min, max, step float64) float64 {
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	if step > 0 {
		value = min + math.Round((value-min)/step)*step
		if value > max {
			value -= step
		}
	}
	return value
}

// BuildCommand assembles the vendor command payload for one attribute write.
//
// Payload shapes:
//   - no source: {attr: value}
//   - "userSelections": {source: {programUID: <current>, attr: value}};
//     a missing program id is a hard error, never silently sent
//   - "latamUserSelections": the whole current selection block is resent
//     with only this attribute changed
//   - any other source: {source: {attr: value}}
func (e *Entity) BuildCommand(value any) (map[string]any, error) {
	switch e.Source {
	case "":
		return map[string]any{e.Attr: value}, nil

	case "userSelections":
		uid, ok := e.app.ReportedValue("userSelections/programUID")
		if !ok || uid == nil || uid == "" {
			return nil, ErrMissingProgramID
		}
		return map[string]any{
			e.Source: map[string]any{
				"programUID": uid,
				e.Attr:       value,
			},
		}, nil

	case "latamUserSelections":
		current, ok := e.app.ReportedValue(e.Source)
		block, isMap := current.(map[string]any)
		if !ok || !isMap {
			return nil, ErrMissingProgramID
		}
		selections := catalog.CloneInfo(block)
		selections[e.Attr] = value
		return map[string]any{e.Source: selections}, nil

	default:
		return map[string]any{
			e.Source: map[string]any{e.Attr: value},
		}, nil
	}
}
