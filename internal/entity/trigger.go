package entity

import "github.com/quennell/appliancelink/internal/catalog"

// Attributes that stay available regardless of the current program's
// constraint table.
var programIndependent = map[string]bool{
	"program":        true,
	"startTime":      true,
	"executeCommand": true,
}

// SupportedByProgram reports whether the attribute is permitted by the
// currently selected program. Availability is re-derived from the live
// capability metadata and the current reported state on every call.
//
// With no program selected, or no capability metadata, everything is
// supported.
func (e *Entity) SupportedByProgram() bool {
	if programIndependent[e.Attr] {
		return true
	}

	program, _ := e.app.ReportedValue("program")
	current, _ := program.(string)

	caps := e.app.Capabilities()
	if current != "" && caps != nil {
		programCaps, gated := programTable(caps, current)
		if gated {
			entityCap, listed := programCaps[e.Attr]
			if !listed {
				return false
			}

			disabled := false
			if capMap, ok := entityCap.(map[string]any); ok {
				disabled, _ = capMap[catalog.KeyDisabled].(bool)
			}
			if d, overridden := e.triggerDisabled(caps); overridden {
				disabled = d
			}
			if disabled {
				return false
			}
		}
	}

	// The food probe target is only settable while the probe is inserted.
	if e.Attr == "targetFoodProbeTemperatureC" {
		if state, ok := e.app.ReportedValue("foodProbeInsertionState"); ok && state == "NOT_INSERTED" {
			return false
		}
	}
	return true
}

// programTable returns the attribute constraint table for one program. The
// second return reports whether the capability metadata declares per-program
// tables at all. A program missing from a declared table set yields an empty
// table, which marks every gated attribute unsupported.
func programTable(caps map[string]any, program string) (map[string]any, bool) {
	programCap, _ := caps["program"].(map[string]any)
	values, ok := programCap[catalog.KeyValues].(map[string]any)
	if !ok {
		return nil, false
	}
	table, _ := values[program].(map[string]any)
	return table, true
}

// triggerDisabled scans every capability's trigger rules for an action
// naming this attribute. The last trigger whose condition holds against the
// current reported state decides the disabled flag. The second return is
// false when no trigger fired for the attribute.
func (e *Entity) triggerDisabled(caps map[string]any) (bool, bool) {
	disabled := false
	fired := false
	for _, capDef := range caps {
		capMap, ok := capDef.(map[string]any)
		if !ok {
			continue
		}
		triggers, ok := capMap[catalog.KeyTriggers].([]any)
		if !ok {
			continue
		}
		for _, raw := range triggers {
			trigger, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			action, ok := trigger["action"].(map[string]any)
			if !ok {
				continue
			}
			entityAction, ok := action[e.Attr].(map[string]any)
			if !ok {
				continue
			}
			condition, _ := trigger["condition"].(map[string]any)
			if !e.evalCondition(condition) {
				continue
			}
			if d, ok := entityAction[catalog.KeyDisabled].(bool); ok {
				disabled = d
				fired = true
			}
		}
	}
	return disabled, fired
}

// evalCondition evaluates a declarative trigger condition against the
// current reported state. Supported operators: eq, and, or. Operands may be
// nested sub-conditions, references to other reported attributes, or
// literals. An empty condition is true.
func (e *Entity) evalCondition(condition map[string]any) bool {
	if len(condition) == 0 {
		return true
	}

	operator, _ := condition["operator"].(string)
	if operator == "" {
		operator = "eq"
	}
	op1 := e.evalOperand(condition["operand_1"])
	op2 := e.evalOperand(condition["operand_2"])

	switch operator {
	case "eq":
		return op1 == op2
	case "and":
		return truthy(op1) && truthy(op2)
	case "or":
		return truthy(op1) || truthy(op2)
	}
	return false
}

func (e *Entity) evalOperand(operand any) any {
	node, ok := operand.(map[string]any)
	if !ok {
		return operand
	}

	_, has1 := node["operand_1"]
	_, has2 := node["operand_2"]
	switch {
	case has1 && has2:
		return e.evalCondition(node)
	case has1:
		// Reference to another reported attribute.
		name, _ := node["operand_1"].(string)
		value, _ := e.app.ReportedValue(name)
		return value
	default:
		return node["value"]
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return true
	}
}
