// Package route classifies inbound OSC messages into organ actions.
//
// The address grammar is
//
//	/aeolus/button/<group>/<button>  v   press (v != 0) or release a button
//	/aeolus/preset/<n>               v   select preset n unless v == 0
//	/aeolus/cancel                   n   reset the first n groups
//
// Indices in addresses are 1-based; actions carry 0-based indices.
package route

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Address prefixes.
const (
	Root          = "aeolus"
	CancelAddress = "/aeolus/cancel"
)

// ButtonAddress returns the address of a button from 1-based indices.
func ButtonAddress(group, button int) string {
	return fmt.Sprintf("/%s/button/%d/%d", Root, group, button)
}

// PresetAddress returns the address of a 1-based preset.
func PresetAddress(n int) string {
	return fmt.Sprintf("/%s/preset/%d", Root, n)
}

// Action is the result of classifying a message.
type Action interface {
	action()
}

// ButtonPress reports a button state change.
type ButtonPress struct {
	Group   int
	Button  int
	Pressed bool
}

// PresetSelect requests a preset.
type PresetSelect struct {
	Index int
}

// Cancel resets the first GroupCount groups.
type Cancel struct {
	GroupCount int
}

// Ignored is a recognized message that requires no action.
type Ignored struct {
	Address string
}

// Unrecognized is a message outside the address grammar.
type Unrecognized struct {
	Address string
	Reason  string
}

func (ButtonPress) action()  {}
func (PresetSelect) action() {}
func (Cancel) action()       {}
func (Ignored) action()      {}
func (Unrecognized) action() {}

// Classify maps an address and its arguments to an action. Matching is
// case-sensitive on '/'-delimited segments.
func Classify(address string, args []any) Action {
	segs := strings.Split(address, "/")
	if len(segs) < 3 || segs[0] != "" || segs[1] != Root {
		return Unrecognized{Address: address, Reason: "unknown prefix"}
	}

	switch segs[2] {
	case "button":
		return classifyButton(address, segs[3:], args)
	case "preset":
		return classifyPreset(address, segs[3:], args)
	case "cancel":
		return classifyCancel(address, segs[3:], args)
	}
	return Unrecognized{Address: address, Reason: "unknown command"}
}

func classifyButton(address string, segs []string, args []any) Action {
	if len(segs) != 2 {
		return Unrecognized{Address: address, Reason: "expected group and button"}
	}
	group, err1 := strconv.Atoi(segs[0])
	button, err2 := strconv.Atoi(segs[1])
	if err1 != nil || err2 != nil {
		return Unrecognized{Address: address, Reason: "non-numeric index"}
	}
	if len(args) != 1 {
		return Unrecognized{Address: address, Reason: fmt.Sprintf("expected 1 argument, got %d", len(args))}
	}
	v, ok := Number(args[0])
	if !ok {
		return Unrecognized{Address: address, Reason: fmt.Sprintf("non-numeric argument %T", args[0])}
	}
	return ButtonPress{Group: group - 1, Button: button - 1, Pressed: v != 0}
}

func classifyPreset(address string, segs []string, args []any) Action {
	if len(segs) != 1 {
		return Unrecognized{Address: address, Reason: "expected preset number"}
	}
	n, err := strconv.Atoi(segs[0])
	if err != nil {
		return Unrecognized{Address: address, Reason: "non-numeric preset"}
	}
	if len(args) == 1 {
		if v, ok := Number(args[0]); ok && v == 0 {
			return Ignored{Address: address}
		}
	}
	return PresetSelect{Index: n - 1}
}

func classifyCancel(address string, segs []string, args []any) Action {
	if len(segs) != 0 {
		return Unrecognized{Address: address, Reason: "unexpected path segments"}
	}
	if len(args) != 1 {
		return Unrecognized{Address: address, Reason: fmt.Sprintf("expected 1 argument, got %d", len(args))}
	}
	v, ok := Number(args[0])
	if !ok {
		return Unrecognized{Address: address, Reason: fmt.Sprintf("non-numeric argument %T", args[0])}
	}
	if v != math.Trunc(v) {
		return Unrecognized{Address: address, Reason: fmt.Sprintf("non-integral group count %v", v)}
	}
	return Cancel{GroupCount: int(v)}
}

// Number converts an OSC argument to a float64. OSC booleans count as 0
// and 1.
func Number(arg any) (float64, bool) {
	switch v := arg.(type) {
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
