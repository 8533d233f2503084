package movement

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// DebugMode is a category of debug output.
type DebugMode uint8

const (
	DebugModeState DebugMode = iota
	DebugModeGround
	DebugModeJump
	DebugModeSlide
	DebugModeWallRun
	debugModeCount
)

func (m DebugMode) String() string {
	switch m {
	case DebugModeState:
		return "state"
	case DebugModeGround:
		return "ground"
	case DebugModeJump:
		return "jump"
	case DebugModeSlide:
		return "slide"
	case DebugModeWallRun:
		return "wall_run"
	default:
		return "unknown"
	}
}

// Debugger writes debug output for the modes that are toggled on.
type Debugger struct {
	log   *slog.Logger
	modes [debugModeCount]bool
}

// NewDebugger returns a debugger with every mode off.
func NewDebugger(log *slog.Logger) *Debugger {
	if log == nil {
		log = slog.Default()
	}
	return &Debugger{log: log}
}

// Toggle flips a debug mode.
func (d *Debugger) Toggle(mode DebugMode) {
	if mode < debugModeCount {
		d.modes[mode] = !d.modes[mode]
	}
}

// Enabled returns true if the mode is on.
func (d *Debugger) Enabled(mode DebugMode) bool {
	return d != nil && mode < debugModeCount && d.modes[mode]
}

// Notify logs the formatted message if the mode is on and cond holds.
func (d *Debugger) Notify(mode DebugMode, cond bool, format string, args ...any) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.Debug(fmt.Sprintf(format, args...), "mode", mode.String())
}

// NotifyParams logs msg followed by params rendered as [k=v k=v], in insertion order, if the mode is on.
func (d *Debugger) NotifyParams(mode DebugMode, msg string, params *orderedmap.OrderedMap[string, any]) {
	if !d.Enabled(mode) {
		return
	}
	d.log.Debug(msg+" "+formatParams(params), "mode", mode.String())
}

func formatParams(params *orderedmap.OrderedMap[string, any]) string {
	var b strings.Builder
	b.WriteByte('[')
	if params != nil {
		for el := params.Front(); el != nil; el = el.Next() {
			if b.Len() > 1 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%v", el.Key, el.Value)
		}
	}
	b.WriteByte(']')
	return b.String()
}
