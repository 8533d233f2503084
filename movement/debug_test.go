package movement

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/elliotchance/orderedmap/v2"
)

func newBufferedDebugger() (*Debugger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewDebugger(log), buf
}

func TestDebuggerNotifyParams(t *testing.T) {
	dbg, buf := newBufferedDebugger()
	params := orderedmap.NewOrderedMap[string, any]()
	params.Set("to", "air")
	params.Set("from", "walking")
	params.Set("speed", 7.5)

	dbg.NotifyParams(DebugModeState, "movement state changed", params)
	if buf.Len() != 0 {
		t.Fatalf("expected no output while the mode is off, got %q", buf.String())
	}

	dbg.Toggle(DebugModeState)
	dbg.NotifyParams(DebugModeState, "movement state changed", params)
	if !strings.Contains(buf.String(), "movement state changed [to=air from=walking speed=7.5]") {
		t.Fatalf("expected params in insertion order, got %q", buf.String())
	}
}

func TestDebuggerNotifyCondition(t *testing.T) {
	dbg, buf := newBufferedDebugger()
	dbg.Toggle(DebugModeJump)
	dbg.Notify(DebugModeJump, false, "jump refused")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when the condition fails, got %q", buf.String())
	}
	dbg.Notify(DebugModeJump, true, "jumped (force=%.1f)", 12.0)
	if !strings.Contains(buf.String(), "jumped (force=12.0)") || !strings.Contains(buf.String(), "mode=jump") {
		t.Fatalf("expected the formatted message with its mode, got %q", buf.String())
	}

	var nilDbg *Debugger
	if nilDbg.Enabled(DebugModeJump) {
		t.Fatal("expected a nil debugger to have every mode off")
	}
	if formatParams(nil) != "[]" {
		t.Fatalf("expected empty brackets, got %q", formatParams(nil))
	}
}
