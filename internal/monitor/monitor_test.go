package monitor_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"mipscore/internal/bus"
	"mipscore/internal/cpu"
	"mipscore/internal/monitor"
	"mipscore/internal/tty"
)

func TestWatchWithoutATerminalFails(t *testing.T) {
	b := bus.New()

	c, err := cpu.New(b, cpu.WithPC(0x80010000))
	if err != nil {
		t.Fatalf("cpu.New: %v", err)
	}

	var out bytes.Buffer

	m := monitor.New(c, &out)

	// Tests run with stdin redirected, so the console can never attach to a real terminal here;
	// Watch should fail fast with tty.ErrNoTTY rather than block.
	err = m.Watch(context.Background())
	if !errors.Is(err, tty.ErrNoTTY) {
		t.Fatalf("Watch() = %v, want %v", err, tty.ErrNoTTY)
	}
}
