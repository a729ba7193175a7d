package stamp

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Nasreen123/tango/timestamp"
)

func TestGuardReadAbsent(t *testing.T) {
	g := New(filepath.Join(t.TempDir(), "tango.stamp"))
	state, err := g.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.IsPresent() {
		t.Error("expected absent stamp before creation")
	}
}

func TestGuardCreateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tango.stamp")
	g := New(path)
	if err := g.Create(); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := g.Create(); err != nil {
		t.Fatalf("second create should be a no-op, got: %v", err)
	}
	state, err := g.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.IsPresent() {
		t.Error("expected present stamp after creation")
	}
}

func TestGuardAdvanceSetsMtime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tango.stamp")
	g := New(path)
	if err := g.Create(); err != nil {
		t.Fatalf("create: %v", err)
	}

	target := timestamp.New(time.Date(2030, 5, 4, 3, 2, 1, 0, time.UTC))
	if err := g.Advance(target); err != nil {
		t.Fatalf("advance: %v", err)
	}

	state, err := g.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, present := state.Get()
	if !present {
		t.Fatal("expected stamp to be present")
	}
	if !got.SameLowPrecision(target) {
		t.Errorf("got %s, want %s", got.FormatHuman(), target.FormatHuman())
	}
}
