package planner

import (
	"testing"
	"time"

	"github.com/Nasreen123/tango/tangoerr"
	"github.com/Nasreen123/tango/timestamp"
)

func ts(offset time.Duration) timestamp.Timestamp {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return timestamp.New(base.Add(offset))
}

func TestCheckDivergenceTargetAbsentIsNeeded(t *testing.T) {
	need, warns, err := checkDivergence(ts(0), timestamp.Absent, timestamp.Absent, "src.rs", "src.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("expected no warnings, got %v", warns)
	}
	if need != Needed {
		t.Errorf("got %v, want Needed", need)
	}
}

func TestCheckDivergenceTargetNewerIsUnneeded(t *testing.T) {
	sourceTime := ts(0)
	targetState := timestamp.Present(ts(time.Second))
	need, _, err := checkDivergence(sourceTime, targetState, timestamp.Absent, "src.rs", "src.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if need != Unneeded {
		t.Errorf("got %v, want Unneeded", need)
	}
}

func TestCheckDivergenceEqualAtLowPrecisionOnlyWarns(t *testing.T) {
	sourceTime := ts(0)
	targetState := timestamp.Present(ts(500 * time.Microsecond))
	need, warns, err := checkDivergence(sourceTime, targetState, timestamp.Absent, "src.rs", "src.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if need != Unneeded {
		t.Errorf("got %v, want Unneeded", need)
	}
	if len(warns) != 1 || warns[0].Kind != tangoerr.PrecisionCoarsened {
		t.Errorf("expected a precision-coarsened warning, got %v", warns)
	}
}

func TestCheckDivergenceOlderTargetNoStampIsError(t *testing.T) {
	sourceTime := ts(time.Second)
	targetState := timestamp.Present(ts(0))
	_, _, err := checkDivergence(sourceTime, targetState, timestamp.Absent, "src.rs", "src.md")
	if err == nil {
		t.Fatal("expected an error")
	}
	if ce, ok := err.(*tangoerr.CheckError); !ok || ce.Kind != tangoerr.NoStampExists {
		t.Errorf("got %v (%T), want NoStampExists", err, err)
	}
}

func TestCheckDivergenceStampOlderThanTargetIsError(t *testing.T) {
	sourceTime := ts(2 * time.Second)
	targetState := timestamp.Present(ts(time.Second))
	stamp := timestamp.Present(ts(0))
	_, _, err := checkDivergence(sourceTime, targetState, stamp, "src.rs", "src.md")
	if err == nil {
		t.Fatal("expected an error")
	}
	if ce, ok := err.(*tangoerr.CheckError); !ok || ce.Kind != tangoerr.StampOlderThanTarget {
		t.Errorf("got %v, want StampOlderThanTarget", err)
	}
}

func TestCheckDivergenceStampAtOrAfterTargetIsNeeded(t *testing.T) {
	sourceTime := ts(2 * time.Second)
	targetState := timestamp.Present(ts(time.Second))
	stamp := timestamp.Present(ts(time.Second))
	need, _, err := checkDivergence(sourceTime, targetState, stamp, "src.rs", "src.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if need != Needed {
		t.Errorf("got %v, want Needed", need)
	}
}

func TestCheckDivergenceStampBeforeTargetAtNanosecondOnlyNeedsWithWarning(t *testing.T) {
	sourceTime := ts(3 * time.Second)
	targetState := timestamp.Present(ts(2*time.Second + 500*time.Microsecond))
	stamp := timestamp.Present(ts(2*time.Second + 200*time.Microsecond))
	need, warns, err := checkDivergence(sourceTime, targetState, stamp, "src.rs", "src.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if need != Needed {
		t.Errorf("got %v, want Needed", need)
	}
	if len(warns) != 1 || warns[0].Kind != tangoerr.PrecisionCoarsened {
		t.Errorf("expected a precision-coarsened warning, got %v", warns)
	}
}
