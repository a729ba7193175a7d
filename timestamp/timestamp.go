// Package timestamp wraps filesystem modification times with the
// dual-precision comparisons the synchronization engine needs: some
// filesystems and some "set times" primitives round to millisecond
// granularity, so code that just-wrote a timestamp and re-reads it must
// compare at millisecond precision rather than full nanosecond precision.
package timestamp

import (
	"fmt"
	"os"
	"time"
)

// Timestamp is a whole-second-and-nanosecond moment derived from
// filesystem metadata (os.FileInfo.ModTime).
type Timestamp struct {
	t time.Time
}

// New wraps a time.Time as a Timestamp.
func New(t time.Time) Timestamp {
	return Timestamp{t: t}
}

// IsZero reports whether the timestamp holds the zero time.Time.
func (ts Timestamp) IsZero() bool {
	return ts.t.IsZero()
}

// Time returns the underlying time.Time value.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// Before reports whether ts is strictly earlier than other at full
// nanosecond precision.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.t.Before(other.t)
}

// After reports whether ts is strictly later than other at full
// nanosecond precision.
func (ts Timestamp) After(other Timestamp) bool {
	return ts.t.After(other.t)
}

// Equal reports whether ts and other name the same instant at full
// nanosecond precision.
func (ts Timestamp) Equal(other Timestamp) bool {
	return ts.t.Equal(other.t)
}

// AsMillis truncates the timestamp to millisecond precision and
// returns it as a Unix millisecond count. Two timestamps "match at low
// precision" iff AsMillis agrees for both.
func (ts Timestamp) AsMillis() int64 {
	return ts.t.UnixMilli()
}

// SameLowPrecision reports whether ts and other agree once both are
// truncated to millisecond precision.
func (ts Timestamp) SameLowPrecision(other Timestamp) bool {
	return ts.AsMillis() == other.AsMillis()
}

// BeforeLowPrecision reports whether ts is strictly earlier than other
// once both are truncated to millisecond precision.
func (ts Timestamp) BeforeLowPrecision(other Timestamp) bool {
	return ts.AsMillis() < other.AsMillis()
}

// AfterLowPrecision reports whether ts is strictly later than other
// once both are truncated to millisecond precision.
func (ts Timestamp) AfterLowPrecision(other Timestamp) bool {
	return ts.AsMillis() > other.AsMillis()
}

// ToChtimesArgs returns the (atime, mtime) pair to pass to os.Chtimes
// in order to set a file's modification time to ts. Access time is set
// equal to modification time; nothing in this system reads atime.
func (ts Timestamp) ToChtimesArgs() (atime, mtime time.Time) {
	return ts.t, ts.t
}

// FormatHuman renders the timestamp the way run diagnostics should
// print it: full precision, including the offset, so a user comparing
// two nearly-identical timestamps can see exactly where they diverge.
func (ts Timestamp) FormatHuman() string {
	return ts.t.Format("2006-01-02 15:04:05.000000000 -0700")
}

func (ts Timestamp) String() string {
	return ts.FormatHuman()
}

// MtimeState is a tagged value distinguishing "file does not exist"
// from "file exists with this modification time", so a missing target
// is never confused with an I/O failure while stat-ing it.
type MtimeState struct {
	present bool
	ts      Timestamp
}

// Absent is the MtimeState of a file that does not exist.
var Absent = MtimeState{}

// Present builds the MtimeState of a file that exists with timestamp ts.
func Present(ts Timestamp) MtimeState {
	return MtimeState{present: true, ts: ts}
}

// IsPresent reports whether the state represents an existing file.
func (m MtimeState) IsPresent() bool {
	return m.present
}

// Get returns the wrapped timestamp and true if the state is
// present; otherwise it returns the zero Timestamp and false.
func (m MtimeState) Get() (Timestamp, bool) {
	return m.ts, m.present
}

// ReadMtime stats path and reports its MtimeState. A nonexistent path
// yields Absent with a nil error; any other stat failure is returned
// as an error so callers can distinguish "doesn't exist yet" from
// "couldn't be checked".
func ReadMtime(path string) (MtimeState, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Absent, nil
		}
		return Absent, fmt.Errorf("reading modification time of %s: %w", path, err)
	}
	return Present(New(info.ModTime())), nil
}
