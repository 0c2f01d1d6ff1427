package core

import (
	"testing"
	"time"
)

func TestCleanString(t *testing.T) {
	if got := CleanString("  Alice \n"); got != "Alice" {
		t.Errorf("CleanString() = %q, want %q", got, "Alice")
	}
	if got := CleanString("  Alice ", true); got != "alice" {
		t.Errorf("CleanString(lower) = %q, want %q", got, "alice")
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2021-06-15 12:30:45", TimestampFormat)
	if err != nil {
		t.Fatalf("ParseTimestamp() failed: %v", err)
	}
	want := time.Date(2021, 6, 15, 12, 30, 45, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseTimestamp() = %v, want %v", got, want)
	}

	// first matching layout wins
	got, err = ParseTimestamp("2021-06-15 12:30", TimestampFormat, "2006-01-02 15:04")
	if err != nil {
		t.Fatalf("ParseTimestamp() failed: %v", err)
	}
	if !got.Equal(time.Date(2021, 6, 15, 12, 30, 0, 0, time.Local)) {
		t.Errorf("ParseTimestamp() = %v", got)
	}

	if _, err = ParseTimestamp("nope", TimestampFormat); err == nil {
		t.Error("ParseTimestamp() accepted garbage")
	}
}

func TestDateOf(t *testing.T) {
	in := time.Date(2021, 6, 15, 23, 59, 59, 1e8, time.Local)
	want := time.Date(2021, 6, 15, 0, 0, 0, 0, time.Local)
	if got := DateOf(in); !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}
}
