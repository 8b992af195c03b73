package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{in: 0, want: "0:00"},
		{in: 59 * time.Second, want: "0:59"},
		{in: 61 * time.Second, want: "1:01"},
		{in: 10*time.Minute + 5*time.Second, want: "10:05"},
		{in: -3 * time.Second, want: "0:00"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.in); got != tc.want {
			t.Fatalf("FormatDuration(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{in: 0, want: "0:00"},
		{in: 185, want: "3:05"},
		{in: -1, want: "—"},
	}
	for _, tc := range cases {
		if got := FormatSeconds(tc.in); got != tc.want {
			t.Fatalf("FormatSeconds(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPad2(t *testing.T) {
	if got := Pad2(3); got != "03" {
		t.Fatalf("Pad2(3) = %q", got)
	}
	if got := Pad2(12); got != "12" {
		t.Fatalf("Pad2(12) = %q", got)
	}
}
