package utils

import (
	"math"
	"testing"
	"time"
)

func TestPresentableDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "0 m"},
		{7.6, "8 m"},
		{999.4, "999 m"},
		{1000, "1.0 km"},
		{1249, "1.2 km"},
		{15320, "15.3 km"},
		{-3, "0 m"},
		{math.NaN(), "0 m"},
	}
	for _, tt := range tests {
		if got := PresentableDistance(tt.meters); got != tt.want {
			t.Errorf("PresentableDistance(%v): expected %q, got %q", tt.meters, tt.want, got)
		}
	}
}

func TestIso8601FromFixSeconds(t *testing.T) {
	got := Iso8601FromFixSeconds(1700000000.25)
	if got != "2023-11-14T22:13:20.250Z" {
		t.Errorf("expected 2023-11-14T22:13:20.250Z, got %s", got)
	}
}

func TestSecondsFromDuration(t *testing.T) {
	d := 500 * time.Millisecond
	if SecondsFromDuration(d) != 0.5 {
		t.Errorf("expected 0.5, got %v", SecondsFromDuration(d))
	}
	if Ternary(true, "a", "b") != "a" || Ternary(false, 1, 2) != 2 {
		t.Errorf("Ternary returned the wrong branch")
	}
}
