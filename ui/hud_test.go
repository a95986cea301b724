package ui

import "testing"

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00s"},
		{1.239, "1.23s"},
		{12.5, "12.50s"},
	}
	for _, tt := range tests {
		if got := FormatSeconds(tt.in); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestHUDLines(t *testing.T) {
	lines := HUDData{Generation: 7, Best: 3.456, Speed: 2, Human: true}.Lines()

	want := map[string]string{
		"Generation": "7",
		"Best":       "3.45s",
		"Speed":      "2.0x",
		"Mode":       "human",
	}
	for _, line := range lines {
		if w, ok := want[line.Label]; ok && line.Value != w {
			t.Errorf("%s = %q, want %q", line.Label, line.Value, w)
		}
	}
}

func TestClampSpeed(t *testing.T) {
	if got := ClampSpeed(0.2, 1, 20); got != 1 {
		t.Errorf("ClampSpeed below range = %v, want 1", got)
	}
	if got := ClampSpeed(50, 1, 20); got != 20 {
		t.Errorf("ClampSpeed above range = %v, want 20", got)
	}
	if got := ClampSpeed(4.5, 1, 20); got != 4.5 {
		t.Errorf("ClampSpeed in range = %v, want 4.5", got)
	}
}
