package canvas

import (
	"testing"
)

func TestFitText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		width    int
		expected string
	}{
		{"fits", "Stress", 10, "Stress"},
		{"exact", "Stress", 6, "Stress"},
		{"truncated", "Wellbeing", 5, "Well…"},
		{"wide runes", "睡眠質量", 5, "睡眠…"},
		{"zero width", "Mood", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitText(tt.text, tt.width); got != tt.expected {
				t.Errorf("FitText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.expected)
			}
		})
	}
}

func TestCenterOffset(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  int
	}{
		{"Mood", 10, 3},
		{"Mood", 9, 2},
		{"睡眠", 8, 2},
		{"Anxiety", 3, 0},
	}

	for _, tt := range tests {
		if got := CenterOffset(tt.text, tt.width); got != tt.want {
			t.Errorf("CenterOffset(%q, %d) = %d, want %d", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestStringWidth(t *testing.T) {
	if got := StringWidth("A睡"); got != 3 {
		t.Errorf("StringWidth = %d, want 3", got)
	}
	if got := RuneWidth('x'); got != 1 {
		t.Errorf("RuneWidth('x') = %d, want 1", got)
	}
}
