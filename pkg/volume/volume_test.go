package volume

import "testing"

func TestTree(t *testing.T) {
	tests := []struct {
		d, h int
		want float64
	}{
		{45, 13, 1.24},
		{47, 13, 1.35},
		{20, 9, 0.17},
		{40, 11, 0.83},
		{49, 15, 1.70},
		{100, 17, 8.01},
		{200, 23, 43.35},
	}
	for _, tt := range tests {
		if got := Tree(tt.d, tt.h); got != tt.want {
			t.Errorf("Tree(%d, %d) = %v, want %v", tt.d, tt.h, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(1.2405393); got != 1.24 {
		t.Errorf("Round2(1.2405393) = %v, want 1.24", got)
	}
	if got := Round2(0.125); got != 0.13 {
		t.Errorf("Round2(0.125) = %v, want 0.13", got)
	}
}
