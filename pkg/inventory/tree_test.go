package inventory

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestPosition(t *testing.T) {
	var tr Tree
	tr.SetPosition(orb.Point{134.5, -4.25})
	if tr.Longitude != 134.5 || tr.Latitude != -4.25 {
		t.Errorf("lon/lat = %v/%v, want 134.5/-4.25", tr.Longitude, tr.Latitude)
	}
	if got := tr.Position(); got != (orb.Point{134.5, -4.25}) {
		t.Errorf("Position() = %v", got)
	}
}

func TestTotalVolume(t *testing.T) {
	trees := []Tree{{VolumeM3: 1.25}, {VolumeM3: 0.5}, {VolumeM3: 2}}
	if got := TotalVolume(trees); got != 3.75 {
		t.Errorf("TotalVolume = %v, want 3.75", got)
	}
	if got := TotalVolume(nil); got != 0 {
		t.Errorf("TotalVolume(nil) = %v, want 0", got)
	}
}
