package wrecked

import "testing"

func TestValidColor(t *testing.T) {
	if !ValidColor(ColorNone) {
		t.Errorf("ColorNone should be valid")
	}
	if !ValidColor(White) {
		t.Errorf("White should be valid")
	}
	if ValidColor(Color(16)) {
		t.Errorf("16 is outside the palette and should be invalid")
	}
	if ValidColor(Color(-2)) {
		t.Errorf("-2 is neither ColorNone nor in the palette")
	}
}

func TestEffectsIsEmpty(t *testing.T) {
	e := NewEffects()
	if !e.IsEmpty() {
		t.Errorf("a fresh Effects record should be empty")
	}
	e.Bold = true
	if e.IsEmpty() {
		t.Errorf("Bold=true should make IsEmpty false")
	}
}
