package wrecked

import (
	"strings"
	"testing"
)

// TestSerializeSingleStyleTransition verifies that two adjacent cells
// sharing a background colour produce exactly one \x1b[41m (red
// background) escape in the diff, not one per cell.
func TestSerializeSingleStyleTransition(t *testing.T) {
	red := Effects{Fg: ColorNone, Bg: Red}
	entries := []drawEntry{
		{Pos: Position{0, 0}, Cell: cell{Char: 'a', Effects: red}},
		{Pos: Position{1, 0}, Cell: cell{Char: 'b', Effects: red}},
	}

	out := serialize(entries)
	if n := strings.Count(out, "\x1b[41m"); n != 1 {
		t.Errorf("expected exactly one \\x1b[41m transition, got %d in %q", n, out)
	}
}

func TestSerializeEndsWithResetAndHome(t *testing.T) {
	entries := []drawEntry{
		{Pos: Position{0, 0}, Cell: cell{Char: 'a', Effects: NewEffects()}},
	}
	out := serialize(entries)
	if !strings.HasSuffix(out, "\x1b[0m\x1b[1;1H") {
		t.Errorf("expected trailing reset + home, got %q", out)
	}
}

func TestAppendColorNoneEmitsDefaultEscape(t *testing.T) {
	buf := appendColor(nil, ColorNone, false)
	if string(buf) != "\x1b[39m" {
		t.Errorf("expected default fg escape, got %q", string(buf))
	}
	buf = appendColor(nil, ColorNone, true)
	if string(buf) != "\x1b[49m" {
		t.Errorf("expected default bg escape, got %q", string(buf))
	}
}

func TestAppendColorBrightUsesHighIntensityCode(t *testing.T) {
	buf := appendColor(nil, BrightRed, false)
	if string(buf) != "\x1b[91m" {
		t.Errorf("expected bright red fg escape 91, got %q", string(buf))
	}
	buf = appendColor(nil, BrightRed, true)
	if string(buf) != "\x1b[101m" {
		t.Errorf("expected bright red bg escape 101, got %q", string(buf))
	}
}
