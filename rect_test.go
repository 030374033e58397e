package wrecked

import (
	"errors"
	"testing"
)

func TestRectSetGetCharacter(t *testing.T) {
	r := newRect(1)
	r.resize(5, 5)

	if ch, _ := r.getCharacter(2, 2); ch != defaultChar {
		t.Errorf("unset cell should read as defaultChar, got %q", ch)
	}

	if err := r.setCharacter(2, 2, 'x'); err != nil {
		t.Fatalf("setCharacter: %v", err)
	}
	if ch, _ := r.getCharacter(2, 2); ch != 'x' {
		t.Errorf("expected 'x', got %q", ch)
	}
	if _, ok := r.dirtyPositions[Position{2, 2}]; !ok {
		t.Errorf("setCharacter should flag its own position dirty")
	}
}

func TestRectSetCharacterOutOfBounds(t *testing.T) {
	r := newRect(1)
	r.resize(3, 3)
	if err := r.setCharacter(3, 0, 'x'); !errors.Is(err, ErrBadPosition) {
		t.Errorf("expected ErrBadPosition, got %v", err)
	}
}

func TestRectOccupancyStack(t *testing.T) {
	r := newRect(1)
	r.resize(10, 10)

	r.addChild(2)
	r.addChild(3)

	r.setOccupancyOf(2, Box{X: 0, Y: 0, W: 4, H: 4})
	r.setOccupancyOf(3, Box{X: 2, Y: 2, W: 4, H: 4})

	stack := r.childOccupancy[Position{3, 3}]
	if len(stack) != 2 || stack[0] != 2 || stack[1] != 3 {
		t.Fatalf("expected occupancy stack [2,3] at (3,3), got %v", stack)
	}

	cleared := r.clearOccupancyOf(3)
	if len(cleared) != 16 {
		t.Errorf("expected 16 cleared positions for a 4x4 footprint, got %d", len(cleared))
	}
	if stack := r.childOccupancy[Position{3, 3}]; len(stack) != 1 || stack[0] != 2 {
		t.Errorf("expected only 2 left at (3,3), got %v", stack)
	}
}

func TestRectRemoveChild(t *testing.T) {
	r := newRect(1)
	r.resize(10, 10)
	r.addChild(2)
	r.addChild(3)

	r.removeChild(2)
	if r.hasChild(2) {
		t.Errorf("child 2 should be gone")
	}
	if !r.hasChild(3) {
		t.Errorf("child 3 should remain")
	}
	if _, ok := r.positionOfChild[2]; ok {
		t.Errorf("positionOfChild should be cleaned up for removed child")
	}
}
