package wrecked

import "testing"

// buildTree wires root -> mid -> leaf with fixed sizes/positions, the
// shape used by TestVisibleBoxClipsAtAncestor.
func buildTree(s *store) (root, mid, leaf Handle) {
	root, rootRect := s.alloc()
	rootRect.resize(20, 20)

	mid, midRect := s.alloc()
	midRect.resize(8, 8)
	midRect.hasParent = true
	midRect.parent = root
	rootRect.addChild(mid)
	rootRect.positionOfChild[mid] = Position{5, 5}

	leaf, leafRect := s.alloc()
	leafRect.resize(10, 10)
	leafRect.hasParent = true
	leafRect.parent = mid
	midRect.addChild(leaf)
	midRect.positionOfChild[leaf] = Position{2, 2}

	return root, mid, leaf
}

func TestAbsoluteOffset(t *testing.T) {
	s := newStore()
	_, _, leaf := buildTree(s)

	off, err := s.absoluteOffset(leaf)
	if err != nil {
		t.Fatalf("absoluteOffset: %v", err)
	}
	if off.X != 7 || off.Y != 7 {
		t.Errorf("expected (7,7), got (%d,%d)", off.X, off.Y)
	}
}

// TestVisibleBoxClipsAtAncestor verifies that a leaf bigger than its
// parent and sitting near the parent's edge gets its visible box clipped
// to the parent's bounds, even though the leaf's own box would extend
// past them.
func TestVisibleBoxClipsAtAncestor(t *testing.T) {
	s := newStore()
	_, _, leaf := buildTree(s)

	box, err := s.visibleBox(leaf)
	if err != nil {
		t.Fatalf("visibleBox: %v", err)
	}

	// leaf's raw box would be (7,7,10,10) i.e. x in [7,17), y in [7,17).
	// mid's absolute box is (5,5,8,8) i.e. x in [5,13), y in [5,13).
	// Intersection: x in [7,13), y in [7,13).
	if box.X != 7 || box.Y != 7 || box.W != 6 || box.H != 6 {
		t.Errorf("expected clipped box {7 7 6 6}, got %+v", box)
	}
}

func TestVisibleBoxFullyClippedOut(t *testing.T) {
	s := newStore()
	root, rootRect := s.alloc()
	rootRect.resize(10, 10)

	child, childRect := s.alloc()
	childRect.resize(5, 5)
	childRect.hasParent = true
	childRect.parent = root
	rootRect.addChild(child)
	rootRect.positionOfChild[child] = Position{20, 20}

	box, err := s.visibleBox(child)
	if err != nil {
		t.Fatalf("visibleBox: %v", err)
	}
	if box.W != 0 || box.H != 0 {
		t.Errorf("a rect entirely outside its parent should have a zero-area visible box, got %+v", box)
	}
}
