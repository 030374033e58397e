package wrecked

// relativeOffset returns the (x, y) h's parent assigns it, or ErrNoParent
// if h is a root.
func (s *store) relativeOffset(h Handle) (Position, error) {
	parent, err := s.parentOf(h)
	if err != nil {
		return Position{}, err
	}
	return parent.positionOfChild[h], nil
}

// absoluteOffset sums relative offsets from h up to the root. The root's
// absolute offset is always (0, 0).
func (s *store) absoluteOffset(h Handle) (Position, error) {
	var out Position
	current := h
	for {
		parent, err := s.parentOf(current)
		if err == ErrNoParent {
			return out, nil
		}
		if err != nil {
			return Position{}, err
		}
		pos := parent.positionOfChild[current]
		out.X += pos.X
		out.Y += pos.Y
		current = parent.handle
	}
}

// visibleBox returns h's own rectangle, in absolute coordinates, clipped
// to the rectangle of every ancestor. W or H may be 0 if h is fully
// clipped out.
func (s *store) visibleBox(h Handle) (Box, error) {
	r, err := s.get(h)
	if err != nil {
		return Box{}, err
	}
	offset, err := s.absoluteOffset(h)
	if err != nil {
		return Box{}, err
	}

	box := Box{X: offset.X, Y: offset.Y, W: r.width, H: r.height}

	working := h
	for {
		parent, err := s.parentOf(working)
		if err == ErrNoParent {
			break
		}
		if err != nil {
			return Box{}, err
		}

		parentOffset, err := s.absoluteOffset(parent.handle)
		if err != nil {
			return Box{}, err
		}

		if parentOffset.X > box.X {
			box.W -= parentOffset.X - box.X
			box.X = parentOffset.X
		}
		if parentOffset.Y > box.Y {
			box.H -= parentOffset.Y - box.Y
			box.Y = parentOffset.Y
		}
		box.W = min(box.W, (parentOffset.X+parent.width)-box.X)
		box.H = min(box.H, (parentOffset.Y+parent.height)-box.Y)

		working = parent.handle
	}

	if box.W < 0 {
		box.W = 0
	}
	if box.H < 0 {
		box.H = 0
	}
	return box, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// contains reports whether (x, y) lies within b.
func (b Box) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}
