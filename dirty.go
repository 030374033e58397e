package wrecked

// flagFull marks h for a full recomposition and propagates h's entire
// footprint upward: every ancestor gets the overlap between h's box and
// its own bounds added to its dirtyPositions, translated into that
// ancestor's coordinate frame. The ancestors themselves are not marked
// full_refresh — only the specific cells covering h are, so recompose can
// recurse into h without re-doing unrelated parts of the ancestor.
func (s *store) flagFull(h Handle) error {
	r, err := s.get(h)
	if err != nil {
		return err
	}
	r.fullRefresh = true
	return s.flagOwnFootprintUpward(h, Box{0, 0, r.width, r.height})
}

// flagPosition adds a single cell to h's own dirtyPositions and
// propagates that one cell upward the same way flagFull propagates a
// whole footprint.
func (s *store) flagPosition(h Handle, x, y int) error {
	r, err := s.get(h)
	if err != nil {
		return err
	}
	r.dirtyPositions[Position{x, y}] = struct{}{}
	return s.flagOwnFootprintUpward(h, Box{x, y, 1, 1})
}

// flagOwnFootprintUpward translates box (given in h's own coordinates)
// into h's parent's coordinates using h's *current* position and
// continues propagating from there. Used when the caller wants "wherever
// h is right now".
func (s *store) flagOwnFootprintUpward(h Handle, box Box) error {
	parent, err := s.parentOf(h)
	if err == ErrNoParent {
		return nil
	}
	if err != nil {
		return err
	}
	rel := parent.positionOfChild[h]
	return s.propagateBox(parent.handle, Box{box.X + rel.X, box.Y + rel.Y, box.W, box.H})
}

// propagateBox marks box (already expressed in parentHandle's own
// coordinate system) dirty on parentHandle, clipped to its bounds, then
// keeps walking upward, translating by each further ancestor's relative
// offset.
func (s *store) propagateBox(parentHandle Handle, box Box) error {
	current := parentHandle
	for {
		r, err := s.get(current)
		if err != nil {
			return err
		}

		for y := box.Y; y < box.Y+box.H; y++ {
			for x := box.X; x < box.X+box.W; x++ {
				if x < 0 || x >= r.width || y < 0 || y >= r.height {
					continue
				}
				r.dirtyPositions[Position{x, y}] = struct{}{}
			}
		}

		parent, err := s.parentOf(current)
		if err == ErrNoParent {
			return nil
		}
		if err != nil {
			return err
		}
		rel := parent.positionOfChild[current]
		box = Box{box.X + rel.X, box.Y + rel.Y, box.W, box.H}
		current = parent.handle
	}
}

// flagParent flags the portion of h's parent (and further ancestors)
// currently covered by h's own box — used by mutators that change how h
// sits in its parent without touching h's own pixels (enable/disable,
// occupancy rebuilds).
func (s *store) flagParent(h Handle) error {
	r, err := s.get(h)
	if err != nil {
		return err
	}
	return s.flagOwnFootprintUpward(h, Box{0, 0, r.width, r.height})
}

// flagParentBoxAt flags, in h's parent and further ancestors, the box h
// would occupy if it sat at (x, y) with its current dimensions — used by
// set_position to flag both h's old and new footprint.
func (s *store) flagParentBoxAt(h Handle, x, y int) error {
	r, err := s.get(h)
	if err != nil {
		return err
	}
	parent, err := s.parentOf(h)
	if err == ErrNoParent {
		return nil
	}
	if err != nil {
		return err
	}
	return s.propagateBox(parent.handle, Box{x, y, r.width, r.height})
}
