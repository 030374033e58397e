package wrecked

import "unicode/utf8"

// New constructs a Compositor: it prepares the terminal through adapter
// (raw mode, alternate screen, hidden cursor), queries its size, and
// creates the root rect (handle Root) sized to match. If the size query
// fails, the root is created at 0×0 and a subsequent FitToTerminal (or
// manual Resize) is expected to size it.
func New(adapter TerminalAdapter) (*Compositor, error) {
	c := newCompositor(adapter)

	token, err := adapter.Prepare()
	if err != nil {
		return nil, err
	}
	c.token = token

	if cols, rows, ok := adapter.QuerySize(); ok {
		root, _ := c.store.get(Root)
		root.resize(cols, rows)
	}

	return c, nil
}

// NewRect allocates a fresh rect, sized (0, 0) and enabled, and attaches
// it under parent.
func (c *Compositor) NewRect(parent Handle) (Handle, error) {
	h, _ := c.store.alloc()
	if err := c.Attach(h, parent); err != nil {
		return h, err
	}
	return h, nil
}

// NewOrphan allocates a fresh, unattached rect.
func (c *Compositor) NewOrphan() (Handle, error) {
	h, _ := c.store.alloc()
	if err := c.store.flagFull(h); err != nil {
		return h, err
	}
	return h, nil
}

// Attach detaches h from wherever it currently sits (a no-op if it has no
// parent) and appends it to p's children at position (0, 0). Attaching h
// to one of its own descendants is rejected with ErrCycle.
func (c *Compositor) Attach(h, p Handle) error {
	if _, err := c.store.get(h); err != nil {
		return err
	}
	if _, err := c.store.get(p); err != nil {
		return err
	}
	if h == p || c.store.isAncestor(h, p) {
		return cycleErr(h, p)
	}

	if err := c.Detach(h); err != nil {
		return err
	}

	r, _ := c.store.get(h)
	r.hasParent = true
	r.parent = p

	parent, _ := c.store.get(p)
	parent.addChild(h)

	if err := c.rebuildOccupancy(h); err != nil {
		return err
	}
	return c.store.flagFull(h)
}

// Detach removes h from its parent's children and occupancy. h remains
// in the store, reachable by handle, with its own subtree intact.
func (c *Compositor) Detach(h Handle) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if !r.hasParent {
		return nil
	}

	if err := c.store.flagParent(h); err != nil {
		return err
	}

	parent, err := c.store.get(r.parent)
	if err != nil {
		r.hasParent = false
		return nil
	}
	parent.removeChild(h)

	r.hasParent = false
	return nil
}

// DeleteRect detaches h and removes h and every transitive descendant
// from the store.
func (c *Compositor) DeleteRect(h Handle) error {
	if _, err := c.store.get(h); err != nil {
		return err
	}
	descendants := c.store.descendants(h)

	if err := c.Detach(h); err != nil {
		return err
	}

	for _, d := range descendants {
		c.store.remove(d)
	}
	c.store.remove(h)
	return nil
}

// Resize updates h's dimensions and, if attached, rebuilds its parent's
// occupancy of it at its current position. The parent is flagged across
// the union of h's old and new footprint, so cells a shrinking rect no
// longer covers still get recomposited.
func (c *Compositor) Resize(h Handle, w, hgt int) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}

	if r.hasParent {
		parent, err := c.store.parentOf(h)
		if err != nil {
			return err
		}
		pos := parent.positionOfChild[h]
		if err := c.store.flagParentBoxAt(h, pos.X, pos.Y); err != nil {
			return err
		}
	}

	r.resize(w, hgt)

	if r.hasParent {
		if err := c.rebuildOccupancy(h); err != nil {
			return err
		}
	}

	return c.store.flagFull(h)
}

// SetPosition moves h within its parent's coordinate system. A no-op if
// the position is unchanged. Flags the union of h's old and new
// footprint on the parent (and further ancestors).
func (c *Compositor) SetPosition(h Handle, x, y int) error {
	parent, err := c.store.parentOf(h)
	if err == ErrNoParent {
		return nil
	}
	if err != nil {
		return err
	}

	old := parent.positionOfChild[h]
	if old.X == x && old.Y == y {
		return nil
	}

	if err := c.store.flagParentBoxAt(h, old.X, old.Y); err != nil {
		return err
	}

	parent.positionOfChild[h] = Position{x, y}

	if err := c.rebuildOccupancy(h); err != nil {
		return err
	}
	return c.store.flagParentBoxAt(h, x, y)
}

// ShiftContents adds (dx, dy) to the position of every child of h and
// rebuilds their occupancy.
func (c *Compositor) ShiftContents(h Handle, dx, dy int) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	for _, child := range r.children {
		pos := r.positionOfChild[child]
		r.positionOfChild[child] = Position{pos.X + dx, pos.Y + dy}
	}
	for _, child := range r.children {
		if err := c.rebuildOccupancy(child); err != nil {
			return err
		}
	}
	return c.store.flagFull(h)
}

// ShiftContentsInBox is ShiftContents restricted to children whose
// current position lies within box.
func (c *Compositor) ShiftContentsInBox(h Handle, dx, dy int, box Box) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	var affected []Handle
	for _, child := range r.children {
		pos := r.positionOfChild[child]
		if box.contains(pos.X, pos.Y) {
			r.positionOfChild[child] = Position{pos.X + dx, pos.Y + dy}
			affected = append(affected, child)
		}
	}
	for _, child := range affected {
		if err := c.rebuildOccupancy(child); err != nil {
			return err
		}
	}
	return c.store.flagFull(h)
}

// ReplaceWith detaches old, attaches new at old's former position and
// parent, placing it as the last child (so it paints on top).
func (c *Compositor) ReplaceWith(old, next Handle) error {
	parent, err := c.store.parentOf(old)
	if err != nil {
		return err
	}
	parentHandle := parent.handle
	pos := parent.positionOfChild[old]

	if err := c.Detach(old); err != nil {
		return err
	}
	if err := c.Attach(next, parentHandle); err != nil {
		return err
	}
	return c.SetPosition(next, pos.X, pos.Y)
}

// SetCharacter writes a single rune at (x, y), bounds-checked against h's
// own grid.
func (c *Compositor) SetCharacter(h Handle, x, y int, ch rune) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if err := r.setCharacter(x, y, ch); err != nil {
		return err
	}
	return c.store.flagPosition(h, x, y)
}

// UnsetCharacter resets the cell at (x, y) back to the default character.
func (c *Compositor) UnsetCharacter(h Handle, x, y int) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if err := r.unsetCharacter(x, y); err != nil {
		return err
	}
	return c.store.flagPosition(h, x, y)
}

// SetString lays text out left-to-right starting at (startX, startY),
// wrapping at h's width. A character that lands at or past the bottom
// edge is silently dropped rather than erroring — StringTooLong is
// never produced by this path.
func (c *Compositor) SetString(h Handle, startX, startY int, s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidUTF8
	}

	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if r.width == 0 {
		return nil
	}

	i := startY*r.width + startX
	for _, ch := range s {
		x := i % r.width
		y := i / r.width
		if x < 0 {
			x += r.width
			y--
		}
		if y >= 0 && y < r.height {
			r.setCharacter(x, y, ch)
			c.store.flagPosition(h, x, y)
		}
		i++
	}
	return nil
}

// ClearCharacters drops every grid entry in h.
func (c *Compositor) ClearCharacters(h Handle) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	r.clear()
	return c.store.flagFull(h)
}

// ClearChildren detaches and deletes every child of h.
func (c *Compositor) ClearChildren(h Handle) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	children := append([]Handle(nil), r.children...)
	for _, child := range children {
		if err := c.DeleteRect(child); err != nil {
			return err
		}
	}
	return c.store.flagFull(h)
}

// Enable re-activates a disabled rect and rebuilds its parent's occupancy
// of it.
func (c *Compositor) Enable(h Handle) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if r.enabled {
		return nil
	}
	r.enabled = true

	if r.hasParent {
		if err := c.rebuildOccupancy(h); err != nil {
			return err
		}
	}
	return c.store.flagFull(h)
}

// Disable deactivates h: it contributes nothing to composition and
// occludes nothing. Descendants still exist.
func (c *Compositor) Disable(h Handle) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if !r.enabled {
		return nil
	}
	r.enabled = false

	if r.hasParent {
		if err := c.store.flagParent(h); err != nil {
			return err
		}
		parent, _ := c.store.get(r.parent)
		parent.clearOccupancyOf(h)
	}
	return nil
}

// SetBold, SetUnderline, SetInvert, SetItalics and SetStrike set the
// corresponding style flag, flagging a full refresh on h only if the
// value actually changed.

func (c *Compositor) SetBold(h Handle, v bool) error    { return c.applyFlag(h, (*rect).setBold, v) }
func (c *Compositor) SetUnderline(h Handle, v bool) error {
	return c.applyFlag(h, (*rect).setUnderline, v)
}
func (c *Compositor) SetInvert(h Handle, v bool) error  { return c.applyFlag(h, (*rect).setInvert, v) }
func (c *Compositor) SetItalics(h Handle, v bool) error { return c.applyFlag(h, (*rect).setItalics, v) }
func (c *Compositor) SetStrike(h Handle, v bool) error  { return c.applyFlag(h, (*rect).setStrike, v) }

func (c *Compositor) applyFlag(h Handle, set func(*rect, bool) bool, v bool) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if set(r, v) {
		return c.store.flagFull(h)
	}
	return nil
}

// SetFgColor and SetBgColor set h's foreground/background colour,
// validating that color is one of the 16 palette entries or ColorNone.
func (c *Compositor) SetFgColor(h Handle, color Color) error {
	if !ValidColor(color) {
		return ErrBadColor
	}
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if r.setFgColor(color) {
		return c.store.flagFull(h)
	}
	return nil
}

func (c *Compositor) SetBgColor(h Handle, color Color) error {
	if !ValidColor(color) {
		return ErrBadColor
	}
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if r.setBgColor(color) {
		return c.store.flagFull(h)
	}
	return nil
}

func (c *Compositor) UnsetFgColor(h Handle) error { return c.SetFgColor(h, ColorNone) }
func (c *Compositor) UnsetBgColor(h Handle) error { return c.SetBgColor(h, ColorNone) }
func (c *Compositor) UnsetColor(h Handle) error {
	if err := c.UnsetFgColor(h); err != nil {
		return err
	}
	return c.UnsetBgColor(h)
}

// Size returns h's current (width, height).
func (c *Compositor) Size(h Handle) (int, int, error) {
	r, err := c.store.get(h)
	if err != nil {
		return 0, 0, err
	}
	return r.width, r.height, nil
}

// RootSize returns the root rect's current (width, height).
func (c *Compositor) RootSize() (int, int, error) {
	return c.Size(Root)
}

// Position returns h's (x, y) within its parent. A root or orphan has no
// parent-relative position and reports ErrNoParent.
func (c *Compositor) Position(h Handle) (int, int, error) {
	pos, err := c.store.relativeOffset(h)
	if err != nil {
		return 0, 0, err
	}
	return pos.X, pos.Y, nil
}

// GetRank reports h's index among its parent's children — 0 is drawn
// first (bottom), len-1 last (top). ErrChildNotFound surfaces the
// invariant violation of a parent whose children list doesn't actually
// contain h.
func (c *Compositor) GetRank(h Handle) (int, error) {
	parent, err := c.store.parentOf(h)
	if err != nil {
		return 0, err
	}
	rank, ok := parent.rankOf(h)
	if !ok {
		return 0, childNotFoundErr(parent.handle, h)
	}
	return rank, nil
}

// FitToTerminal queries the terminal's current size and resizes the root
// if it differs. A failed size query is treated as "no resize happened"
// rather than an error.
func (c *Compositor) FitToTerminal() (bool, error) {
	cols, rows, ok := c.adapter.QuerySize()
	if !ok {
		return false, nil
	}

	w, h, err := c.RootSize()
	if err != nil {
		return false, err
	}
	if w == cols && h == rows {
		return false, nil
	}

	if err := c.Resize(Root, cols, rows); err != nil {
		return false, err
	}
	return true, nil
}

// Kill empties the root, overwrites it with spaces, renders the clear
// frame, and tears down the terminal via the adapter. Adapter teardown is
// attempted even if rendering the clear frame fails.
func (c *Compositor) Kill() error {
	renderErr := c.killRenderClearFrame()

	restoreErr := c.adapter.Restore(c.token)
	if renderErr != nil {
		return renderErr
	}
	return restoreErr
}

func (c *Compositor) killRenderClearFrame() error {
	if err := c.ClearChildren(Root); err != nil {
		return err
	}
	root, err := c.store.get(Root)
	if err != nil {
		return err
	}
	root.clear()
	if err := c.store.flagFull(Root); err != nil {
		return err
	}
	return c.RenderRoot()
}

// rebuildOccupancy recomputes child's clipped footprint within its
// parent, from its current position and size.
func (c *Compositor) rebuildOccupancy(child Handle) error {
	r, err := c.store.get(child)
	if err != nil {
		return err
	}
	parent, err := c.store.parentOf(child)
	if err == ErrNoParent {
		return nil
	}
	if err != nil {
		return err
	}

	pos := parent.positionOfChild[child]
	if r.enabled {
		parent.setOccupancyOf(child, Box{pos.X, pos.Y, r.width, r.height})
	} else {
		parent.clearOccupancyOf(child)
	}

	return c.store.flagParent(child)
}
