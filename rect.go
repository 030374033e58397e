package wrecked

// Handle is a monotonically increasing rect identifier, counted per
// Compositor. Handle 0 is always the root rect created when a Compositor
// is built;
// handles are never reused within one Compositor's lifetime.
type Handle uint64

// Position is a signed offset or absolute screen coordinate, depending on
// context (relative to a rect's parent, or absolute on screen).
type Position struct {
	X, Y int
}

// Box is an axis-aligned rectangle: (X, Y) is the top-left corner and
// W, H its size. Whether the coordinates are absolute on screen or
// relative to a rect depends on context.
type Box struct {
	X, Y, W, H int
}

// cell is a resolved (character, effects) pair, the unit stored in a
// rect's composited cache and in the compositor's top cache.
type cell struct {
	Char    rune
	Effects Effects
}

const defaultChar = ' '

// rect is one node in the compositor's tree. The store exclusively owns
// rects; everything that refers to another rect does so by Handle, never
// by pointer, so the tree can never hold a reference cycle.
type rect struct {
	handle Handle

	hasParent bool
	parent    Handle

	children []Handle

	width, height int

	positionOfChild map[Handle]Position

	// characterGrid is sparse: an absent (x, y) reads as defaultChar.
	characterGrid map[Position]rune

	effects Effects
	enabled bool

	// childOccupancy maps a cell this rect owns to the ordered stack of
	// children whose clipped footprint covers it; the last entry is the
	// visible (topmost) occupant. inverseOccupancy is its mirror, used to
	// clear a child's footprint in O(footprint) instead of O(area).
	childOccupancy   map[Position][]Handle
	inverseOccupancy map[Handle][]Position

	fullRefresh    bool
	dirtyPositions map[Position]struct{}

	cache map[Position]cell
}

func newRect(h Handle) *rect {
	return &rect{
		handle:           h,
		children:         nil,
		width:            0,
		height:           0,
		positionOfChild:  make(map[Handle]Position),
		characterGrid:    make(map[Position]rune),
		effects:          NewEffects(),
		enabled:          true,
		childOccupancy:   make(map[Position][]Handle),
		inverseOccupancy: make(map[Handle][]Position),
		fullRefresh:      true,
		dirtyPositions:   make(map[Position]struct{}),
		cache:            make(map[Position]cell),
	}
}

func (r *rect) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// getCharacter reads the cell at (x, y), or defaultChar if unset.
func (r *rect) getCharacter(x, y int) (rune, error) {
	if !r.inBounds(x, y) {
		return 0, badPositionErr(r.handle, x, y)
	}
	if c, ok := r.characterGrid[Position{x, y}]; ok {
		return c, nil
	}
	return defaultChar, nil
}

// setCharacter is a pure local mutator: bounds-checked, flags its own
// dirtyPositions, has no effect on ancestors or children.
func (r *rect) setCharacter(x, y int, c rune) error {
	if !r.inBounds(x, y) {
		return badPositionErr(r.handle, x, y)
	}
	r.characterGrid[Position{x, y}] = c
	r.dirtyPositions[Position{x, y}] = struct{}{}
	return nil
}

func (r *rect) unsetCharacter(x, y int) error {
	if !r.inBounds(x, y) {
		return badPositionErr(r.handle, x, y)
	}
	delete(r.characterGrid, Position{x, y})
	r.dirtyPositions[Position{x, y}] = struct{}{}
	return nil
}

// clear drops every grid entry. Full refresh is flagged by the caller
// (the front-end).
func (r *rect) clear() {
	r.characterGrid = make(map[Position]rune)
}

// resize replaces (w, h) without touching the grid; entries that fall
// outside the new bounds are retained but unreferenced during render.
func (r *rect) resize(w, h int) {
	r.width = w
	r.height = h
}

// Each setBold/setUnderline/... sets exactly one field and reports
// whether it actually changed — the caller uses that to decide whether
// to flag a full refresh and propagate it to ancestors.

func (r *rect) setBold(v bool) bool {
	changed := r.effects.Bold != v
	r.effects.Bold = v
	return changed
}

func (r *rect) setUnderline(v bool) bool {
	changed := r.effects.Underline != v
	r.effects.Underline = v
	return changed
}

func (r *rect) setInvert(v bool) bool {
	changed := r.effects.Invert != v
	r.effects.Invert = v
	return changed
}

func (r *rect) setItalics(v bool) bool {
	changed := r.effects.Italics != v
	r.effects.Italics = v
	return changed
}

func (r *rect) setStrike(v bool) bool {
	changed := r.effects.Strike != v
	r.effects.Strike = v
	return changed
}

func (r *rect) setFgColor(c Color) bool {
	changed := r.effects.Fg != c
	r.effects.Fg = c
	return changed
}

func (r *rect) setBgColor(c Color) bool {
	changed := r.effects.Bg != c
	r.effects.Bg = c
	return changed
}

func (r *rect) hasChild(h Handle) bool {
	for _, c := range r.children {
		if c == h {
			return true
		}
	}
	return false
}

func (r *rect) rankOf(h Handle) (int, bool) {
	for i, c := range r.children {
		if c == h {
			return i, true
		}
	}
	return 0, false
}

// addChild appends h to the child list (last-drawn-wins paint order) and
// gives it an initial (0, 0) position.
func (r *rect) addChild(h Handle) {
	r.children = append(r.children, h)
	r.inverseOccupancy[h] = nil
	if _, ok := r.positionOfChild[h]; !ok {
		r.positionOfChild[h] = Position{}
	}
}

// removeChild drops h from the child list and all occupancy bookkeeping
// for it. Returns the footprint it used to occupy, so the caller can
// flag those positions dirty.
func (r *rect) removeChild(h Handle) []Position {
	footprint := r.clearOccupancyOf(h)

	delete(r.positionOfChild, h)
	delete(r.inverseOccupancy, h)

	kept := r.children[:0:0]
	for _, c := range r.children {
		if c != h {
			kept = append(kept, c)
		}
	}
	r.children = kept
	return footprint
}

// clearOccupancyOf removes every cell h currently occupies from
// childOccupancy, returning the list of cleared positions.
func (r *rect) clearOccupancyOf(h Handle) []Position {
	old := r.inverseOccupancy[h]
	for _, p := range old {
		stack := r.childOccupancy[p]
		filtered := stack[:0:0]
		for _, c := range stack {
			if c != h {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) == 0 {
			delete(r.childOccupancy, p)
		} else {
			r.childOccupancy[p] = filtered
		}
	}
	r.inverseOccupancy[h] = nil
	return old
}

// setOccupancyOf rebuilds h's footprint (its clipped box within r) from
// scratch: clear the old one, then insert h into the occupancy stack of
// every covered cell, keeping each stack in child-list order so the
// later sibling stays on top. Cells of box outside r's own bounds are
// skipped.
func (r *rect) setOccupancyOf(h Handle, box Box) []Position {
	r.clearOccupancyOf(h)
	rank, _ := r.rankOf(h)

	positions := make([]Position, 0, box.W*box.H)
	for y := box.Y; y < box.Y+box.H; y++ {
		for x := box.X; x < box.X+box.W; x++ {
			if x < 0 || x >= r.width || y < 0 || y >= r.height {
				continue
			}
			p := Position{x, y}
			stack := r.childOccupancy[p]
			i := len(stack)
			for i > 0 {
				if other, _ := r.rankOf(stack[i-1]); other <= rank {
					break
				}
				i--
			}
			stack = append(stack, 0)
			copy(stack[i+1:], stack[i:])
			stack[i] = h
			r.childOccupancy[p] = stack
			positions = append(positions, p)
		}
	}
	r.inverseOccupancy[h] = positions
	return positions
}
