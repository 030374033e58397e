package wrecked

import "sort"

// Compositor is the single owner of a rect tree: store, its own
// top cache, and the terminal it draws to. It is not safe for concurrent
// use — every public operation is expected to run to completion on one
// goroutine before the next begins.
type Compositor struct {
	store *store

	// topCache records what is currently believed to be on screen, so
	// Render only ever emits the cells that actually changed.
	topCache map[Position]cell

	drawQueue []Handle

	adapter TerminalAdapter
	token   PrepareToken

	defaultChar rune
}

// Root is the handle of the rect created implicitly at construction.
const Root Handle = 0

func newCompositor(adapter TerminalAdapter) *Compositor {
	c := &Compositor{
		store:       newStore(),
		topCache:    make(map[Position]cell),
		adapter:     adapter,
		defaultChar: defaultChar,
	}
	h, r := c.store.alloc()
	r.width, r.height = 0, 0
	_ = h // always 0 == Root
	return c
}

// recompose idempotently updates h's cache. It is a bottom-up resolution
// of occlusion between siblings and ancestors that stops descending as
// soon as it hits cells that weren't flagged dirty.
func (c *Compositor) recompose(h Handle) error {
	r, err := c.store.get(h)
	if err != nil {
		return err
	}
	if !r.enabled {
		return nil
	}

	var work map[Position]struct{}
	if r.fullRefresh {
		work = make(map[Position]struct{}, r.width*r.height)
		for y := 0; y < r.height; y++ {
			for x := 0; x < r.width; x++ {
				work[Position{x, y}] = struct{}{}
			}
		}
		r.fullRefresh = false
		r.dirtyPositions = make(map[Position]struct{})
	} else {
		work = r.dirtyPositions
		r.dirtyPositions = make(map[Position]struct{})
	}

	// Children whose cache we need this pass, recomposed once each even
	// if they cover several positions in work.
	recomposedChildren := make(map[Handle]struct{})

	for pos := range work {
		occupants := r.childOccupancy[pos]
		if len(occupants) == 0 {
			ch, _ := r.getCharacter(pos.X, pos.Y)
			r.cache[pos] = cell{Char: ch, Effects: r.effects}
			continue
		}

		topChild := c.topEnabledOccupant(occupants)
		if topChild == nil {
			ch, _ := r.getCharacter(pos.X, pos.Y)
			r.cache[pos] = cell{Char: ch, Effects: r.effects}
			continue
		}

		if _, done := recomposedChildren[*topChild]; !done {
			if err := c.recompose(*topChild); err != nil {
				return err
			}
			recomposedChildren[*topChild] = struct{}{}
		}

		childRect, err := c.store.get(*topChild)
		if err != nil {
			return err
		}
		childPos := r.positionOfChild[*topChild]
		local := Position{pos.X - childPos.X, pos.Y - childPos.Y}
		if cc, ok := childRect.cache[local]; ok {
			r.cache[pos] = cc
		}
	}

	return nil
}

// topEnabledOccupant returns the last enabled rect in the occupancy
// stack, or nil if none of the occupants are currently enabled.
func (c *Compositor) topEnabledOccupant(occupants []Handle) *Handle {
	for i := len(occupants) - 1; i >= 0; i-- {
		h := occupants[i]
		if r, err := c.store.get(h); err == nil && r.enabled {
			return &h
		}
	}
	return nil
}

// drawEntry is a single resolved screen cell, tagged with its absolute
// position, ready for sorting and serialization.
type drawEntry struct {
	Pos  Position
	Cell cell
}

// collect recomposes h and returns every one of its cache cells that
// falls within h's visible box, translated to absolute coordinates.
func (c *Compositor) collect(h Handle) ([]drawEntry, error) {
	offset, err := c.store.absoluteOffset(h)
	if err != nil {
		return nil, err
	}
	box, err := c.store.visibleBox(h)
	if err != nil {
		return nil, err
	}
	if err := c.recompose(h); err != nil {
		return nil, err
	}
	r, err := c.store.get(h)
	if err != nil {
		return nil, err
	}
	if !r.enabled {
		return nil, nil
	}

	out := make([]drawEntry, 0, len(r.cache))
	for pos, cl := range r.cache {
		abs := Position{offset.X + pos.X, offset.Y + pos.Y}
		if box.contains(abs.X, abs.Y) {
			out = append(out, drawEntry{Pos: abs, Cell: cl})
		}
	}
	return out, nil
}

// diffAgainstTopCache keeps only entries whose resolved value differs
// from what the top cache currently says is on screen, and updates the
// top cache to match.
func (c *Compositor) diffAgainstTopCache(entries []drawEntry) []drawEntry {
	filtered := entries[:0:0]
	for _, e := range entries {
		if existing, ok := c.topCache[e.Pos]; ok && existing == e.Cell {
			continue
		}
		c.topCache[e.Pos] = e.Cell
		filtered = append(filtered, e)
	}
	return filtered
}

func sortByRowThenCol(entries []drawEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Pos.Y != entries[j].Pos.Y {
			return entries[i].Pos.Y < entries[j].Pos.Y
		}
		return entries[i].Pos.X < entries[j].Pos.X
	})
}

// Render recomposes h's subtree, diffs it against the top cache, and
// writes the minimal ANSI escape string that brings the screen up to
// date. A render with no changes writes nothing.
func (c *Compositor) Render(h Handle) error {
	out, err := c.RenderString(h)
	if err != nil {
		return err
	}
	if out == "" {
		return nil
	}
	_, err = c.adapter.Write([]byte(out))
	return err
}

// RenderString recomposes h's subtree and diffs it against the top
// cache the same way Render does, but returns the resulting ANSI string
// instead of writing it to the adapter. An empty string means nothing
// changed. This is what the ffi package's render_to_string entry point
// calls.
func (c *Compositor) RenderString(h Handle) (string, error) {
	entries, err := c.collect(h)
	if err != nil {
		return "", err
	}

	filtered := c.diffAgainstTopCache(entries)
	if len(filtered) == 0 {
		return "", nil
	}

	sortByRowThenCol(filtered)
	return serialize(filtered), nil
}

// RenderRoot renders from the root rect.
func (c *Compositor) RenderRoot() error {
	return c.Render(Root)
}

// QueueRender appends h to the deduplicated queue consumed by
// RenderQueued.
func (c *Compositor) QueueRender(h Handle) error {
	if _, err := c.store.get(h); err != nil {
		return err
	}
	c.drawQueue = append(c.drawQueue, h)
	return nil
}

// RenderQueued drains the queue built by QueueRender. It paints
// deepest-first so a shallow rect never overwrites a deeper one already
// placed, skips any rect whose ancestor is also enqueued (the ancestor's
// own paint subsumes it), and skips anything not attached to Root.
func (c *Compositor) RenderQueued() error {
	queue := dedupe(c.drawQueue)
	c.drawQueue = nil
	if len(queue) == 0 {
		return nil
	}

	type ranked struct {
		depth, rank int
		handle      Handle
	}

	done := make(map[Handle]struct{}, len(queue))
	for _, h := range queue {
		done[h] = struct{}{}
	}

	var work []ranked
	for _, h := range queue {
		lineage, err := c.store.ancestors(h)
		if err != nil {
			return err
		}
		skip := false
		attached := h == Root
		for _, a := range lineage {
			if _, enq := done[a]; enq {
				skip = true
				break
			}
			if a == Root {
				attached = true
			}
		}
		if !attached || skip {
			continue
		}

		depth := len(lineage)
		rank := 0
		if parent, err := c.store.parentOf(h); err == nil {
			if rr, ok := parent.rankOf(h); ok {
				rank = rr
			}
		}
		work = append(work, ranked{depth: depth, rank: rank, handle: h})
		if err := c.store.flagParent(h); err != nil {
			return err
		}
	}

	sort.Slice(work, func(i, j int) bool {
		if work[i].depth != work[j].depth {
			return work[i].depth > work[j].depth
		}
		return work[i].rank > work[j].rank
	})

	depthAt := make(map[Position]int)
	var toDraw []drawEntry

	for _, w := range work {
		entries, err := c.collect(w.handle)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if existing, ok := depthAt[e.Pos]; ok && existing > w.depth {
				continue
			}
			toDraw = append(toDraw, e)
			depthAt[e.Pos] = w.depth
		}
	}

	filtered := c.diffAgainstTopCache(toDraw)
	if len(filtered) == 0 {
		return nil
	}
	sortByRowThenCol(filtered)
	_, err := c.adapter.Write([]byte(serialize(filtered)))
	return err
}

func dedupe(handles []Handle) []Handle {
	seen := make(map[Handle]struct{}, len(handles))
	out := handles[:0:0]
	for _, h := range handles {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}
