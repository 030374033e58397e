package wrecked

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSizesRootFromAdapter(t *testing.T) {
	c, _ := newTestCompositor(40, 12)
	w, h, err := c.RootSize()
	if err != nil {
		t.Fatalf("RootSize: %v", err)
	}
	if w != 40 || h != 12 {
		t.Errorf("expected root sized 40x12, got %dx%d", w, h)
	}
}

func TestAttachRejectsCycle(t *testing.T) {
	c, _ := newTestCompositor(10, 10)

	a, _ := c.NewRect(Root)
	b, _ := c.NewRect(a)

	if err := c.Attach(a, b); !errors.Is(err, ErrCycle) {
		t.Errorf("attaching an ancestor to its own descendant should fail with ErrCycle, got %v", err)
	}
}

func TestAttachToSelfRejected(t *testing.T) {
	c, _ := newTestCompositor(10, 10)
	a, _ := c.NewRect(Root)
	if err := c.Attach(a, a); !errors.Is(err, ErrCycle) {
		t.Errorf("attaching a rect to itself should fail with ErrCycle, got %v", err)
	}
}

func TestDetachThenDeleteRect(t *testing.T) {
	c, _ := newTestCompositor(10, 10)
	a, _ := c.NewRect(Root)
	b, _ := c.NewRect(a)

	if err := c.DeleteRect(a); err != nil {
		t.Fatalf("DeleteRect: %v", err)
	}
	if _, err := c.store.get(a); !errors.Is(err, ErrNotFound) {
		t.Errorf("a should be gone after DeleteRect, got %v", err)
	}
	if _, err := c.store.get(b); !errors.Is(err, ErrNotFound) {
		t.Errorf("a's descendant b should be gone too, got %v", err)
	}
}

// TestDetachThenAttachReproducesSameRenderedDiff verifies that detaching
// a rect and reattaching it to the same parent at the same position
// leaves the renderer no better or worse off than never having touched
// it: the two compositors end up in identical states and produce
// byte-identical render output from a clean cache.
func TestDetachThenAttachReproducesSameRenderedDiff(t *testing.T) {
	untouched, _ := newTestCompositor(5, 1)
	u, _ := untouched.NewRect(Root)
	untouched.Resize(u, 2, 1)
	untouched.SetPosition(u, 1, 0)
	untouched.SetString(u, 0, 0, "Z")

	roundTripped, _ := newTestCompositor(5, 1)
	r, _ := roundTripped.NewRect(Root)
	roundTripped.Resize(r, 2, 1)
	roundTripped.SetPosition(r, 1, 0)
	roundTripped.SetString(r, 0, 0, "Z")

	if err := roundTripped.Detach(r); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	if err := roundTripped.Attach(r, Root); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := roundTripped.SetPosition(r, 1, 0); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}

	wantOut, err := untouched.RenderString(Root)
	if err != nil {
		t.Fatalf("RenderString(untouched): %v", err)
	}
	gotOut, err := roundTripped.RenderString(Root)
	if err != nil {
		t.Fatalf("RenderString(roundTripped): %v", err)
	}
	if gotOut != wantOut {
		t.Errorf("detach+reattach to the same parent/position should render identically, got %q want %q", gotOut, wantOut)
	}
}

// TestReplaceWithDetachesOldAndAttachesNewAtSamePosition verifies that
// ReplaceWith(old, next) behaves like detaching old and attaching next
// at old's former parent and position: old drops out of the parent's
// children (but stays in the store), and next ends up where old was.
func TestReplaceWithDetachesOldAndAttachesNewAtSamePosition(t *testing.T) {
	c, _ := newTestCompositor(5, 1)

	oldRect, _ := c.NewRect(Root)
	c.Resize(oldRect, 2, 1)
	c.SetPosition(oldRect, 1, 0)
	c.SetString(oldRect, 0, 0, "A")

	nextRect, _ := c.NewOrphan()
	c.Resize(nextRect, 2, 1)
	c.SetString(nextRect, 0, 0, "B")

	if err := c.ReplaceWith(oldRect, nextRect); err != nil {
		t.Fatalf("ReplaceWith: %v", err)
	}

	root, _ := c.store.get(Root)
	if _, stillChild := root.positionOfChild[oldRect]; stillChild {
		t.Errorf("old rect should no longer be a child of root")
	}
	pos, isChild := root.positionOfChild[nextRect]
	if !isChild {
		t.Fatalf("next rect should now be a child of root")
	}
	if pos.X != 1 || pos.Y != 0 {
		t.Errorf("next rect should sit at old's former position (1,0), got (%d,%d)", pos.X, pos.Y)
	}

	if _, err := c.store.get(oldRect); err != nil {
		t.Errorf("old rect should still exist in the store (detached, not deleted), got %v", err)
	}

	out, err := c.RenderString(Root)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if !strings.Contains(out, "B") {
		t.Errorf("expected rendered output to contain the replacement's character 'B', got %q", out)
	}
	if strings.Contains(out, "A") {
		t.Errorf("expected rendered output not to contain the replaced rect's character 'A', got %q", out)
	}
}

// TestSetStringOverflowDiscardsTail verifies that text running past the
// bottom of the rect is silently dropped rather than erroring.
func TestSetStringOverflowDiscardsTail(t *testing.T) {
	c, _ := newTestCompositor(10, 10)
	h, _ := c.NewRect(Root)
	c.Resize(h, 3, 2)

	if err := c.SetString(h, 0, 0, "abcdefghij"); err != nil {
		t.Fatalf("SetString should not error on overflow, got %v", err)
	}

	r, _ := c.store.get(h)
	ch, _ := r.getCharacter(2, 1)
	if ch != 'f' {
		t.Errorf("expected the 6th character 'f' at the last in-bounds cell, got %q", ch)
	}
}

func TestSetFgColorRejectsBadColor(t *testing.T) {
	c, _ := newTestCompositor(10, 10)
	if err := c.SetFgColor(Root, Color(99)); err != ErrBadColor {
		t.Errorf("expected ErrBadColor, got %v", err)
	}
}

func TestFitToTerminalNoopWhenSizeUnchanged(t *testing.T) {
	c, adapter := newTestCompositor(10, 10)
	resized, err := c.FitToTerminal()
	if err != nil {
		t.Fatalf("FitToTerminal: %v", err)
	}
	if resized {
		t.Errorf("FitToTerminal should report no resize when size is unchanged")
	}
	_ = adapter
}

// TestFitToTerminalFailedQueryIsNotAnError verifies that a failed
// terminal size query is treated as "no resize", never an error.
func TestFitToTerminalFailedQueryIsNotAnError(t *testing.T) {
	c, adapter := newTestCompositor(10, 10)
	adapter.sizeOK = false

	resized, err := c.FitToTerminal()
	if err != nil {
		t.Fatalf("expected no error on failed size query, got %v", err)
	}
	if resized {
		t.Errorf("a failed size query must never report a resize")
	}
}

func TestFitToTerminalResizesRoot(t *testing.T) {
	c, adapter := newTestCompositor(10, 10)
	adapter.cols, adapter.rows = 20, 15

	resized, err := c.FitToTerminal()
	if err != nil {
		t.Fatalf("FitToTerminal: %v", err)
	}
	if !resized {
		t.Errorf("expected FitToTerminal to report a resize")
	}
	w, h, _ := c.RootSize()
	if w != 20 || h != 15 {
		t.Errorf("expected root resized to 20x15, got %dx%d", w, h)
	}
}

func TestKillRestoresAdapter(t *testing.T) {
	c, adapter := newTestCompositor(10, 10)
	if err := c.Kill(); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	if !adapter.restored {
		t.Errorf("Kill should restore the adapter")
	}
}

// TestResizeShrinkFlagsVacatedParentCells ensures a shrinking rect dirties
// the parent cells it no longer covers, not just its new footprint.
func TestResizeShrinkFlagsVacatedParentCells(t *testing.T) {
	c, _ := newTestCompositor(10, 10)
	h, _ := c.NewRect(Root)
	c.Resize(h, 5, 5)

	root, _ := c.store.get(Root)
	root.dirtyPositions = make(map[Position]struct{})
	root.fullRefresh = false

	if err := c.Resize(h, 2, 2); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if _, ok := root.dirtyPositions[Position{4, 4}]; !ok {
		t.Errorf("shrinking should dirty the vacated cell (4,4) on the parent")
	}
}
