// Package ffi exposes the wrecked compositor across a C ABI, mirroring
// the function-per-operation surface of the original bindings crate.
// Instances are tracked in a handle registry instead of the original's
// Box::into_raw/Box::from_raw pointer dance — a *Compositor handed across
// cgo would be a pointer into Go-managed memory the garbage collector
// knows nothing about, which cgo explicitly forbids storing on the C
// side. A registry key is just a number; the Go runtime keeps owning the
// real value.
package main

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	wrecked "github.com/quintinfsmith/wrecked-sub000"
	"github.com/quintinfsmith/wrecked-sub000/terminal"
)

// Numeric return codes, matching cast_result in the original bindings.
const (
	codeOK              C.uint32_t = 0
	codeBadColor        C.uint32_t = 1
	codeInvalidUTF8     C.uint32_t = 2
	codeStringTooLong   C.uint32_t = 3
	codeNotFound        C.uint32_t = 4
	codeNoParent        C.uint32_t = 5
	codeParentNotFound  C.uint32_t = 6
	codeChildNotFound   C.uint32_t = 7
	codeBadPosition     C.uint32_t = 8
	codeOther           C.uint32_t = 255
)

var (
	registryMu sync.Mutex
	registry   = map[C.uint64_t]*wrecked.Compositor{}
	nextHandle C.uint64_t
)

func store(c *wrecked.Compositor) C.uint64_t {
	registryMu.Lock()
	defer registryMu.Unlock()
	h := nextHandle
	nextHandle++
	registry[h] = c
	return h
}

func lookup(ptr C.uint64_t) *wrecked.Compositor {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[ptr]
}

func drop(ptr C.uint64_t) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, ptr)
}

// castResult maps a Go error from the core package onto the C ABI's
// numeric error taxonomy. Core errors are wrapped with fmt.Errorf to
// carry the offending handle/position, so this compares with errors.Is
// rather than ==.
func castResult(err error) C.uint32_t {
	switch {
	case err == nil:
		return codeOK
	case errors.Is(err, wrecked.ErrBadColor):
		return codeBadColor
	case errors.Is(err, wrecked.ErrInvalidUTF8):
		return codeInvalidUTF8
	case errors.Is(err, wrecked.ErrStringTooLong):
		return codeStringTooLong
	case errors.Is(err, wrecked.ErrNotFound):
		return codeNotFound
	case errors.Is(err, wrecked.ErrNoParent):
		return codeNoParent
	case errors.Is(err, wrecked.ErrParentNotFound):
		return codeParentNotFound
	case errors.Is(err, wrecked.ErrChildNotFound):
		return codeChildNotFound
	case errors.Is(err, wrecked.ErrBadPosition):
		return codeBadPosition
	default:
		return codeOther
	}
}

// invalidHandle is returned by init_compositor when terminal setup
// fails. The registry never assigns this value, so callers can compare
// against it directly instead of also threading an out-param error.
const invalidHandle C.uint64_t = ^C.uint64_t(0)

//export init_compositor
func init_compositor() C.uint64_t {
	c, err := wrecked.New(terminal.New())
	if err != nil {
		return invalidHandle
	}
	return store(c)
}

//export kill
func kill(ptr C.uint64_t) {
	c := lookup(ptr)
	if c == nil {
		return
	}
	c.Kill()
	drop(ptr)
}

//export new_rect
func new_rect(ptr C.uint64_t, parentID C.uint64_t, width, height C.uint64_t) C.uint64_t {
	c := lookup(ptr)
	if c == nil {
		return 0
	}
	h, err := c.NewRect(wrecked.Handle(parentID))
	if err != nil {
		return 0
	}
	c.Resize(h, int(width), int(height))
	return C.uint64_t(h)
}

//export new_orphan
func new_orphan(ptr C.uint64_t, width, height C.uint64_t) C.uint64_t {
	c := lookup(ptr)
	if c == nil {
		return 0
	}
	h, err := c.NewOrphan()
	if err != nil {
		return 0
	}
	c.Resize(h, int(width), int(height))
	return C.uint64_t(h)
}

//export delete_rect
func delete_rect(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.DeleteRect(wrecked.Handle(rectID)))
}

//export attach
func attach(ptr C.uint64_t, rectID, parentID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.Attach(wrecked.Handle(rectID), wrecked.Handle(parentID)))
}

//export detach
func detach(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.Detach(wrecked.Handle(rectID)))
}

//export replace_with
func replace_with(ptr C.uint64_t, oldID, newID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.ReplaceWith(wrecked.Handle(oldID), wrecked.Handle(newID)))
}

//export resize
func resize(ptr C.uint64_t, rectID C.uint64_t, w, h C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.Resize(wrecked.Handle(rectID), int(w), int(h)))
}

//export set_position
func set_position(ptr C.uint64_t, rectID C.uint64_t, x, y C.int64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.SetPosition(wrecked.Handle(rectID), int(x), int(y)))
}

//export shift_contents
func shift_contents(ptr C.uint64_t, rectID C.uint64_t, dx, dy C.int64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.ShiftContents(wrecked.Handle(rectID), int(dx), int(dy)))
}

//export shift_contents_in_box
func shift_contents_in_box(ptr C.uint64_t, rectID C.uint64_t, dx, dy, xi, yi, xf, yf C.int64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	box := wrecked.Box{
		X: int(xi), Y: int(yi),
		W: int(xf - xi), H: int(yf - yi),
	}
	return castResult(c.ShiftContentsInBox(wrecked.Handle(rectID), int(dx), int(dy), box))
}

//export set_character
func set_character(ptr C.uint64_t, rectID C.uint64_t, x, y C.int64_t, ch *C.char) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	s := C.GoString(ch)
	r, _ := firstRune(s)
	return castResult(c.SetCharacter(wrecked.Handle(rectID), int(x), int(y), r))
}

//export set_string
func set_string(ptr C.uint64_t, rectID C.uint64_t, x, y C.int64_t, s *C.char) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.SetString(wrecked.Handle(rectID), int(x), int(y), C.GoString(s)))
}

//export unset_character
func unset_character(ptr C.uint64_t, rectID C.uint64_t, x, y C.int64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.UnsetCharacter(wrecked.Handle(rectID), int(x), int(y)))
}

//export clear_characters
func clear_characters(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.ClearCharacters(wrecked.Handle(rectID)))
}

//export clear_children
func clear_children(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.ClearChildren(wrecked.Handle(rectID)))
}

//export enable_rect
func enable_rect(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.Enable(wrecked.Handle(rectID)))
}

//export disable_rect
func disable_rect(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.Disable(wrecked.Handle(rectID)))
}

//export set_fg_color
func set_fg_color(ptr C.uint64_t, rectID C.uint64_t, colorN C.uint8_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.SetFgColor(wrecked.Handle(rectID), wrecked.Color(colorN)))
}

//export set_bg_color
func set_bg_color(ptr C.uint64_t, rectID C.uint64_t, colorN C.uint8_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.SetBgColor(wrecked.Handle(rectID), wrecked.Color(colorN)))
}

//export unset_fg_color
func unset_fg_color(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.UnsetFgColor(wrecked.Handle(rectID)))
}

//export unset_bg_color
func unset_bg_color(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.UnsetBgColor(wrecked.Handle(rectID)))
}

//export unset_color
func unset_color(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.UnsetColor(wrecked.Handle(rectID)))
}

//export set_bold_flag
func set_bold_flag(ptr C.uint64_t, rectID C.uint64_t) { toggleFlag(ptr, rectID, true, (*wrecked.Compositor).SetBold) }

//export unset_bold_flag
func unset_bold_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, false, (*wrecked.Compositor).SetBold)
}

//export set_underline_flag
func set_underline_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, true, (*wrecked.Compositor).SetUnderline)
}

//export unset_underline_flag
func unset_underline_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, false, (*wrecked.Compositor).SetUnderline)
}

//export set_invert_flag
func set_invert_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, true, (*wrecked.Compositor).SetInvert)
}

//export unset_invert_flag
func unset_invert_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, false, (*wrecked.Compositor).SetInvert)
}

//export set_italics_flag
func set_italics_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, true, (*wrecked.Compositor).SetItalics)
}

//export unset_italics_flag
func unset_italics_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, false, (*wrecked.Compositor).SetItalics)
}

//export set_strike_flag
func set_strike_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, true, (*wrecked.Compositor).SetStrike)
}

//export unset_strike_flag
func unset_strike_flag(ptr C.uint64_t, rectID C.uint64_t) {
	toggleFlag(ptr, rectID, false, (*wrecked.Compositor).SetStrike)
}

func toggleFlag(ptr C.uint64_t, rectID C.uint64_t, v bool, set func(*wrecked.Compositor, wrecked.Handle, bool) error) {
	c := lookup(ptr)
	if c == nil {
		return
	}
	set(c, wrecked.Handle(rectID), v)
}

//export render
func render(ptr C.uint64_t, rectID C.uint64_t) C.uint32_t {
	c := lookup(ptr)
	if c == nil {
		return codeOther
	}
	return castResult(c.Render(wrecked.Handle(rectID)))
}

//export fit_to_terminal
func fit_to_terminal(ptr C.uint64_t) C.int8_t {
	c := lookup(ptr)
	if c == nil {
		return 0
	}
	resized, err := c.FitToTerminal()
	if err != nil || !resized {
		return 0
	}
	return 1
}

//export get_width
func get_width(ptr C.uint64_t, rectID C.uint64_t) C.uint64_t {
	c := lookup(ptr)
	if c == nil {
		return 0
	}
	w, _, err := c.Size(wrecked.Handle(rectID))
	if err != nil {
		return 0
	}
	return C.uint64_t(w)
}

//export get_height
func get_height(ptr C.uint64_t, rectID C.uint64_t) C.uint64_t {
	c := lookup(ptr)
	if c == nil {
		return 0
	}
	_, h, err := c.Size(wrecked.Handle(rectID))
	if err != nil {
		return 0
	}
	return C.uint64_t(h)
}

// render_to_string collects and serializes the same diff Render would
// write, but hands the ANSI string back to the caller instead of writing
// it to the adapter. The result is a C.CString copy in C-owned memory;
// the caller releases it with free_string.
//
//export render_to_string
func render_to_string(ptr C.uint64_t, rectID C.uint64_t) *C.char {
	c := lookup(ptr)
	if c == nil {
		return C.CString("")
	}
	s, err := c.RenderString(wrecked.Handle(rectID))
	if err != nil {
		return C.CString("")
	}
	return C.CString(s)
}

//export free_string
func free_string(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return ' ', false
}

func main() {}
