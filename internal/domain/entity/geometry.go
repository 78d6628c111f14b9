// Package entity defines domain entities for the web-view bridge.
package entity

import "fmt"

// Size is a width/height pair in pixels.
type Size struct {
	W, H int
}

// Rect represents a view or window position and size.
// X and Y are relative to the parent surface for views and to the screen
// for host windows.
type Rect struct {
	X, Y int // Top-left position
	W, H int // Width and height
}

// NewRect builds a rect anchored at the origin.
func NewRect(w, h int) Rect {
	return Rect{W: w, H: h}
}

// Size returns the width and height of the rectangle.
func (r Rect) Size() Size {
	return Size{W: r.W, H: r.H}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (cx, cy int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// WithSize returns a copy with the same origin and the given size.
func (r Rect) WithSize(w, h int) Rect {
	r.W, r.H = w, h
	return r
}

// Centered returns a rect of the given size whose origin is shifted by half
// the size delta, so the result stays centered on the receiver.
func (r Rect) Centered(w, h int) Rect {
	dx := w - r.W
	dy := h - r.H
	return Rect{
		X: r.X - dx/2,
		Y: r.Y - dy/2,
		W: w,
		H: h,
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// SizeConstraints bounds a host window size. Zero max values mean unbounded.
type SizeConstraints struct {
	MinW, MinH int
	MaxW, MaxH int
}

// Clamp limits w and h to the constraints.
func (c SizeConstraints) Clamp(w, h int) (int, int) {
	return clampAxis(w, c.MinW, c.MaxW), clampAxis(h, c.MinH, c.MaxH)
}

func clampAxis(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if hi > 0 && v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}
