// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package reset

import "math"

// Increments with axis norm or angle magnitude below this are dropped by
// Push as "no rotation".
const pushEps = 1e-12

// Stream is the bounded online counterpart of the batch estimator, for
// controllers pushing body-frame increments one at a time. It keeps the
// last N = max(1, round(windowSec/dt)) increments in a fixed-capacity
// ring buffer: push and evict are O(1) and the buffer never reallocates.
//
// A Stream is owned by a single goroutine; it does no locking of its own.
type Stream struct {
	buf   []Increment
	head  int // index of the oldest entry
	count int
}

// NewStream sizes the buffer for windowSec seconds of increments arriving
// every dt seconds.
func NewStream(windowSec, dt float64) *Stream {
	n := 1
	if dt > 0 {
		if m := int(math.Round(windowSec / dt)); m > 1 {
			n = m
		}
	}
	return &Stream{buf: make([]Increment, n)}
}

// Len returns the number of buffered increments.
func (s *Stream) Len() int { return s.count }

// Cap returns the fixed buffer capacity N.
func (s *Stream) Cap() int { return len(s.buf) }

// Push appends one increment, evicting the oldest entry once the buffer
// is full. Degenerate increments (near-zero axis or angle) are ignored;
// accepted axes are normalized before storage.
func (s *Stream) Push(axis [3]float64, dAngle float64) {
	norm := math.Sqrt(axis[0]*axis[0] + axis[1]*axis[1] + axis[2]*axis[2])
	if norm < pushEps || math.Abs(dAngle) < pushEps {
		return
	}
	inc := Increment{
		Axis:  [3]float64{axis[0] / norm, axis[1] / norm, axis[2] / norm},
		Angle: dAngle,
	}

	if s.count < len(s.buf) {
		s.buf[(s.head+s.count)%len(s.buf)] = inc
		s.count++
		return
	}
	// Full: overwrite the oldest slot and advance the head.
	s.buf[s.head] = inc
	s.head = (s.head + 1) % len(s.buf)
}

// Sequence returns the buffered increments oldest-first as a fresh slice.
func (s *Stream) Sequence() Sequence {
	out := make(Sequence, s.count)
	for i := 0; i < s.count; i++ {
		out[i] = s.buf[(s.head+i)%len(s.buf)]
	}
	return out
}

// Estimate runs the resetability estimator over the current buffer.
func (s *Stream) Estimate() (lambda, r, thetaNet float64) {
	return Estimate(s.Sequence())
}

// ScaledTwice builds the lam-scaled buffer contents concatenated with
// itself, the corrective command for an "apply twice" reset.
func (s *Stream) ScaledTwice(lam float64) Sequence {
	return ScaledTwice(s.Sequence(), lam)
}
