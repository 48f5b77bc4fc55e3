// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package quat provides the unit-quaternion algebra used by the
// resetability estimator. Quaternions follow the (w,x,y,z) convention and
// every operation that returns an orientation normalizes its result, so
// producers are not required to feed pre-normalized values.
package quat

import "math"

const (
	// Norm floor used when normalizing a quaternion. A zero quaternion
	// still divides by this instead of zero.
	normEps = 1e-15

	// Below this angle (rad) a rotation is treated as identity.
	angleEps = 1e-12
)

// Quat is a rotation quaternion in (w,x,y,z) order. Note that q and -q
// describe the same physical rotation (double cover of SO(3)), so any
// closeness-to-identity measure on W must take abs(W) first.
type Quat struct {
	W float64 `json:"qw"`
	X float64 `json:"qx"`
	Y float64 `json:"qy"`
	Z float64 `json:"qz"`
}

// Identity returns the identity rotation (1,0,0,0).
func Identity() Quat {
	return Quat{W: 1}
}

// Mul returns the Hamilton product a*b. The product is non-commutative:
// a*b applies b first and a second when quaternions act on the left.
func Mul(a, b Quat) Quat {
	return Quat{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

// Norm returns the Euclidean norm of q.
func Norm(q Quat) float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Normalize scales q to unit norm. The norm is floored at 1e-15, so even a
// degenerate zero quaternion divides by something; the result is then
// numerically meaningless but defined. Any nonzero input comes back with
// unit norm.
func Normalize(q Quat) Quat {
	n := math.Max(Norm(q), normEps)
	return Quat{W: q.W / n, X: q.X / n, Y: q.Y / n, Z: q.Z / n}
}

// Conj returns the conjugate of q. For a unit quaternion this is the
// inverse rotation.
func Conj(q Quat) Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// FromAxisAngle builds the quaternion for a rotation of angle radians
// around axis. The axis is normalized with an epsilon guard first.
func FromAxisAngle(axis [3]float64, angle float64) Quat {
	n := math.Sqrt(axis[0]*axis[0]+axis[1]*axis[1]+axis[2]*axis[2]) + angleEps
	s, c := math.Sincos(angle / 2)
	return Quat{
		W: c,
		X: s * axis[0] / n,
		Y: s * axis[1] / n,
		Z: s * axis[2] / n,
	}
}

// ToAxisAngle converts q to its axis-angle form. The scalar part is
// clamped to [-1,1] before acos so floating round-off cannot produce NaN.
// Rotations below 1e-12 rad come back as the canonical X axis with angle 0.
func ToAxisAngle(q Quat) (axis [3]float64, angle float64) {
	q = Normalize(q)
	w := clamp(q.W, -1, 1)
	angle = 2 * math.Acos(w)
	if angle < angleEps {
		return [3]float64{1, 0, 0}, 0
	}
	s := math.Sqrt(math.Max(1-w*w, angleEps))
	return [3]float64{q.X / s, q.Y / s, q.Z / s}, angle
}

// Relative returns the rotation that carries q onto qRef, i.e.
// qRef * conj(q). With the left-multiplying composition used throughout
// this module, Relative(q2, q1) is the delta that takes sample q1 to
// sample q2: Mul(Relative(q2, q1), q1) == q2 for unit inputs.
func Relative(qRef, q Quat) Quat {
	return Mul(qRef, Conj(q))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
