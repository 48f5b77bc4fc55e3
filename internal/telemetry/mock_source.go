// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package telemetry

import (
	"math"
	"time"

	"github.com/relabs-tech/reset_computer/internal/quat"
)

// Source is anything that can provide orientation samples over time:
// mock source, serial capture, maybe a replay source from file later.
type Source interface {
	Next() (Sample, error)
}

type mockSource struct {
	start time.Time
}

// NewMockSource creates a mock orientation source that generates a smooth
// wandering rotation, for developing the estimator chain without the rig.
func NewMockSource() Source {
	return &mockSource{start: time.Now()}
}

func (m *mockSource) Next() (Sample, error) {
	elapsed := time.Since(m.start).Seconds()

	// Slowly precessing axis, slowly growing angle.
	axis := [3]float64{
		math.Sin(0.3 * elapsed),
		math.Cos(0.2 * elapsed),
		0.5,
	}
	angle := 0.4 * math.Sin(0.5*elapsed)

	q := quat.FromAxisAngle(axis, angle)
	return Sample{
		Timestamp: elapsed,
		QW:        q.W,
		QX:        q.X,
		QY:        q.Y,
		QZ:        q.Z,
	}, nil
}
