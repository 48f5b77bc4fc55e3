// Package telemetry holds the orientation-telemetry data model shared by
// the batch analyzer, the capture tools, and the generators: an ordered
// series of timestamped quaternion samples.
package telemetry

// Sample is one orientation reading. The quaternion is not required to be
// unit-norm here; consumers normalize on use.
type Sample struct {
	Timestamp float64 `json:"timestamp"`
	QW        float64 `json:"qw"`
	QX        float64 `json:"qx"`
	QY        float64 `json:"qy"`
	QZ        float64 `json:"qz"`
}

// Series is an ordered quaternion telemetry trace. HasTimestamps records
// whether the source carried a timestamp column; when it did not, readers
// synthesize timestamps from the sample index and a frame rate.
type Series struct {
	Samples       []Sample
	HasTimestamps bool
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Samples) }
