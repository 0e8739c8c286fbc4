// Package coaching assembles the natural-language prompts sent with each
// recording, including the personalization context built from a singer's
// past comparison results and profile.
package coaching

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PerformanceRecord is one past comparison result supplied by the caller.
// Records may wrap the result under "yodelComparison" or carry a bare
// "overallScore". Entries that are not JSON objects decode as opaque records
// so they still count toward the history length.
type PerformanceRecord struct {
	Comparison   *PastComparison `json:"yodelComparison,omitempty"`
	OverallScore *float64        `json:"overallScore,omitempty"`

	opaque bool
}

// PastComparison mirrors the fields of a comparison result that feed the context block.
type PastComparison struct {
	OverallScore *float64      `json:"overallScore,omitempty"`
	Metrics      *PastMetrics  `json:"metrics,omitempty"`
	Feedback     *PastFeedback `json:"feedback,omitempty"`
}

// PastMetrics holds the five scored dimensions of a past comparison.
type PastMetrics struct {
	PitchAccuracy     *MetricScore `json:"pitchAccuracy,omitempty"`
	TimingAccuracy    *MetricScore `json:"timingAccuracy,omitempty"`
	YodelBreakQuality *MetricScore `json:"yodelBreakQuality,omitempty"`
	SyllableAccuracy  *MetricScore `json:"syllableAccuracy,omitempty"`
	RhythmConsistency *MetricScore `json:"rhythmConsistency,omitempty"`
}

// MetricScore is a single metric sub-record. Only the score is rendered.
type MetricScore struct {
	Score       *float64 `json:"score,omitempty"`
	Description string   `json:"description,omitempty"`
}

// PastFeedback carries the improvement areas of a past comparison.
type PastFeedback struct {
	AreasForImprovement []ImprovementArea `json:"areasForImprovement,omitempty"`
}

// ImprovementArea is one labeled suggestion from past feedback.
type ImprovementArea struct {
	Area       string `json:"area"`
	Suggestion string `json:"suggestion,omitempty"`
	Priority   string `json:"priority,omitempty"`
}

// UnmarshalJSON accepts any JSON value; non-objects become opaque records.
func (r *PerformanceRecord) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*r = PerformanceRecord{opaque: true}
		return nil
	}

	type plain PerformanceRecord
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return fmt.Errorf("performance record: %w", err)
	}
	*r = PerformanceRecord(p)
	return nil
}

// Opaque reports whether the record carried no readable fields.
func (r PerformanceRecord) Opaque() bool {
	return r.opaque
}

// UserProfile is the free-form profile supplied with a comparison request.
type UserProfile map[string]any

type profileField struct {
	key   string
	label string
}

// profileFields lists the profile keys rendered into the prompt, in order.
var profileFields = []profileField{
	{"experience_level", "Experience Level"},
	{"practice_frequency", "Practice Frequency"},
	{"goals", "Goals"},
	{"challenges", "Known Challenges"},
	{"total_practice_time", "Total Practice Time"},
}
