package models

import "github.com/BerylCAtieno/yodelstar-api/internal/coaching"

// AnalyzeRequest is the body of POST /analyze-yodel.
type AnalyzeRequest struct {
	WavBase64 string `json:"wav_base64"`
}

// CompareRequest is the body of POST /compare-yodel.
type CompareRequest struct {
	OriginalWavBase64 string                       `json:"original_wav_base64"`
	UserWavBase64     string                       `json:"user_wav_base64"`
	PastPerformances  []coaching.PerformanceRecord `json:"past_performances,omitempty"`
	UserInfo          coaching.UserProfile         `json:"user_info,omitempty"`
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Details string `json:"details,omitempty"`
}

type ComparisonResult struct {
	YodelComparison Comparison `json:"yodelComparison"`
}

type Comparison struct {
	OverallScore float64  `json:"overallScore"`
	Metrics      Metrics  `json:"metrics"`
	Feedback     Feedback `json:"feedback"`
}

type Metrics struct {
	PitchAccuracy     PitchAccuracy     `json:"pitchAccuracy"`
	TimingAccuracy    TimingAccuracy    `json:"timingAccuracy"`
	YodelBreakQuality YodelBreakQuality `json:"yodelBreakQuality"`
	SyllableAccuracy  SyllableAccuracy  `json:"syllableAccuracy"`
	RhythmConsistency RhythmConsistency `json:"rhythmConsistency"`
}

type PitchAccuracy struct {
	Score                 float64 `json:"score"`
	AverageDeviationCents float64 `json:"averageDeviationCents"`
	Description           string  `json:"description"`
}

type TimingAccuracy struct {
	Score              float64 `json:"score"`
	AverageDeviationMs float64 `json:"averageDeviationMs"`
	Description        string  `json:"description"`
}

type YodelBreakQuality struct {
	Score            float64 `json:"score"`
	SmoothnessRating string  `json:"smoothnessRating"`
	Description      string  `json:"description"`
}

type SyllableAccuracy struct {
	Score            float64 `json:"score"`
	MatchedSyllables int     `json:"matchedSyllables"`
	TotalSyllables   int     `json:"totalSyllables"`
	Description      string  `json:"description"`
}

type RhythmConsistency struct {
	Score          float64 `json:"score"`
	TempoVariation float64 `json:"tempoVariation"`
	Description    string  `json:"description"`
}

type Feedback struct {
	Strengths               []string                   `json:"strengths"`
	AreasForImprovement     []coaching.ImprovementArea `json:"areasForImprovement"`
	PracticeRecommendations []string                   `json:"practiceRecommendations"`
	OverallFeedback         string                     `json:"overallFeedback"`
}

// MockComparison is a fixed, well-formed comparison used while developing the frontend.
func MockComparison() ComparisonResult {
	return ComparisonResult{
		YodelComparison: Comparison{
			OverallScore: 78.5,
			Metrics: Metrics{
				PitchAccuracy: PitchAccuracy{
					Score:                 82,
					AverageDeviationCents: 15.5,
					Description:           "Good pitch matching on most phrases, with some noticeable deviation on higher notes.",
				},
				TimingAccuracy: TimingAccuracy{
					Score:              75,
					AverageDeviationMs: 80,
					Description:        "Generally good timing, but a tendency to rush the start of yodel breaks.",
				},
				YodelBreakQuality: YodelBreakQuality{
					Score:            72,
					SmoothnessRating: "good",
					Description:      "The breaks between chest and head voice are mostly clean, but a few were abrupt.",
				},
				SyllableAccuracy: SyllableAccuracy{
					Score:            88,
					MatchedSyllables: 42,
					TotalSyllables:   48,
					Description:      "High accuracy in syllable pronunciation, matching the original closely.",
				},
				RhythmConsistency: RhythmConsistency{
					Score:          77,
					TempoVariation: 3.5,
					Description:    "Consistent rhythm throughout the performance, with minor tempo fluctuations.",
				},
			},
			Feedback: Feedback{
				Strengths: []string{
					"Excellent syllable clarity and pronunciation.",
					"Strong and confident vocal projection.",
					"Good rhythmic sense throughout the piece.",
				},
				AreasForImprovement: []coaching.ImprovementArea{
					{
						Area:       "Yodel Break Smoothness",
						Suggestion: "Practice slow, deliberate transitions between chest and head voice. Focus on relaxing your larynx.",
						Priority:   "high",
					},
					{
						Area:       "Pitch Accuracy on High Notes",
						Suggestion: "Use sirens and pitch slides to warm up your upper register before practicing the piece.",
						Priority:   "medium",
					},
					{
						Area:       "Timing at Phrase Endings",
						Suggestion: "Pay close attention to the original recording's phrasing, especially how notes are held at the end of phrases.",
						Priority:   "low",
					},
				},
				PracticeRecommendations: []string{
					"Practice 'siren' exercises daily to improve vocal range and break smoothness.",
					"Record yourself and listen back, comparing specifically to the original's timing.",
					"Isolate the difficult high-pitched phrases and practice them at a slower tempo.",
				},
				OverallFeedback: "Great job! You have a solid foundation. Smoothing out your breaks will take your yodeling to the next level.",
			},
		},
	}
}
