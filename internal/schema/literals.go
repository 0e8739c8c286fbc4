package schema

const timestampPattern = `^\d{2}:\d{2}\.\d+$`

func ptr(v float64) *float64 { return &v }

func str(description string) *Descriptor {
	return &Descriptor{Kind: KindString, Description: description}
}

func enum(description string, values ...string) *Descriptor {
	return &Descriptor{Kind: KindString, Description: description, Enum: values}
}

func pattern(description, re string) *Descriptor {
	return &Descriptor{Kind: KindString, Description: description, Pattern: re}
}

func integer(description string, min *float64) *Descriptor {
	return &Descriptor{Kind: KindInteger, Description: description, Minimum: min}
}

func score() *Descriptor {
	return &Descriptor{Kind: KindNumber, Minimum: ptr(0), Maximum: ptr(100)}
}

func number(description string) *Descriptor {
	return &Descriptor{Kind: KindNumber, Description: description}
}

func list(description string, items *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindArray, Description: description, Items: items}
}

func object(description string, props map[string]*Descriptor, required ...string) *Descriptor {
	return &Descriptor{Kind: KindObject, Description: description, Properties: props, Required: required}
}

// Analysis is the response shape for single-performance analysis.
var Analysis = &Descriptor{
	Kind:        KindObject,
	Title:       "Yodel Analysis",
	Description: "A schema for analyzing yodeling performances from a video / audio source.",
	Properties: map[string]*Descriptor{
		"yodelAnalysis": object("The root object containing the yodel analysis.", map[string]*Descriptor{
			"video / audioSource": pattern(
				"The time range in the video / audio source that was analyzed.",
				`^\d{2}:\d{2}-\d{2}:\d{2}$`,
			),
			"totalYodelSyllables": integer("The total count of yodel syllables in the analyzed segment.", ptr(0)),
			"phrases": list("A list of distinct yodeling phrases identified in the segment.", object("", map[string]*Descriptor{
				"phraseNumber":           integer("A sequential identifier for the phrase.", ptr(1)),
				"startTime":              pattern("The start time of the phrase in MM:SS.s format.", timestampPattern),
				"endTime":                pattern("The end time of the phrase in MM:SS.s format.", timestampPattern),
				"yodelSyllablesInPhrase": integer("The count of yodel syllables within this specific phrase.", ptr(0)),
				"events": list("A sequence of vocal events within the phrase.", object("", map[string]*Descriptor{
					"timestamp":   pattern("The precise time of the event in MM:SS.s format.", timestampPattern),
					"type":        enum("The type of vocal event.", "headVoice", "chestVoice", "yodelBreak"),
					"description": str("A textual description of the vocal event."),
					"syllable":    str("The phonetic syllable associated with the event."),
					"pitch": object("The musical pitch of the event.", map[string]*Descriptor{
						"note":   pattern("The musical note (e.g., A, B, C#).", `^[A-G](?:#|b)?$`),
						"octave": integer("The octave number for the note.", nil),
					}, "note", "octave"),
				}, "timestamp", "type", "description", "syllable", "pitch")),
				"notes": str("General notes or observations about the phrase."),
			}, "phraseNumber", "startTime", "endTime", "yodelSyllablesInPhrase", "events", "notes")),
		}, "video / audioSource", "totalYodelSyllables", "phrases"),
	},
	Required: []string{"yodelAnalysis"},
}

// Comparison is the response shape for reference-vs-user comparison.
var Comparison = &Descriptor{
	Kind:        KindObject,
	Title:       "Yodel Comparison",
	Description: "A schema for comparing two yodeling performances.",
	Properties: map[string]*Descriptor{
		"yodelComparison": object("The root object containing the yodel comparison analysis.", map[string]*Descriptor{
			"overallScore": {
				Kind:        KindNumber,
				Description: "Overall performance score from 0-100.",
				Minimum:     ptr(0),
				Maximum:     ptr(100),
			},
			"metrics": object("Detailed comparison metrics.", map[string]*Descriptor{
				"pitchAccuracy": object("", map[string]*Descriptor{
					"score":                 score(),
					"averageDeviationCents": number(""),
					"description":           str(""),
				}, "score", "averageDeviationCents", "description"),
				"timingAccuracy": object("", map[string]*Descriptor{
					"score":              score(),
					"averageDeviationMs": number(""),
					"description":        str(""),
				}, "score", "averageDeviationMs", "description"),
				"yodelBreakQuality": object("", map[string]*Descriptor{
					"score":            score(),
					"smoothnessRating": enum("", "excellent", "good", "fair", "poor"),
					"description":      str(""),
				}, "score", "smoothnessRating", "description"),
				"syllableAccuracy": object("", map[string]*Descriptor{
					"score":            score(),
					"matchedSyllables": integer("", ptr(0)),
					"totalSyllables":   integer("", ptr(0)),
					"description":      str(""),
				}, "score", "matchedSyllables", "totalSyllables", "description"),
				"rhythmConsistency": object("", map[string]*Descriptor{
					"score":          score(),
					"tempoVariation": number(""),
					"description":    str(""),
				}, "score", "tempoVariation", "description"),
			}, "pitchAccuracy", "timingAccuracy", "yodelBreakQuality", "syllableAccuracy", "rhythmConsistency"),
			"feedback": object("Detailed feedback for improvement.", map[string]*Descriptor{
				"strengths": list("Areas where the user performed well.", str("")),
				"areasForImprovement": list("Specific areas that need work.", object("", map[string]*Descriptor{
					"area":       str(""),
					"suggestion": str(""),
					"priority":   enum("", "high", "medium", "low"),
				}, "area", "suggestion", "priority")),
				"practiceRecommendations": list("Specific exercises or techniques to practice.", str("")),
				"overallFeedback":         str("General encouraging feedback and summary. Limit this to 160 characters."),
			}, "strengths", "areasForImprovement", "practiceRecommendations", "overallFeedback"),
		}, "overallScore", "metrics", "feedback"),
	},
	Required: []string{"yodelComparison"},
}
