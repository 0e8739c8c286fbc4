package coaching

import "fmt"

// Labels sent as text parts ahead of each recording in a comparison request.
const (
	ReferenceLabel = "Original/Reference Performance:"
	UserLabel      = "User's Performance:"
)

// AnalysisPrompt builds the instruction for single-performance analysis.
// shapeJSON is the expected result shape rendered as JSON-Schema text.
func AnalysisPrompt(shapeJSON string) string {
	return fmt.Sprintf(`Analyze the provided audio recording of a yodeling performance and extract the following information in JSON format. The JSON output must strictly adhere to the following schema:

%s`, shapeJSON)
}

// ComparisonPrompt wraps the personalization context in the fixed
// comparison guidance. The first recording is the reference.
func ComparisonPrompt(context string) string {
	return fmt.Sprintf(`Compare these two yodeling performances and provide a detailed analysis. The first audio file is the original/reference performance, and the second is the user's attempt.
%s
Based on the context above, analyze and compare the following aspects:
1. Pitch accuracy - How well does the user match the original pitches?
2. Timing accuracy - How well does the user match the timing of phrases and syllables?
3. Yodel break quality - How smooth and controlled are the transitions between chest and head voice?
4. Syllable accuracy - How well does the user match the original syllables and pronunciation?
5. Rhythm consistency - How well does the user maintain consistent rhythm and tempo?

IMPORTANT PERSONALIZATION GUIDELINES:
- If this user has past performances, compare their current performance to their historical progress
- Acknowledge improvement or areas where they may have regressed
- Reference specific areas they've been working on based on past feedback
- Adjust the difficulty and specificity of recommendations based on their experience level
- Provide encouragement based on their journey and progress trends
- If they're a beginner, focus on fundamentals; if advanced, provide more nuanced feedback
- Consider their stated goals and challenges when providing recommendations

Provide constructive feedback including strengths, areas for improvement, and specific practice recommendations.

Be encouraging but honest in your assessment. Focus on specific, actionable feedback that will help the user improve their yodeling technique. Make the feedback personal and relevant to their journey.`, context)
}
