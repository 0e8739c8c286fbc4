// Package analyzer sends yodel recordings to the model API and returns the
// structured results: single-performance analysis and reference-vs-user
// comparison.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/yodelstar-api/internal/audio"
	"github.com/BerylCAtieno/yodelstar-api/internal/coaching"
	"github.com/BerylCAtieno/yodelstar-api/internal/logging"
	"github.com/BerylCAtieno/yodelstar-api/internal/metrics"
	"github.com/BerylCAtieno/yodelstar-api/internal/schema"
	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-pro"

const (
	opAnalyze = "analyze"
	opCompare = "compare"
)

// Response schemas are translated once and shared read-only by every call.
var (
	analysisSchema   = schema.MustTranslate(schema.Analysis)
	comparisonSchema = schema.MustTranslate(schema.Comparison)
	analysisPrompt   = coaching.AnalysisPrompt(schema.Analysis.JSON())
)

// Service runs analyses against a Generator. It holds no per-request state.
type Service struct {
	gen     Generator
	model   string
	log     logrus.FieldLogger
	metrics *metrics.Recorder
}

// Option customizes the service.
type Option func(*Service)

// WithModel overrides the model identifier.
func WithModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.model = model
		}
	}
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics records call outcomes on m.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(gen Generator, opts ...Option) *Service {
	s := &Service{
		gen:   gen,
		model: DefaultModel,
		log:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Model reports the configured model identifier.
func (s *Service) Model() string {
	return s.model
}

// Analyze produces the phrase and vocal-event breakdown of one recording.
func (s *Service) Analyze(ctx context.Context, wav []byte) (map[string]any, error) {
	if len(wav) == 0 {
		return nil, fmt.Errorf("%s: %w: empty audio", opAnalyze, ErrInvalidInput)
	}
	s.metrics.ObserveAudio(opAnalyze, len(wav))

	parts := []genai.Part{
		genai.Text(analysisPrompt),
		genai.Blob{MIMEType: audio.MIMEType, Data: wav},
	}
	return s.invoke(ctx, opAnalyze, analysisSchema, parts, logrus.Fields{"audio_bytes": len(wav)})
}

// CompareInput is one reference-vs-user comparison request.
type CompareInput struct {
	Reference []byte
	User      []byte
	History   []coaching.PerformanceRecord
	Profile   coaching.UserProfile
}

// Compare scores the user's recording against the reference. The reference
// part is always sent before the user part; the prompt tells the model the
// first recording is the reference.
func (s *Service) Compare(ctx context.Context, in CompareInput) (map[string]any, error) {
	if len(in.Reference) == 0 {
		return nil, fmt.Errorf("%s: %w: empty reference audio", opCompare, ErrInvalidInput)
	}
	if len(in.User) == 0 {
		return nil, fmt.Errorf("%s: %w: empty user audio", opCompare, ErrInvalidInput)
	}
	s.metrics.ObserveAudio(opCompare, len(in.Reference)+len(in.User))

	prompt := coaching.ComparisonPrompt(coaching.BuildContext(in.History, in.Profile))
	parts := []genai.Part{
		genai.Text(prompt),
		genai.Text(coaching.ReferenceLabel),
		genai.Blob{MIMEType: audio.MIMEType, Data: in.Reference},
		genai.Text(coaching.UserLabel),
		genai.Blob{MIMEType: audio.MIMEType, Data: in.User},
	}
	return s.invoke(ctx, opCompare, comparisonSchema, parts, logrus.Fields{
		"reference_bytes": len(in.Reference),
		"user_bytes":      len(in.User),
		"history":         len(in.History),
		"profile_keys":    len(in.Profile),
	})
}

func (s *Service) invoke(ctx context.Context, op string, respSchema *genai.Schema, parts []genai.Part, fields logrus.Fields) (map[string]any, error) {
	log := s.log.WithFields(fields).WithFields(logrus.Fields{"operation": op, "model": s.model})
	log.Info("sending request to model API")

	start := time.Now()
	text, err := s.gen.Generate(ctx, GenerateRequest{
		Model:  s.model,
		Schema: respSchema,
		Parts:  parts,
	})
	elapsed := time.Since(start)
	if err != nil {
		s.metrics.ObserveGenerate(op, metrics.OutcomeError, elapsed)
		log.WithError(err).Error("model API call failed")
		return nil, fmt.Errorf("%s: %w: %w", op, ErrGenerate, err)
	}

	result, err := DecodeResult(text)
	if err != nil {
		s.metrics.ObserveGenerate(op, metrics.OutcomeDecodeError, elapsed)
		log.WithError(err).WithField("response_chars", len(text)).Error("model response is not valid JSON")
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.ObserveGenerate(op, metrics.OutcomeOK, elapsed)
	log.WithFields(logrus.Fields{
		"response_chars": len(text),
		"elapsed":        elapsed.String(),
	}).Info("model response received")
	return result, nil
}

// IsInputError reports whether err was raised before any external call.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
