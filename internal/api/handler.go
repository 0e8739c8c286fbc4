// Package api serves the yodel analysis endpoints over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/BerylCAtieno/yodelstar-api/internal/analyzer"
	"github.com/BerylCAtieno/yodelstar-api/internal/audio"
	"github.com/BerylCAtieno/yodelstar-api/internal/logging"
	"github.com/BerylCAtieno/yodelstar-api/internal/metrics"
	"github.com/BerylCAtieno/yodelstar-api/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Analyzer is the analysis service the handlers call into.
type Analyzer interface {
	Analyze(ctx context.Context, wav []byte) (map[string]any, error)
	Compare(ctx context.Context, in analyzer.CompareInput) (map[string]any, error)
}

// Options configures a Handler.
type Options struct {
	Logger  logrus.FieldLogger
	Metrics *metrics.Recorder

	// StaticDir holds the built frontend. Empty disables static serving.
	StaticDir string

	// GeminiConfigured is reported by the health endpoint.
	GeminiConfigured bool
}

type Handler struct {
	svc     Analyzer
	log     logrus.FieldLogger
	metrics *metrics.Recorder

	staticDir        string
	geminiConfigured bool
	now              func() time.Time
}

func NewHandler(svc Analyzer, opts Options) *Handler {
	h := &Handler{
		svc:              svc,
		log:              opts.Logger,
		metrics:          opts.Metrics,
		staticDir:        opts.StaticDir,
		geminiConfigured: opts.GeminiConfigured,
		now:              time.Now,
	}
	if h.log == nil {
		h.log = logging.Discard()
	}
	return h
}

// AnalyzeYodel handles POST /analyze-yodel.
func (h *Handler) AnalyzeYodel(c *gin.Context) {
	log := h.requestLog(c)
	log.Info("received analyze-yodel request")

	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.WavBase64 == "" {
		log.Warn("invalid request - missing wav_base64")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No base64 encoded wav file part"})
		return
	}
	log.WithField("base64_chars", len(req.WavBase64)).Debug("decoding audio")

	wav, ok := h.decodeAudio(c, log, "wav_base64", req.WavBase64)
	if !ok {
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), wav)
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	log.Info("analysis completed successfully")
	c.JSON(http.StatusOK, result)
}

// CompareYodel handles POST /compare-yodel.
func (h *Handler) CompareYodel(c *gin.Context) {
	log := h.requestLog(c)
	log.Info("received compare-yodel request")

	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Warn("invalid request - body is not JSON")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No JSON data provided"})
		return
	}
	if req.OriginalWavBase64 == "" {
		log.Warn("invalid request - missing original_wav_base64")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No original_wav_base64 provided"})
		return
	}
	if req.UserWavBase64 == "" {
		log.Warn("invalid request - missing user_wav_base64")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "No user_wav_base64 provided"})
		return
	}

	log.WithFields(logrus.Fields{
		"past_performances": len(req.PastPerformances),
		"user_info_keys":    len(req.UserInfo),
	}).Info("comparison context received")

	reference, ok := h.decodeAudio(c, log, "original_wav_base64", req.OriginalWavBase64)
	if !ok {
		return
	}
	user, ok := h.decodeAudio(c, log, "user_wav_base64", req.UserWavBase64)
	if !ok {
		return
	}

	result, err := h.svc.Compare(c.Request.Context(), analyzer.CompareInput{
		Reference: reference,
		User:      user,
		History:   req.PastPerformances,
		Profile:   req.UserInfo,
	})
	if err != nil {
		h.writeServiceError(c, log, err)
		return
	}

	log.Info("comparison completed successfully")
	c.JSON(http.StatusOK, result)
}

// MockCompareYodel handles GET /mock-compare-yodel with a fixed result.
func (h *Handler) MockCompareYodel(c *gin.Context) {
	h.requestLog(c).Info("serving mock comparison")
	c.JSON(http.StatusOK, models.MockComparison())
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "healthy",
		"timestamp":         h.now().Format(time.RFC3339Nano),
		"gemini_configured": h.geminiConfigured,
	})
}

// decodeAudio decodes one base64 field and logs its WAV header. It writes the
// 400 response itself and reports false when the field is not valid base64.
func (h *Handler) decodeAudio(c *gin.Context, log logrus.FieldLogger, field, encoded string) ([]byte, bool) {
	wav, err := audio.DecodeBase64(encoded)
	if err != nil {
		log.WithError(err).WithField("field", field).Warn("invalid base64 audio")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid base64 in " + field,
			Type:    "InputError",
			Details: err.Error(),
		})
		return nil, false
	}

	fields := logrus.Fields{"field": field, "wav_bytes": len(wav)}
	info, err := audio.Probe(wav)
	if err != nil {
		log.WithFields(fields).WithError(err).Warn("audio is not a readable WAV, forwarding as is")
		return wav, true
	}
	log.WithFields(fields).WithFields(logrus.Fields{
		"sample_rate": info.SampleRate,
		"channels":    info.Channels,
		"bit_depth":   info.BitDepth,
		"duration":    info.Duration.String(),
	}).Info("decoded audio")
	return wav, true
}

func (h *Handler) writeServiceError(c *gin.Context, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, analyzer.ErrInvalidInput):
		log.WithError(err).Warn("request rejected")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Type: "InputError"})
	case errors.Is(err, analyzer.ErrDecode):
		log.WithError(err).Error("JSON decode error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Invalid JSON response from Gemini",
			Type:    "JSONDecodeError",
			Details: err.Error(),
		})
	default:
		log.WithError(err).Error("unexpected error")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error(), Type: "GenerateError"})
	}
}

func (h *Handler) requestLog(c *gin.Context) logrus.FieldLogger {
	return h.log.WithField("request_id", c.GetString(requestIDKey))
}
