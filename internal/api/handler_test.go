package api_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/BerylCAtieno/yodelstar-api/internal/analyzer"
	"github.com/BerylCAtieno/yodelstar-api/internal/api"
	"github.com/BerylCAtieno/yodelstar-api/internal/metrics"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []analyzer.GenerateRequest
}

func (f *fakeGenerator) Generate(_ context.Context, req analyzer.GenerateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// shortWAV returns a quarter second of 16-bit mono silence.
func shortWAV(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "short.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	if err := enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: 16000, NumChannels: 1},
		Data:           make([]int, 4000),
		SourceBitDepth: 16,
	}); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

type testServer struct {
	gen     *fakeGenerator
	metrics *metrics.Recorder
	router  *gin.Engine
}

func newTestServer(reply string, opts api.Options) *testServer {
	gen := &fakeGenerator{reply: reply}
	rec := metrics.New()
	svc := analyzer.NewService(gen, analyzer.WithMetrics(rec))
	opts.Metrics = rec
	return &testServer{
		gen:     gen,
		metrics: rec,
		router:  api.NewRouter(api.NewHandler(svc, opts)),
	}
}

func (s *testServer) do(method, target string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		So(err, ShouldBeNil)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	So(json.Unmarshal(w.Body.Bytes(), &out), ShouldBeNil)
	return out
}

const analysisReply = `{"yodelAnalysis": {"video / audioSource": "00:00-00:01", "totalYodelSyllables": 2, "phrases": []}}`

func TestAnalyzeYodel(t *testing.T) {
	Convey("Given a server with a mocked model API", t, func() {
		srv := newTestServer(analysisReply, api.Options{})
		encoded := base64.StdEncoding.EncodeToString(shortWAV(t))

		Convey("A valid recording returns the parsed model reply", func() {
			w := srv.do(http.MethodPost, "/analyze-yodel", map[string]string{"wav_base64": encoded})

			So(w.Code, ShouldEqual, http.StatusOK)
			var want map[string]any
			So(json.Unmarshal([]byte(analysisReply), &want), ShouldBeNil)
			So(decodeBody(w), ShouldResemble, want)
			So(srv.gen.callCount(), ShouldEqual, 1)
			So(w.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})

		Convey("A missing field is rejected", func() {
			w := srv.do(http.MethodPost, "/analyze-yodel", map[string]string{})

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(w), ShouldResemble, map[string]any{"error": "No base64 encoded wav file part"})
			So(srv.gen.callCount(), ShouldEqual, 0)
		})

		Convey("A body that is not JSON is rejected", func() {
			w := srv.do(http.MethodPost, "/analyze-yodel", "not json")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(srv.gen.callCount(), ShouldEqual, 0)
		})

		Convey("Malformed base64 is rejected without an external call", func() {
			w := srv.do(http.MethodPost, "/analyze-yodel", map[string]string{"wav_base64": "%%%not-base64%%%"})

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decodeBody(w)
			So(body["error"], ShouldEqual, "Invalid base64 in wav_base64")
			So(body["type"], ShouldEqual, "InputError")
			So(body["details"], ShouldNotBeEmpty)
			So(srv.gen.callCount(), ShouldEqual, 0)
		})

		Convey("A reply that is not JSON is reported as a decode failure", func() {
			srv.gen.reply = "sorry, no"
			w := srv.do(http.MethodPost, "/analyze-yodel", map[string]string{"wav_base64": encoded})

			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			body := decodeBody(w)
			So(body["error"], ShouldEqual, "Invalid JSON response from Gemini")
			So(body["type"], ShouldEqual, "JSONDecodeError")
		})

		Convey("An upstream failure is reported as a generic failure", func() {
			srv.gen.err = errors.New("permission denied")
			w := srv.do(http.MethodPost, "/analyze-yodel", map[string]string{"wav_base64": encoded})

			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			body := decodeBody(w)
			So(body["type"], ShouldEqual, "GenerateError")
			So(body["error"], ShouldContainSubstring, "permission denied")
		})

		Convey("Bytes that are not WAV are still forwarded", func() {
			raw := base64.StdEncoding.EncodeToString([]byte("not really audio"))
			w := srv.do(http.MethodPost, "/analyze-yodel", map[string]string{"wav_base64": raw})
			So(w.Code, ShouldEqual, http.StatusOK)
			So(srv.gen.callCount(), ShouldEqual, 1)
		})
	})
}

func TestCompareYodel(t *testing.T) {
	Convey("Given a server with a mocked model API", t, func() {
		srv := newTestServer(`{"yodelComparison": {"overallScore": 64}}`, api.Options{})
		reference := base64.StdEncoding.EncodeToString([]byte("reference"))
		user := base64.StdEncoding.EncodeToString([]byte("user"))

		Convey("A missing user recording is rejected", func() {
			w := srv.do(http.MethodPost, "/compare-yodel", map[string]string{"original_wav_base64": reference})

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(w), ShouldResemble, map[string]any{"error": "No user_wav_base64 provided"})
			So(srv.gen.callCount(), ShouldEqual, 0)
		})

		Convey("A missing reference recording is rejected", func() {
			w := srv.do(http.MethodPost, "/compare-yodel", map[string]string{"user_wav_base64": user})

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(w), ShouldResemble, map[string]any{"error": "No original_wav_base64 provided"})
		})

		Convey("An empty body is rejected", func() {
			w := srv.do(http.MethodPost, "/compare-yodel", nil)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(w), ShouldResemble, map[string]any{"error": "No JSON data provided"})
		})

		Convey("Malformed user base64 is rejected without an external call", func() {
			w := srv.do(http.MethodPost, "/compare-yodel", map[string]string{
				"original_wav_base64": reference,
				"user_wav_base64":     "***",
			})

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(decodeBody(w)["error"], ShouldEqual, "Invalid base64 in user_wav_base64")
			So(srv.gen.callCount(), ShouldEqual, 0)
		})

		Convey("A full request sends both recordings, reference first, with context", func() {
			w := srv.do(http.MethodPost, "/compare-yodel", map[string]any{
				"original_wav_base64": reference,
				"user_wav_base64":     user,
				"past_performances":   []any{map[string]any{"overallScore": 55}},
				"user_info":           map[string]any{"experience_level": "advanced"},
			})

			So(w.Code, ShouldEqual, http.StatusOK)
			So(decodeBody(w)["yodelComparison"], ShouldResemble, map[string]any{"overallScore": 64.0})
			So(srv.gen.callCount(), ShouldEqual, 1)

			parts := srv.gen.calls[0].Parts
			So(parts, ShouldHaveLength, 5)
			So(parts[2].(genai.Blob).Data, ShouldResemble, []byte("reference"))
			So(parts[4].(genai.Blob).Data, ShouldResemble, []byte("user"))
			prompt := string(parts[0].(genai.Text))
			So(prompt, ShouldContainSubstring, "Overall Score: 55/100")
			So(prompt, ShouldContainSubstring, "- Experience Level: advanced")
		})
	})
}

func TestAuxiliaryRoutes(t *testing.T) {
	Convey("Given a server with a static frontend", t, func() {
		dir := t.TempDir()
		So(os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644), ShouldBeNil)
		So(os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644), ShouldBeNil)

		srv := newTestServer("{}", api.Options{StaticDir: dir, GeminiConfigured: true})

		Convey("The health check reports the API key state", func() {
			w := srv.do(http.MethodGet, "/health", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			body := decodeBody(w)
			So(body["status"], ShouldEqual, "healthy")
			So(body["gemini_configured"], ShouldEqual, true)
			So(body["timestamp"], ShouldNotBeEmpty)
		})

		Convey("The mock comparison is well formed", func() {
			w := srv.do(http.MethodGet, "/mock-compare-yodel", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			comp := decodeBody(w)["yodelComparison"].(map[string]any)
			So(comp["overallScore"], ShouldEqual, 78.5)
			So(comp["metrics"], ShouldContainKey, "rhythmConsistency")
			So(srv.gen.callCount(), ShouldEqual, 0)
		})

		Convey("Assets are served and unknown paths fall back to index.html", func() {
			w := srv.do(http.MethodGet, "/app.js", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "console.log(1)")

			w = srv.do(http.MethodGet, "/history/42", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "<html>app</html>")

			w = srv.do(http.MethodGet, "/", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "<html>app</html>")
		})

		Convey("Metrics are exposed after traffic", func() {
			srv.do(http.MethodGet, "/health", nil)
			w := srv.do(http.MethodGet, "/metrics", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `yodel_http_requests_total{method="GET",route="/health",status="200"} 1`)
		})
	})

	Convey("Given a server without a frontend build", t, func() {
		srv := newTestServer("{}", api.Options{})

		w := srv.do(http.MethodGet, "/", nil)
		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(decodeBody(w), ShouldResemble, map[string]any{"error": "Frontend not available"})

		w = srv.do(http.MethodGet, "/anything", nil)
		So(w.Code, ShouldEqual, http.StatusNotFound)
		So(decodeBody(w), ShouldResemble, map[string]any{"error": "File not found"})
	})
}
