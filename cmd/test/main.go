package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

var (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string, timeout time.Duration) *TestClient {
	return &TestClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:5002", "Base URL of the API")
	testType := flag.String("test", "all", "Test type: all, health, mock, analyze, compare")
	wavPath := flag.String("wav", "", "WAV file to analyze (analyze test)")
	referencePath := flag.String("reference", "", "Reference WAV file (compare test)")
	userPath := flag.String("user", "", "User WAV file (compare test)")
	timeout := flag.Duration("timeout", 5*time.Minute, "Per-request timeout")
	flag.Parse()

	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		disableColors()
	}

	client := NewTestClient(*baseURL, *timeout)

	printHeader("Yodelstar API - Test Suite")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, client.baseURL, colorReset)

	switch *testType {
	case "all":
		client.runAllTests(*wavPath, *referencePath, *userPath)
	case "health":
		exitOn(client.testHealthCheck())
	case "mock":
		exitOn(client.testMockComparison())
	case "analyze":
		if *wavPath == "" {
			printError("A WAV file is required for the analyze test. Use -wav flag")
			os.Exit(1)
		}
		exitOn(client.testAnalyze(*wavPath))
	case "compare":
		if *referencePath == "" || *userPath == "" {
			printError("Both -reference and -user are required for the compare test")
			os.Exit(1)
		}
		exitOn(client.testCompare(*referencePath, *userPath))
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, mock, analyze, compare")
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests(wavPath, referencePath, userPath string) {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Mock Comparison", tc.testMockComparison},
		{"Missing User Audio", tc.testMissingUserAudio},
	}
	if wavPath != "" {
		tests = append(tests, struct {
			name string
			fn   func() bool
		}{"Analyze", func() bool { return tc.testAnalyze(wavPath) }})
	}
	if referencePath != "" && userPath != "" {
		tests = append(tests, struct {
			name string
			fn   func() bool
		}{"Compare", func() bool { return tc.testCompare(referencePath, userPath) }})
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, ok := tc.get("/health")
	if !ok {
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var health map[string]interface{}
	if err := json.Unmarshal(body, &health); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if health["status"] != "healthy" {
		printError(fmt.Sprintf("Expected status 'healthy', got '%v'", health["status"]))
		return false
	}
	if configured, _ := health["gemini_configured"].(bool); !configured {
		fmt.Printf("%sWarning: server reports no Gemini API key%s\n", colorYellow, colorReset)
	}

	printSuccess("Health check passed")
	printJSON(body)
	return true
}

func (tc *TestClient) testMockComparison() bool {
	printTestHeader("Testing Mock Comparison Endpoint")

	status, body, ok := tc.get("/mock-compare-yodel")
	if !ok {
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if !checkComparison(body) {
		return false
	}

	printSuccess("Mock comparison is valid")
	return true
}

func (tc *TestClient) testMissingUserAudio() bool {
	printTestHeader("Testing Compare Validation")

	status, body, ok := tc.post("/compare-yodel", map[string]interface{}{
		"original_wav_base64": base64.StdEncoding.EncodeToString([]byte("RIFF")),
	})
	if !ok {
		return false
	}
	if status != http.StatusBadRequest {
		printError(fmt.Sprintf("Expected status 400, got %d", status))
		return false
	}

	var errBody map[string]interface{}
	if err := json.Unmarshal(body, &errBody); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if errBody["error"] != "No user_wav_base64 provided" {
		printError(fmt.Sprintf("Unexpected error message: %v", errBody["error"]))
		return false
	}

	printSuccess("Missing user audio is rejected")
	return true
}

func (tc *TestClient) testAnalyze(wavPath string) bool {
	printTestHeader("Testing Yodel Analysis")
	fmt.Printf("%sRecording:%s %s\n\n", colorCyan, colorReset, wavPath)

	encoded, ok := encodeFile(wavPath)
	if !ok {
		return false
	}

	start := time.Now()
	status, body, ok := tc.post("/analyze-yodel", map[string]interface{}{"wav_base64": encoded})
	if !ok {
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if _, ok := result["yodelAnalysis"]; !ok {
		printError("Missing required field: yodelAnalysis")
		return false
	}

	printSuccess(fmt.Sprintf("Analysis completed in %s", time.Since(start).Round(time.Millisecond)))
	printJSON(body)
	return true
}

func (tc *TestClient) testCompare(referencePath, userPath string) bool {
	printTestHeader("Testing Yodel Comparison")
	fmt.Printf("%sReference:%s %s\n", colorCyan, colorReset, referencePath)
	fmt.Printf("%sUser:%s %s\n\n", colorCyan, colorReset, userPath)

	reference, ok := encodeFile(referencePath)
	if !ok {
		return false
	}
	user, ok := encodeFile(userPath)
	if !ok {
		return false
	}

	start := time.Now()
	status, body, ok := tc.post("/compare-yodel", map[string]interface{}{
		"original_wav_base64": reference,
		"user_wav_base64":     user,
		"user_info": map[string]interface{}{
			"experience_level": "beginner",
			"goals":            "Smoother yodel breaks",
		},
	})
	if !ok {
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}
	if !checkComparison(body) {
		return false
	}

	printSuccess(fmt.Sprintf("Comparison completed in %s", time.Since(start).Round(time.Millisecond)))
	printJSON(body)
	return true
}

func (tc *TestClient) get(path string) (int, []byte, bool) {
	url := tc.baseURL + path
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return 0, nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, true
}

func (tc *TestClient) post(path string, payload interface{}) (int, []byte, bool) {
	url := tc.baseURL + path
	fmt.Printf("POST %s\n", url)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		printError(fmt.Sprintf("Failed to encode request: %v", err))
		return 0, nil, false
	}

	resp, err := tc.client.Post(url, "application/json", bytes.NewReader(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return 0, nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, true
}

func checkComparison(body []byte) bool {
	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	comparison, ok := result["yodelComparison"].(map[string]interface{})
	if !ok {
		printError("Missing required field: yodelComparison")
		return false
	}
	for _, field := range []string{"overallScore", "metrics", "feedback"} {
		if _, ok := comparison[field]; !ok {
			printError(fmt.Sprintf("Missing required field: yodelComparison.%s", field))
			return false
		}
	}

	if score, ok := comparison["overallScore"].(float64); ok {
		fmt.Printf("%sOverall Score:%s %.1f/100\n", colorGreen, colorReset, score)
	}
	return true
}

func encodeFile(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		printError(fmt.Sprintf("Failed to read %s: %v", path, err))
		return "", false
	}
	return base64.StdEncoding.EncodeToString(data), true
}

func exitOn(ok bool) {
	if !ok {
		os.Exit(1)
	}
}

func disableColors() {
	colorReset, colorRed, colorGreen, colorYellow, colorBlue, colorCyan = "", "", "", "", "", ""
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
