package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	purple = color.New(color.FgMagenta).SprintFunc()
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// interview answers used by the interview and profile tests
type answers struct {
	Name          string `json:"name"`
	Age           string `json:"age"`
	Gender        string `json:"gender"`
	Profession    string `json:"profession"`
	Hobbies       string `json:"hobbies"`
	Vibe          string `json:"vibe"`
	TargetPartner string `json:"targetPartner"`
	Tone          string `json:"tone"`
}

func defaultAnswers() answers {
	return answers{
		Name:          "Alex",
		Age:           "28",
		Gender:        "Non-binary",
		Profession:    "Graphic Designer",
		Hobbies:       "Hiking, film photography, indie coffee shops",
		Vibe:          "Creative, a little sarcastic, loyal",
		TargetPartner: "Someone curious who loves spontaneous road trips",
		Tone:          "funny",
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the service")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, tones, interview, profile, custom")
	name := flag.String("name", "", "Name for the custom interview")
	tone := flag.String("tone", "bold", "Tone for the custom interview")
	photos := flag.String("photos", "", "Comma-separated photo paths for the custom interview")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("Romantic Brand Builder - Test Suite")
	fmt.Printf("%s\n\n", cyan("Base URL: "+*baseURL))

	var ok bool
	switch *testType {
	case "all":
		client.runAllTests()
		return
	case "health":
		ok = client.testHealthCheck()
	case "agent-card":
		ok = client.testAgentCard()
	case "tones":
		ok = client.testTones()
	case "interview":
		ok = client.testInterview()
	case "profile":
		ok = client.testA2AProfile()
	case "custom":
		if *name == "" {
			printError("Name is required for custom test. Use -name flag")
			os.Exit(1)
		}
		a := defaultAnswers()
		a.Name = *name
		a.Tone = *tone
		var paths []string
		if *photos != "" {
			paths = strings.Split(*photos, ",")
		}
		ok = client.runInterview(a, paths)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, tones, interview, profile, custom")
		os.Exit(1)
	}

	if !ok {
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Tones", tc.testTones},
		{"Interview", tc.testInterview},
		{"A2A Profile", tc.testA2AProfile},
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
	fmt.Println(green(fmt.Sprintf("Passed: %d", passed)))
	fmt.Println(red(fmt.Sprintf("Failed: %d", failed)))
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.do(http.MethodGet, "/health", "", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}
	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.do(http.MethodGet, "/.well-known/agent.json", "", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var agentCard map[string]any
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	for _, field := range []string{"name", "description", "version", "capabilities", "endpoints"} {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testTones() bool {
	printTestHeader("Testing Tone Options")

	status, body, err := tc.do(http.MethodGet, "/api/tones", "", nil)
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Request failed: status %d, err %v", status, err))
		return false
	}

	var resp struct {
		Tones []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
			Emoji string `json:"emoji"`
		} `json:"tones"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Tones) == 0 {
		printError("Expected a non-empty tone list")
		return false
	}
	for _, t := range resp.Tones {
		fmt.Printf("  %s %s (%s)\n", t.Emoji, t.Label, t.ID)
	}

	printSuccess(fmt.Sprintf("%d tones available", len(resp.Tones)))
	return true
}

func (tc *TestClient) testInterview() bool {
	return tc.runInterview(defaultAnswers(), nil)
}

type sessionState struct {
	ID   string `json:"id"`
	Step struct {
		Index int    `json:"index"`
		Name  string `json:"name"`
	} `json:"step"`
	Status string `json:"status"`
	Error  string `json:"error"`
}

// runInterview drives a full REST interview: create, answer, attach photos,
// advance through every step and wait for the generated profile.
func (tc *TestClient) runInterview(a answers, photoPaths []string) bool {
	printTestHeader("Testing Interview Flow")

	status, body, err := tc.do(http.MethodPost, "/api/sessions", "", nil)
	if err != nil || status != http.StatusCreated {
		printError(fmt.Sprintf("Create session failed: status %d, err %v", status, err))
		return false
	}
	var state sessionState
	if err := json.Unmarshal(body, &state); err != nil {
		printError(fmt.Sprintf("Invalid session response: %v", err))
		return false
	}
	base := "/api/sessions/" + state.ID
	fmt.Printf("%s %s\n", cyan("Session:"), state.ID)

	fields := map[string]string{
		"name":          a.Name,
		"age":           a.Age,
		"gender":        a.Gender,
		"profession":    a.Profession,
		"hobbies":       a.Hobbies,
		"vibe":          a.Vibe,
		"targetPartner": a.TargetPartner,
		"tone":          a.Tone,
	}
	for field, value := range fields {
		payload, _ := json.Marshal(map[string]string{"field": field, "value": value})
		status, body, err := tc.do(http.MethodPatch, base+"/fields", "application/json", payload)
		if err != nil || status != http.StatusOK {
			printError(fmt.Sprintf("Setting %s failed: status %d, err %v, body %s", field, status, err, body))
			return false
		}
	}

	if len(photoPaths) > 0 {
		if !tc.attachPhotos(base, photoPaths) {
			return false
		}
	}

	for {
		status, body, err := tc.do(http.MethodPost, base+"/advance", "", nil)
		if err != nil {
			printError(fmt.Sprintf("Advance failed: %v", err))
			return false
		}
		if status == http.StatusAccepted {
			fmt.Println(yellow("Interview submitted, generating profile..."))
			break
		}
		if status != http.StatusOK {
			printError(fmt.Sprintf("Advance returned %d: %s", status, body))
			return false
		}
		_ = json.Unmarshal(body, &state)
		fmt.Printf("  -> step %d (%s)\n", state.Step.Index, state.Step.Name)
	}

	status, body, err = tc.do(http.MethodGet, base+"/result?wait=60s&format=markdown", "", nil)
	if err != nil {
		printError(fmt.Sprintf("Result request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	printSuccess("Profile generated successfully")
	fmt.Printf("\n%s\n", green("Generated Profile:"))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println(string(body))
	fmt.Println(strings.Repeat("=", 80))
	return true
}

func (tc *TestClient) attachPhotos(base string, paths []string) bool {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range paths {
		data, err := os.ReadFile(strings.TrimSpace(p))
		if err != nil {
			printError(fmt.Sprintf("Reading %s failed: %v", p, err))
			return false
		}
		fw, err := mw.CreateFormFile("images", filepath.Base(p))
		if err != nil {
			printError(err.Error())
			return false
		}
		_, _ = fw.Write(data)
	}
	_ = mw.Close()

	status, body, err := tc.do(http.MethodPost, base+"/images", mw.FormDataContentType(), buf.Bytes())
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Attaching photos failed: status %d, err %v, body %s", status, err, body))
		return false
	}

	var resp struct {
		Notices []struct {
			Message string `json:"message"`
		} `json:"notices"`
	}
	_ = json.Unmarshal(body, &resp)
	for _, n := range resp.Notices {
		fmt.Println(yellow("  notice: " + n.Message))
	}
	printSuccess(fmt.Sprintf("Attached %d photo file(s)", len(paths)))
	return true
}

func (tc *TestClient) testA2AProfile() bool {
	printTestHeader("Testing A2A Profile Generation")

	a := defaultAnswers()
	request := map[string]any{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]any{
			"message": map[string]any{
				"kind": "message",
				"role": "user",
				"parts": []map[string]any{
					{"kind": "data", "data": a},
				},
			},
			"configuration": map[string]any{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Println(yellow("Request:"))
	fmt.Println(string(jsonData))
	fmt.Println()

	status, body, err := tc.do(http.MethodPost, "/a2a/profile", "application/json", jsonData)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response struct {
		Error  json.RawMessage `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
			Artifacts []json.RawMessage `json:"artifacts"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(response.Error) > 0 {
		printError("Request returned an error")
		printJSON(response.Error)
		return false
	}

	if response.Result.Status.State != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", response.Result.Status.State))
		for _, p := range response.Result.Status.Message.Parts {
			fmt.Println(p.Text)
		}
		return false
	}

	printSuccess("Profile generation completed successfully")

	fmt.Printf("\n%s\n", green("Generated Profile:"))
	fmt.Println(strings.Repeat("=", 80))
	for _, p := range response.Result.Status.Message.Parts {
		fmt.Println(p.Text)
	}
	fmt.Println(strings.Repeat("=", 80))

	if len(response.Result.Artifacts) > 0 {
		fmt.Printf("\n%s %d\n", purple("Artifacts:"), len(response.Result.Artifacts))
	}
	return true
}

func (tc *TestClient) do(method, path, contentType string, payload []byte) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func printHeader(text string) {
	line := strings.Repeat("=", len(text)+4)
	fmt.Printf("\n%s\n%s\n%s\n\n", blue(line), blue("= "+text+" ="), blue(line))
}

func printTestHeader(text string) {
	fmt.Println(cyan("[TEST] " + text))
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Println(green("✓ " + text))
}

func printError(text string) {
	fmt.Println(red("✗ " + text))
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%s\n%s\n", yellow("Response:"), prettyJSON.String())
	}
}
