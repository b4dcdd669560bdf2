package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000"

// Pretty print JSON helper
func prettyPrint(raw []byte) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(raw))
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, LLM calls can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Tutor API Smoke Test\n")

	sessionID := "smoke-session-1"

	// 1. Health
	color.Yellow("\n1. Health Check")
	resp, body, err := sendRequest("GET", "/health", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 2. Readiness
	color.Yellow("\n2. Readiness Check")
	resp, body, err = sendRequest("GET", "/ready", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 3. Greeting (canned path, no LLM round trip)
	color.Yellow("\n3. Ask: Greeting")
	resp, body, err = sendRequest("POST", "/ask", map[string]interface{}{
		"query":      "Hello there, how are you today?",
		"session_id": sessionID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 4. Tutor mode question
	color.Yellow("\n4. Ask: Tutor Mode Technical Question")
	resp, body, err = sendRequest("POST", "/ask", map[string]interface{}{
		"query":      "Can you explain how ROS 2 topics work?",
		"tutor_mode": true,
		"session_id": sessionID,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 5. Session history
	color.Yellow("\n5. Session History")
	resp, body, err = sendRequest("GET", "/sessions/"+sessionID+"/history", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 6. Validation error
	color.Yellow("\n6. Ask: Empty Query (expect 400)")
	resp, body, err = sendRequest("POST", "/ask", map[string]interface{}{
		"query": "   ",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 7. Clear session
	color.Yellow("\n7. Clear Session")
	resp, body, err = sendRequest("DELETE", "/sessions/"+sessionID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	color.Cyan("\n✅ Smoke test finished")
}
