// Package main implements a CLI tool for smoke-testing a running relay.
//
// It posts a single prompt to the relay's root endpoint with the delegated
// token from the environment and prints the streamed response as it arrives.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"copilot-agent/pkg/models"
	"copilot-agent/pkg/utils"
)

func main() {
	relayURL := flag.String("relay-url", "http://localhost:3000/", "Base URL of the running relay")
	prompt := flag.String("prompt", "Does this interface violate interface segregation?", "The prompt to send")
	token := flag.String("token", "", "Delegated GitHub token (falls back to GITHUB_TOKEN)")
	session := flag.String("session", "", "Relay session token, if the session gate is enabled")
	raw := flag.Bool("raw", false, "Print the raw stream instead of extracted deltas")
	flag.Parse()

	githubToken := *token
	if githubToken == "" {
		githubToken = os.Getenv("GITHUB_TOKEN")
	}
	if githubToken == "" {
		log.Fatal("No delegated token: pass --token or set GITHUB_TOKEN")
	}

	payload := models.ChatRequest{
		Messages: []models.Turn{
			{Role: "user", Content: *prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("Failed to marshal request: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, *relayURL, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-GitHub-Token", githubToken)
	if *session != "" {
		req.Header.Set("Authorization", "Bearer "+*session)
	}

	fmt.Println("🚀 SOLID Reviewer Relay Tester")
	fmt.Println("----------------------------")
	fmt.Printf("Relay: %s\n", *relayURL)
	fmt.Printf("Token: %s\n", utils.MaskToken(githubToken))
	fmt.Printf("Prompt: %s\n", *prompt)
	fmt.Println("\nSending request...")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errBody bytes.Buffer
		errBody.ReadFrom(resp.Body)
		log.Fatalf("Relay returned %s: %s", resp.Status, errBody.String())
	}

	fmt.Println("Response:")
	fmt.Println("----------------------------")
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if *raw {
			fmt.Println(line)
			continue
		}
		printDelta(line)
	}
	fmt.Println()
	fmt.Println("----------------------------")

	if err := scanner.Err(); err != nil {
		log.Fatalf("Stream ended with error: %v", err)
	}
}

// printDelta extracts and prints the content delta from one SSE line.
// Lines that are not well-formed chunks are skipped silently.
func printDelta(line string) {
	if !strings.HasPrefix(line, "data: ") {
		return
	}
	data := strings.TrimPrefix(line, "data: ")
	if data == "[DONE]" {
		return
	}

	var chunk struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(data), &chunk); err != nil {
		return
	}
	for _, choice := range chunk.Choices {
		fmt.Print(choice.Delta.Content)
	}
}
