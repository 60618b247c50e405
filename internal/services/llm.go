package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// LLMService calls an OpenAI-compatible chat-completions API to generate
// educational content. Base URL, token and model come from the environment
// so any compatible provider can sit behind it.
type LLMService struct {
	baseURL string
	token   string
	model   string
	client  *http.Client
}

var llmService *LLMService

// GetLLMService returns the singleton client.
func GetLLMService() *LLMService {
	if llmService == nil {
		llmService = &LLMService{
			baseURL: os.Getenv("LLM_BASE_URL"),
			token:   os.Getenv("LLM_TOKEN"),
			model:   os.Getenv("LLM_MODEL"),
			client:  &http.Client{Timeout: 60 * time.Second},
		}
	}
	return llmService
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (s *LLMService) chat(system, user string) (string, error) {
	if s.baseURL == "" {
		return "", fmt.Errorf("LLM_BASE_URL not configured")
	}

	reqBody := ChatRequest{
		Model: s.model,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm api returned status %d", resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("llm api returned no choices")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// GenerateLesson produces a short structured lesson on a topic from a
// learner's prompt.
func (s *LLMService) GenerateLesson(topic, prompt string) (string, error) {
	system := "You are an educator on a learning platform. Write a concise, accurate mini-lesson in markdown. Start with a one-line summary, then explain the concept with a worked example."
	user := prompt
	if topic != "" {
		user = fmt.Sprintf("Topic: %s\n\n%s", topic, prompt)
	}
	return s.chat(system, user)
}

// GenerateSummary produces a feed-card summary for a post.
func (s *LLMService) GenerateSummary(title, content string) (string, error) {
	system := "Summarize the following community post in two sentences for a feed preview. Reply with the summary only."
	out, err := s.chat(system, fmt.Sprintf("%s\n\n%s", title, content))
	if err != nil {
		return "", err
	}
	return "[AI] " + out, nil
}
