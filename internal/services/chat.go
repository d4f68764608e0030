package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	chatEndpoint = "https://api.groq.com/openai/v1/chat/completions"
	chatModel    = "llama-3.3-70b-versatile"

	systemPrompt = `You are Athera, an empathetic AI wellness companion. You help users with:
- Mental wellness and emotional support
- Guided meditation and mindfulness
- Mood tracking insights
- General wellness advice

Be warm, supportive, and encouraging. Keep responses concise but helpful.`
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// ChatService forwards chat turns to an OpenAI-compatible completions
// API. Nothing about the conversation is stored or interpreted here.
type ChatService struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewChatService(apiKey string) *ChatService {
	return &ChatService{
		apiKey:   apiKey,
		endpoint: chatEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Model reports which upstream model replies are generated with.
func (s *ChatService) Model() string {
	return chatModel
}

func (s *ChatService) Reply(message string, history []ChatMessage) (string, error) {
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, ChatMessage{Role: "user", Content: message})

	payload := chatCompletionRequest{
		Model:       chatModel,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1024,
	}

	body, err := json.Marshal(payload)

	if err != nil {
		return "", fmt.Errorf("failed to marshal chat payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewBuffer(body))

	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)

	if err != nil {
		return "", fmt.Errorf("failed to send chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("chat API returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse

	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return "I'm sorry, I couldn't generate a response.", nil
	}

	return completion.Choices[0].Message.Content, nil
}
