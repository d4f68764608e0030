package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatService_Reply(t *testing.T) {
	var captured chatCompletionRequest

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "Take a deep breath."}},
			},
		})
	}))
	defer upstream.Close()

	service := &ChatService{
		apiKey:   "test-key",
		endpoint: upstream.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	reply, err := service.Reply("I feel stressed", []ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Take a deep breath.", reply)

	// System prompt first, history in the middle, new turn last.
	require.Len(t, captured.Messages, 4)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[3].Role)
	assert.Equal(t, "I feel stressed", captured.Messages[3].Content)
	assert.Equal(t, chatModel, captured.Model)
}

func TestChatService_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	service := &ChatService{
		apiKey:   "test-key",
		endpoint: upstream.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	_, err := service.Reply("hi", nil)
	assert.Error(t, err)
}

func TestChatService_EmptyChoices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer upstream.Close()

	service := &ChatService{
		apiKey:   "test-key",
		endpoint: upstream.URL,
		client:   &http.Client{Timeout: time.Second},
	}

	reply, err := service.Reply("hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "I'm sorry, I couldn't generate a response.", reply)
}
