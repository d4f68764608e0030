package services

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const quoteEndpoint = "https://zenquotes.io/api/random"

type Quote struct {
	Text   string `json:"q"`
	Author string `json:"a"`
}

var fallbackQuote = Quote{
	Text:   "Peace comes from within. Do not seek it without.",
	Author: "Buddha",
}

// QuoteService proxies a public quote API. Any upstream failure falls
// back to a fixed quote; the dashboard never sees an error.
type QuoteService struct {
	endpoint string
	client   *http.Client
}

func NewQuoteService() *QuoteService {
	return &QuoteService{
		endpoint: quoteEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *QuoteService) Random() Quote {
	resp, err := s.client.Get(s.endpoint)

	if err != nil {
		log.Printf("Failed to fetch quote: %v", err)
		return fallbackQuote
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		log.Printf("Quote API returned status %d", resp.StatusCode)
		return fallbackQuote
	}

	var quotes []Quote

	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil || len(quotes) == 0 {
		log.Printf("Failed to decode quote response: %v", err)
		return fallbackQuote
	}

	return quotes[0]
}
