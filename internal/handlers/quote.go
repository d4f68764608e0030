package handlers

import (
	"net/http"

	"github.com/athera-ai/athera/internal/services"
	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	quotes *services.QuoteService
}

func NewQuoteHandler(quotes *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{quotes: quotes}
}

// Quote mirrors the upstream API shape: an array with a single quote.
func (h *QuoteHandler) Quote(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, []services.Quote{h.quotes.Random()})
}
