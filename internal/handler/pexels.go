package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/domain"
)

const (
	proxyDefaultPerPage = 12
	proxyDefaultPage    = 1
	batchPerPage        = 6
)

// PexelsHandler serves the /api/pexels proxy.
type PexelsHandler struct {
	proxy   PhotoProxy
	fetcher ImageFetcher
	env     Env
	logger  logger.Logger
}

// NewPexelsHandler builds the handler.
func NewPexelsHandler(proxy PhotoProxy, fetcher ImageFetcher, env Env, log logger.Logger) *PexelsHandler {
	return &PexelsHandler{
		proxy:   proxy,
		fetcher: fetcher,
		env:     env,
		logger:  log,
	}
}

// Search relays one search and returns the provider's JSON as is.
func (h *PexelsHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Query parameter is required"})
		return
	}
	if !h.hasKey() {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Pexels API key not configured"})
		return
	}

	perPage := positiveQueryInt(c, "per_page", proxyDefaultPerPage)
	page := positiveQueryInt(c, "page", proxyDefaultPage)

	body, err := h.proxy.SearchRaw(c.Request.Context(), query, perPage, page)
	if err != nil {
		requestLogger(c, h.logger).Error("Pexels search failed",
			logger.String("query", query),
			logger.Error(err),
		)
		abortWithError(c, h.env, http.StatusInternalServerError, "Failed to fetch images from Pexels", err,
			"An unexpected error occurred. Please try again.")
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Batch searches every query in parallel. Photos are flattened in query
// order without removing duplicates.
func (h *PexelsHandler) Batch(c *gin.Context) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil {
		h.failBatch(c, err)
		return
	}

	var queries []string
	raw, ok := body["queries"]
	if !ok || json.Unmarshal(raw, &queries) != nil || queries == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Queries must be an array"})
		return
	}
	if !h.hasKey() || h.fetcher == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: "Pexels API key not configured"})
		return
	}

	results := h.fetcher.SearchEach(c.Request.Context(), queries, batchPerPage)
	if err := c.Request.Context().Err(); err != nil {
		h.failBatch(c, err)
		return
	}

	photos := []domain.Photo{}
	for _, r := range results {
		photos = append(photos, r.Photos...)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"photos":       photos,
		"queryResults": results,
	})
}

func (h *PexelsHandler) hasKey() bool {
	return h.proxy != nil && h.proxy.HasKey()
}

func (h *PexelsHandler) failBatch(c *gin.Context, err error) {
	requestLogger(c, h.logger).Error("Pexels batch failed", logger.Error(err))
	abortWithError(c, h.env, http.StatusInternalServerError, "Failed to fetch images", err,
		"An unexpected error occurred. Please try again.")
}

func positiveQueryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
