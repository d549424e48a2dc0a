package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/images"
)

type imagesRequest struct {
	Industry            string `json:"industry"`
	BusinessDescription string `json:"businessDescription"`
}

// ImagesHandler serves POST /api/images.
type ImagesHandler struct {
	fetcher     ImageFetcher
	hasPhotoKey bool
	mockDelay   time.Duration
	env         Env
	logger      logger.Logger
}

// NewImagesHandler builds the handler. Without a usable photo key it
// always serves the mock set.
func NewImagesHandler(fetcher ImageFetcher, hasPhotoKey bool, mockDelay time.Duration, env Env, log logger.Logger) *ImagesHandler {
	return &ImagesHandler{
		fetcher:     fetcher,
		hasPhotoKey: hasPhotoKey,
		mockDelay:   mockDelay,
		env:         env,
		logger:      log,
	}
}

// Curate plans queries for the brief, fetches photos and sorts them into
// page slots.
func (h *ImagesHandler) Curate(c *gin.Context) {
	log := requestLogger(c, h.logger)

	var req imagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid images request body", logger.Error(err))
		h.fail(c, err)
		return
	}

	if req.Industry == "" || req.BusinessDescription == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error: "Industry and business description are required",
		})
		return
	}

	if h.env.Test || !h.hasPhotoKey || h.fetcher == nil {
		h.serveMock(c)
		return
	}

	queries := images.SelectQueries(images.PlanQueries(req.Industry, req.BusinessDescription))
	photos := h.fetcher.FetchAndDedupe(c.Request.Context(), queries)
	if err := c.Request.Context().Err(); err != nil {
		h.fail(c, err)
		return
	}

	log.Info("Images curated",
		logger.String("industry", req.Industry),
		logger.Int("total_photos", len(photos)),
	)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"images":      images.Categorize(photos),
		"totalPhotos": len(photos),
		"queries":     queries,
	})
}

func (h *ImagesHandler) serveMock(c *gin.Context) {
	if h.mockDelay > 0 {
		timer := time.NewTimer(h.mockDelay)
		defer timer.Stop()
		select {
		case <-c.Request.Context().Done():
			h.fail(c, c.Request.Context().Err())
			return
		case <-timer.C:
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"images":      images.MockCategorizedImages(),
		"totalPhotos": images.MockTotalPhotos,
		"queries":     images.MockQueries,
	})
}

func (h *ImagesHandler) fail(c *gin.Context, err error) {
	abortWithError(c, h.env, http.StatusInternalServerError, "Failed to curate images", err,
		"An unexpected error occurred. Please try again.")
}
