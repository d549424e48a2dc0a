package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/domain"
	"github.com/kalabar794/landgenai/internal/generator"
	"github.com/kalabar794/landgenai/internal/keys"
)

// GenerateHandler serves POST /api/generate.
type GenerateHandler struct {
	live   generator.ContentGenerator
	mock   generator.ContentGenerator
	keys   keys.Status
	env    Env
	logger logger.Logger
}

// NewGenerateHandler builds the handler. mock serves test mode and
// deployments without a usable LLM key.
func NewGenerateHandler(
	live, mock generator.ContentGenerator,
	status keys.Status,
	env Env,
	log logger.Logger,
) *GenerateHandler {
	return &GenerateHandler{
		live:   live,
		mock:   mock,
		keys:   status,
		env:    env,
		logger: log,
	}
}

// Generate validates the brief and returns landing page copy.
func (h *GenerateHandler) Generate(c *gin.Context) {
	log := requestLogger(c, h.logger)

	if h.env.Production && !h.keys.HasValidLLMKey {
		log.Error("Generation requested without a configured LLM key")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, errorResponse{
			Error:   "Service unavailable",
			Details: "AI service not configured. Please contact support.",
		})
		return
	}

	var brief domain.MarketingBrief
	if err := c.ShouldBindJSON(&brief); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
				Error: briefProblem(vErrs, "Missing required fields: businessName, industry, businessDescription"),
			})
			return
		}
		log.Debug("Invalid generate request body", logger.Error(err))
		abortWithError(c, h.env, http.StatusBadRequest, "Invalid request body", err, "")
		return
	}

	gen := h.live
	if h.env.Test || !h.keys.HasValidLLMKey || gen == nil {
		gen = h.mock
	}

	content, err := gen.Generate(c.Request.Context(), brief)
	if err != nil {
		log.Error("Content generation failed",
			logger.String("business_name", brief.BusinessName),
			logger.Error(err),
		)
		h.respondGenerationError(c, err)
		return
	}

	log.Info("Landing page content generated",
		logger.String("business_name", brief.BusinessName),
		logger.String("industry", brief.Industry),
	)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"content": content,
		"brief":   brief,
	})
}

func (h *GenerateHandler) respondGenerationError(c *gin.Context, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, generator.ErrInvalidAPIKey) || strings.Contains(msg, "API key"):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{
			Error:   "Authentication failed",
			Details: "Invalid API configuration. Please contact support.",
		})
	case errors.Is(err, generator.ErrRateLimited) || strings.Contains(msg, "rate limit"):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
			Error:   "Service temporarily unavailable",
			Details: "Too many requests. Please try again in a moment.",
		})
	default:
		abortWithError(c, h.env, http.StatusInternalServerError,
			"Failed to generate landing page content", err,
			"An unexpected error occurred. Please try again.")
	}
}
