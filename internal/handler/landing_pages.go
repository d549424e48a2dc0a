package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/domain"
	"github.com/kalabar794/landgenai/internal/storage"
)

const genericDatabaseError = "Database error occurred"

type saveLandingPageRequest struct {
	Brief   *domain.MarketingBrief     `json:"brief"`
	Content *domain.LandingPageContent `json:"content"`
	Images  *domain.CategorizedImages  `json:"images"`
}

type updateLandingPageRequest struct {
	Content *domain.LandingPageContent `json:"content"`
	Images  *domain.CategorizedImages  `json:"images"`
}

// LandingPageHandler serves the /api/landing-pages resource.
type LandingPageHandler struct {
	store  storage.Store
	env    Env
	logger logger.Logger
}

// NewLandingPageHandler builds the handler.
func NewLandingPageHandler(store storage.Store, env Env, log logger.Logger) *LandingPageHandler {
	return &LandingPageHandler{
		store:  store,
		env:    env,
		logger: log,
	}
}

// List searches by name with ?q, filters with ?industry, or returns the
// most recent pages.
func (h *LandingPageHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		pages []domain.SavedLandingPage
		err   error
	)
	switch q, industry := c.Query("q"), c.Query("industry"); {
	case q != "":
		pages, err = h.store.SearchByName(ctx, q)
	case industry != "":
		pages, err = h.store.GetByIndustry(ctx, industry)
	default:
		limit, convErr := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(storage.DefaultRecentLimit)))
		if convErr != nil {
			limit = storage.DefaultRecentLimit
		}
		pages, err = h.store.GetRecent(ctx, limit)
	}
	if err != nil {
		h.fail(c, "Failed to fetch landing pages", err)
		return
	}

	if pages == nil {
		pages = []domain.SavedLandingPage{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"landingPages": pages,
		"count":        len(pages),
	})
}

// Create saves a new page.
func (h *LandingPageHandler) Create(c *gin.Context) {
	// The body is fully decoded before the brief's binding rules run, so
	// the nil checks below see every field either way.
	var req saveLandingPageRequest
	var vErrs validator.ValidationErrors
	if err := c.ShouldBindJSON(&req); err != nil && !errors.As(err, &vErrs) {
		h.invalidBody(c, err)
		return
	}

	if req.Brief == nil || req.Content == nil || req.Images == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error: "Missing required fields: brief, content, images",
		})
		return
	}
	if len(vErrs) > 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error: briefProblem(vErrs, "Brief must contain businessName, industry, and businessDescription"),
		})
		return
	}

	page, err := h.store.Save(c.Request.Context(), *req.Brief, *req.Content, *req.Images)
	if err != nil {
		h.fail(c, "Failed to save landing page", err)
		return
	}

	requestLogger(c, h.logger).Info("Landing page saved",
		logger.String("landing_page_id", page.ID),
		logger.String("business_name", page.BusinessName),
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "landingPage": page})
}

// Get returns one page.
func (h *LandingPageHandler) Get(c *gin.Context) {
	id := c.Param("id")

	page, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to fetch landing page", err)
		return
	}
	if page == nil {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "landingPage": page})
}

// Update replaces a page's content and images.
func (h *LandingPageHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req updateLandingPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.invalidBody(c, err)
		return
	}
	if req.Content == nil || req.Images == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
			Error: "Missing required fields: content, images",
		})
		return
	}

	page, err := h.store.Update(c.Request.Context(), id, *req.Content, *req.Images)
	if err != nil {
		h.fail(c, "Failed to update landing page", err)
		return
	}
	if page == nil {
		notFound(c)
		return
	}

	requestLogger(c, h.logger).Info("Landing page updated", logger.String("landing_page_id", id))
	c.JSON(http.StatusOK, gin.H{"success": true, "landingPage": page})
}

// Delete removes a page.
func (h *LandingPageHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	removed, err := h.store.Delete(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "Failed to delete landing page", err)
		return
	}
	if !removed {
		notFound(c)
		return
	}

	requestLogger(c, h.logger).Info("Landing page deleted", logger.String("landing_page_id", id))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Landing page deleted successfully"})
}

func (h *LandingPageHandler) fail(c *gin.Context, msg string, err error) {
	requestLogger(c, h.logger).Error(msg, logger.Error(err))
	abortWithError(c, h.env, http.StatusInternalServerError, msg, err, genericDatabaseError)
}

func (h *LandingPageHandler) invalidBody(c *gin.Context, err error) {
	requestLogger(c, h.logger).Debug("Invalid landing page request body", logger.Error(err))
	abortWithError(c, h.env, http.StatusBadRequest, "Invalid request body", err, "")
}

func notFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Error: "Landing page not found"})
}
