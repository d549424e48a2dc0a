// Package handler implements the landgenai JSON API.
package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/config"
	"github.com/kalabar794/landgenai/internal/domain"
	"github.com/kalabar794/landgenai/internal/images"
)

// ImageFetcher runs photo searches. *images.Fetcher implements it.
type ImageFetcher interface {
	FetchAndDedupe(ctx context.Context, queries []string) []domain.Photo
	SearchEach(ctx context.Context, queries []string, perPage int) []images.QueryResult
}

// PhotoProxy forwards raw searches. *pexels.Client implements it.
type PhotoProxy interface {
	HasKey() bool
	SearchRaw(ctx context.Context, query string, perPage, page int) ([]byte, error)
}

// Env is the slice of configuration handlers branch on.
type Env struct {
	Name       string
	Production bool
	Test       bool
	Serverless bool
}

// EnvFromConfig derives Env from the loaded configuration.
func EnvFromConfig(cfg *config.Config) Env {
	return Env{
		Name:       cfg.Service.Environment,
		Production: cfg.IsProduction(),
		Test:       cfg.IsTest(),
		Serverless: cfg.IsServerless(),
	}
}

// Verbose reports whether raw error messages may reach clients.
func (e Env) Verbose() bool {
	return e.Name == config.EnvDevelopment
}

// errorResponse is the {error, details} body shared by every failure.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// abortWithError writes an error body. err's message is only exposed in
// development; elsewhere generic is sent.
func abortWithError(c *gin.Context, env Env, status int, msg string, err error, generic string) {
	details := generic
	if err != nil && env.Verbose() {
		details = err.Error()
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg, Details: details})
}

func requestLogger(c *gin.Context, fallback logger.Logger) logger.Logger {
	return logger.FromContextOr(c.Request.Context(), fallback)
}

// briefProblem turns brief binding failures into the client message.
// A missing field is reported before any length limit.
func briefProblem(vErrs validator.ValidationErrors, missing string) string {
	for _, fe := range vErrs {
		if fe.Tag() == "required" {
			return missing
		}
	}
	for _, fe := range vErrs {
		switch fe.Field() {
		case "BusinessName":
			return "Business name must be less than 100 characters"
		case "BusinessDescription":
			return "Business description must be less than 1000 characters"
		}
	}
	return missing
}
