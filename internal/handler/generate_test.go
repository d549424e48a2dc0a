package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalabar794/landgenai/infrastructure/logger"
	"github.com/kalabar794/landgenai/internal/generator"
	"github.com/kalabar794/landgenai/internal/handler"
	"github.com/kalabar794/landgenai/internal/keys"
)

const acmeBrief = `{"businessName":"Acme","industry":"technology","businessDescription":"Rockets"}`

var validLLM = keys.Status{HasValidLLMKey: true}

func generateRouter(live, mock *fakeGenerator, status keys.Status, env handler.Env) *gin.Engine {
	h := handler.NewGenerateHandler(live, mock, status, env, logger.NewNop())
	r := gin.New()
	r.POST("/api/generate", h.Generate)
	return r
}

func TestGenerate_ProductionWithoutKey(t *testing.T) {
	t.Parallel()

	live, mock := &fakeGenerator{}, &fakeGenerator{}
	w := do(t, generateRouter(live, mock, keys.Status{}, prodEnv), http.MethodPost, "/api/generate", acmeBrief)

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Service unavailable", body["error"])
	assert.Equal(t, "AI service not configured. Please contact support.", body["details"])
	assert.Zero(t, live.Calls()+mock.Calls())
}

func TestGenerate_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "malformed", body: `{"businessName":`, want: "Invalid request body"},
		{
			name: "missing fields",
			body: `{"businessName":"Acme","industry":"technology"}`,
			want: "Missing required fields: businessName, industry, businessDescription",
		},
		{
			name: "long name",
			body: fmt.Sprintf(`{"businessName":%q,"industry":"x","businessDescription":"y"}`, strings.Repeat("é", 101)),
			want: "Business name must be less than 100 characters",
		},
		{
			name: "missing field wins over long name",
			body: fmt.Sprintf(`{"businessName":%q,"businessDescription":"y"}`, strings.Repeat("n", 101)),
			want: "Missing required fields: businessName, industry, businessDescription",
		},
		{
			name: "long description",
			body: fmt.Sprintf(`{"businessName":"A","industry":"x","businessDescription":%q}`, strings.Repeat("d", 1001)),
			want: "Business description must be less than 1000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &fakeGenerator{}
			w := do(t, generateRouter(nil, mock, keys.Status{}, devEnv), http.MethodPost, "/api/generate", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decode(t, w)["error"])
			assert.Zero(t, mock.Calls())
		})
	}
}

func TestGenerate_NameAtLimitAccepted(t *testing.T) {
	t.Parallel()

	body := fmt.Sprintf(`{"businessName":%q,"industry":"x","businessDescription":"y"}`, strings.Repeat("é", 100))
	w := do(t, generateRouter(nil, &fakeGenerator{}, keys.Status{}, devEnv), http.MethodPost, "/api/generate", body)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerate_TestModeUsesMock(t *testing.T) {
	t.Parallel()

	live, mock := &fakeGenerator{}, &fakeGenerator{}
	w := do(t, generateRouter(live, mock, validLLM, testEnv), http.MethodPost, "/api/generate", acmeBrief)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Acme", body["brief"].(map[string]any)["businessName"])
	assert.Equal(t, 1, mock.Calls())
	assert.Zero(t, live.Calls())
}

func TestGenerate_NoKeyOutsideProductionUsesMock(t *testing.T) {
	t.Parallel()

	live, mock := &fakeGenerator{}, &fakeGenerator{}
	w := do(t, generateRouter(live, mock, keys.Status{}, devEnv), http.MethodPost, "/api/generate", acmeBrief)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mock.Calls())
	assert.Zero(t, live.Calls())
}

func TestGenerate_LiveGenerator(t *testing.T) {
	t.Parallel()

	live, mock := &fakeGenerator{}, &fakeGenerator{}
	w := do(t, generateRouter(live, mock, validLLM, prodEnv), http.MethodPost, "/api/generate", acmeBrief)

	require.Equal(t, http.StatusOK, w.Code)
	content := decode(t, w)["content"].(map[string]any)
	assert.Equal(t, "Welcome to Acme", content["heroSection"].(map[string]any)["title"])
	assert.Equal(t, "Acme", content["footer"].(map[string]any)["companyName"])
	assert.Equal(t, 1, live.Calls())
	assert.Zero(t, mock.Calls())
}

func TestGenerate_ErrorTaxonomy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		env        handler.Env
		wantStatus int
		wantError  string
		wantDetail string
	}{
		{
			name:       "sentinel invalid key",
			err:        fmt.Errorf("call: %w", generator.ErrInvalidAPIKey),
			env:        prodEnv,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Authentication failed",
			wantDetail: "Invalid API configuration. Please contact support.",
		},
		{
			name:       "message mentions API key",
			err:        errors.New("bad API key supplied"),
			env:        prodEnv,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Authentication failed",
			wantDetail: "Invalid API configuration. Please contact support.",
		},
		{
			name:       "rate limited",
			err:        generator.ErrRateLimited,
			env:        prodEnv,
			wantStatus: http.StatusTooManyRequests,
			wantError:  "Service temporarily unavailable",
			wantDetail: "Too many requests. Please try again in a moment.",
		},
		{
			name:       "other in production",
			err:        errors.New("socket closed"),
			env:        prodEnv,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate landing page content",
			wantDetail: "An unexpected error occurred. Please try again.",
		},
		{
			name:       "other in development",
			err:        errors.New("socket closed"),
			env:        devEnv,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate landing page content",
			wantDetail: "socket closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			live := &fakeGenerator{err: tt.err}
			w := do(t, generateRouter(live, &fakeGenerator{}, validLLM, tt.env), http.MethodPost, "/api/generate", acmeBrief)

			require.Equal(t, tt.wantStatus, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantError, body["error"])
			assert.Equal(t, tt.wantDetail, body["details"])
		})
	}
}
