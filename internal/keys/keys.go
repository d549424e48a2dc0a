// Package keys checks upstream API keys for plausibility without calling out.
package keys

import "strings"

const (
	anthropicKeyPrefix = "sk-ant-api03-"
	anthropicMinLen    = 50
	pexelsMinLen       = 20

	maskVisiblePrefix = 8
	maskVisibleSuffix = 4
)

// Status reports which upstreams have usable keys.
type Status struct {
	HasValidLLMKey    bool `json:"hasValidLLMKey"`
	HasValidPhotoKey  bool `json:"hasValidPhotoKey"`
	IsFullyConfigured bool `json:"isFullyConfigured"`
}

// Validate never fails; missing or malformed keys report false.
func Validate(anthropicKey, pexelsKey string) Status {
	llm := ValidLLMKey(anthropicKey)
	photo := ValidPhotoKey(pexelsKey)
	return Status{
		HasValidLLMKey:    llm,
		HasValidPhotoKey:  photo,
		IsFullyConfigured: llm && photo,
	}
}

// ValidLLMKey requires the Anthropic key prefix and more than 50 bytes.
func ValidLLMKey(key string) bool {
	return strings.HasPrefix(key, anthropicKeyPrefix) && len(key) > anthropicMinLen
}

// ValidPhotoKey requires more than 20 bytes and no "test" placeholder.
func ValidPhotoKey(key string) bool {
	return len(key) > pexelsMinLen && !strings.Contains(key, "test")
}

// Mask renders a key safe for logs and health output.
func Mask(key string) string {
	switch {
	case key == "":
		return "NOT_SET"
	case strings.Contains(key, "test"), strings.Contains(key, "dummy"):
		return "TEST_KEY"
	}

	// Short keys overlap prefix and suffix with no stars between.
	prefix := key[:min(len(key), maskVisiblePrefix)]
	suffix := key[max(len(key)-maskVisibleSuffix, 0):]
	hidden := max(len(key)-maskVisiblePrefix-maskVisibleSuffix, 0)
	return prefix + strings.Repeat("*", hidden) + suffix
}
