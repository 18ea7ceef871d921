package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// APIKeyPrefix marks credentials minted by this service, so keys are
// recognizable in logs and support requests without exposing the secret.
const APIKeyPrefix = "vo_"

// GenerateAPIKey mints a new API key: the service prefix plus 48 random
// bytes, base64url-encoded without padding.
func GenerateAPIKey() (string, error) {
	raw := make([]byte, 48)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generating api key: %w", err)
	}
	return APIKeyPrefix + base64.RawURLEncoding.EncodeToString(raw), nil
}
