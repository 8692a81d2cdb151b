package inference

import (
	"fmt"
	"os"
	"strings"
)

// EnvToken is the environment variable consulted by TokenFromEnv.
const EnvToken = "HF_API_TOKEN"

// TokenFromFile reads a bearer token from a single-line secret file,
// trimming surrounding whitespace.
func TokenFromFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is chosen by the caller
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingToken, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrMissingToken, path)
	}
	return token, nil
}

// TokenFromEnv reads the bearer token from the EnvToken variable.
func TokenFromEnv() (string, error) {
	token := strings.TrimSpace(os.Getenv(EnvToken))
	if token == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrMissingToken, EnvToken)
	}
	return token, nil
}
