package security

import (
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	// SessionSecretLength is the size of secrets generated when none is configured.
	SessionSecretLength = 48
	// MinSessionSecretLength is the shortest configured secret accepted.
	MinSessionSecretLength = 32

	alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var (
	ErrWeakSessionSecret = errors.New("secret key is a placeholder or shorter than 32 characters")

	errNegativeLength = errors.New("length must be non-negative")
	errAlphabetSize   = errors.New("alphabet must hold between 1 and 256 characters")
)

var placeholderSecrets = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"changeme":                                   {},
}

// GenerateSessionSecret returns a random alphanumeric secret for sealing cookies.
func GenerateSessionSecret() (string, error) {
	secret, err := RandomString(SessionSecretLength, alphanumeric)
	if err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return secret, nil
}

// ValidateSessionSecret rejects documented placeholders and short secrets.
func ValidateSessionSecret(secret string) error {
	if _, placeholder := placeholderSecrets[secret]; placeholder {
		return ErrWeakSessionSecret
	}
	if len(secret) < MinSessionSecretLength {
		return ErrWeakSessionSecret
	}
	return nil
}

// RandomString draws length characters from alphabet using rejection sampling
// over random bytes so every character is equally likely.
func RandomString(length int, alphabet string) (string, error) {
	if length < 0 {
		return "", errNegativeLength
	}
	if len(alphabet) == 0 || len(alphabet) > 256 {
		return "", errAlphabetSize
	}
	if length == 0 {
		return "", nil
	}

	// Bytes at or above ceiling would favour the first characters of alphabet.
	ceiling := 256 - 256%len(alphabet)
	value := make([]byte, 0, length)
	buffer := make([]byte, length*2)
	for len(value) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= ceiling {
				continue
			}
			value = append(value, alphabet[int(b)%len(alphabet)])
			if len(value) == length {
				break
			}
		}
	}
	return string(value), nil
}
