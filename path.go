// FILE: docsync/path.go
package docsync

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

var placeholder = regexp.MustCompile(`\{(?:self\.)?(\w+)\}`)

// uuidPlaceholder is replaced by a new unique token on every expansion.
const uuidPlaceholder = "UUID"

// ExpandPath resolves a path template against obj. Placeholders name
// attributes as {name} or {self.name}; {UUID} yields a unique token.
// Templates are expanded once, when an object is bound.
func ExpandPath(template string, obj Object) (string, error) {
	var firstErr error
	path := placeholder.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if name == uuidPlaceholder {
			token, err := newToken()
			if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("path placeholder %s: %w", match, err)
			}
			return token
		}

		if obj != nil {
			if value, ok := obj.GetAttr(name); ok {
				s, err := asString(value)
				if err == nil {
					return s
				}
				if firstErr == nil {
					firstErr = fmt.Errorf("path placeholder %s: %w", match, err)
				}
				return match
			}
		}
		if firstErr == nil {
			firstErr = fmt.Errorf("path placeholder %s: %w", match, ErrNoAttribute)
		}
		return match
	})
	if firstErr != nil {
		return "", firstErr
	}
	return path, nil
}

// newToken returns 16 random bytes as hex.
func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
