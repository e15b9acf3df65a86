// Package token decodes the public-facing submission token that links a
// rendered page to one form entry.
//
// Token format: base64url(entryID ":" formID ":" hex(hmacSHA256(formID, secret))).
// The HMAC covers the form ID so a visitor cannot point a results page at an
// arbitrary form; constant-time comparison prevents timing attacks.
package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

// Decode failure modes. All of them mean "no submission context": callers
// degrade to an empty record rather than failing the render.
var (
	ErrBadEncoding  = errors.New("token is not valid base64url")
	ErrBadFormat    = errors.New("token does not split into entry, form and signature")
	ErrBadSignature = errors.New("token signature mismatch")
	ErrNoSecrets    = errors.New("no token secrets configured")
)

// Claims are the identifiers recovered from a valid token.
type Claims struct {
	EntryID string
	FormID  string
}

// Decode validates a token against the configured secrets and returns the
// embedded identifiers. Multiple secrets support rotation: a token is valid
// if any secret verifies it.
func Decode(tok string, secrets [][]byte) (Claims, error) {
	if len(secrets) == 0 {
		return Claims{}, ErrNoSecrets
	}

	decoded, err := decodeBase64URL(tok)
	if err != nil {
		return Claims{}, ErrBadEncoding
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 3 {
		return Claims{}, ErrBadFormat
	}
	entryID, formID, signature := parts[0], parts[1], parts[2]

	for _, secret := range secrets {
		expected := sign(formID, secret)
		// hmac.Equal gives constant-time comparison
		if hmac.Equal([]byte(expected), []byte(signature)) {
			return Claims{EntryID: entryID, FormID: formID}, nil
		}
	}
	return Claims{}, ErrBadSignature
}

// Encode constructs a token for the given entry and form. Used by test
// setups and the token CLI; production tokens come from the form backend.
func Encode(entryID, formID string, secret []byte) string {
	payload := entryID + ":" + formID + ":" + sign(formID, secret)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// sign computes the hex HMAC-SHA256 of the form ID.
func sign(formID string, secret []byte) string {
	h := hmac.New(sha256.New, secret)
	h.Write([]byte(formID))
	return hex.EncodeToString(h.Sum(nil))
}

// decodeBase64URL accepts both padded and unpadded url-safe base64, matching
// the tolerant decoders tokens have historically passed through.
func decodeBase64URL(s string) ([]byte, error) {
	if b, err := base64.RawURLEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.URLEncoding.DecodeString(s)
}
