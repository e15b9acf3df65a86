// internal/core/token/token_test.go
package token

import (
	"encoding/base64"
	"errors"
	"testing"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestDecode_RoundTrip(t *testing.T) {
	tok := Encode("42", "7", testSecret)

	claims, err := Decode(tok, [][]byte{testSecret})
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if claims.EntryID != "42" {
		t.Errorf("EntryID = %q, want %q", claims.EntryID, "42")
	}
	if claims.FormID != "7" {
		t.Errorf("FormID = %q, want %q", claims.FormID, "7")
	}
}

func TestDecode_SecretRotation(t *testing.T) {
	oldSecret := []byte("old-secret-old-secret-old-secret")
	tok := Encode("1", "2", oldSecret)

	// New secret first, old secret still accepted.
	claims, err := Decode(tok, [][]byte{testSecret, oldSecret})
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}
	if claims.EntryID != "1" || claims.FormID != "2" {
		t.Errorf("claims = %+v, want entry 1 form 2", claims)
	}
}

func TestDecode_Failures(t *testing.T) {
	valid := Encode("42", "7", testSecret)

	tests := []struct {
		name    string
		token   string
		secrets [][]byte
		wantErr error
	}{
		{
			name:    "not base64",
			token:   "!!!not-base64!!!",
			secrets: [][]byte{testSecret},
			wantErr: ErrBadEncoding,
		},
		{
			name:    "wrong part count",
			token:   base64.RawURLEncoding.EncodeToString([]byte("only-two:parts")),
			secrets: [][]byte{testSecret},
			wantErr: ErrBadFormat,
		},
		{
			name:    "wrong secret",
			token:   valid,
			secrets: [][]byte{[]byte("another-secret-another-secret-ab")},
			wantErr: ErrBadSignature,
		},
		{
			name:    "tampered signature",
			token:   base64.RawURLEncoding.EncodeToString([]byte("42:7:deadbeef")),
			secrets: [][]byte{testSecret},
			wantErr: ErrBadSignature,
		},
		{
			name:    "no secrets configured",
			token:   valid,
			secrets: nil,
			wantErr: ErrNoSecrets,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token, tt.secrets)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecode_PaddedEncoding(t *testing.T) {
	// A padded encoder must also be accepted.
	payload := "42:7:" + signForTest("7")
	tok := base64.URLEncoding.EncodeToString([]byte(payload))

	claims, err := Decode(tok, [][]byte{testSecret})
	if err != nil {
		t.Fatalf("Decode(padded) error = %v, want nil", err)
	}
	if claims.EntryID != "42" {
		t.Errorf("EntryID = %q, want %q", claims.EntryID, "42")
	}
}

func signForTest(formID string) string {
	return sign(formID, testSecret)
}
