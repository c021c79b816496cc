// Package snapshot serializes behavior state for wrapper layers and for the
// scenario runner.
//
// JSON is the readable form and the one expectations are evaluated against.
// Msgpack is the compact form for shipping state across a process or network
// boundary. A Signer wraps msgpack snapshots in a tamper-evident token so a
// host can round-trip state through an untrusted client.
package snapshot

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format names an encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

var (
	// ErrUnknownFormat is returned for a format other than json or msgpack.
	ErrUnknownFormat = errors.New("unknown snapshot format")
	// ErrInvalidToken is returned when a signed token is malformed or its
	// signature does not match.
	ErrInvalidToken = errors.New("invalid snapshot token")
)

// ParseFormat reads a format name; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatMsgpack, "mp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Encode serializes v.
func Encode(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		return json.Marshal(v)
	case FormatMsgpack:
		return msgpack.Marshal(v)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode deserializes data into v.
func Decode(data []byte, f Format, v any) error {
	switch f {
	case FormatJSON, "":
		return json.Unmarshal(data, v)
	case FormatMsgpack:
		return msgpack.Unmarshal(data, v)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// ToMap converts v to its JSON object form. Numbers come back as float64,
// times as RFC 3339 strings and selection sets as id arrays.
func ToMap(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("snapshot is not an object: %w", err)
	}
	return m, nil
}

// Signer produces and verifies signed msgpack tokens of the form
// base64(payload).base64(mac).
type Signer struct {
	key []byte
}

// NewSigner creates a Signer. Keys shorter than 32 bytes are stretched with
// SHA-256.
func NewSigner(key []byte) *Signer {
	if len(key) < 32 {
		h := sha256.Sum256(key)
		key = h[:]
	}
	return &Signer{key: key}
}

// Sign encodes v with msgpack and signs it.
func (s *Signer) Sign(v any) (string, error) {
	packed, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(packed) + "." +
		base64.RawURLEncoding.EncodeToString(s.mac(packed)), nil
}

// Verify checks token and decodes its payload into v.
func (s *Signer) Verify(token string, v any) error {
	body, sig, ok := strings.Cut(token, ".")
	if !ok {
		return fmt.Errorf("%w: missing signature", ErrInvalidToken)
	}
	packed, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	mac, err := base64.RawURLEncoding.DecodeString(sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !hmac.Equal(mac, s.mac(packed)) {
		return fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	}
	return msgpack.Unmarshal(packed, v)
}

func (s *Signer) mac(data []byte) []byte {
	h := hmac.New(sha256.New, s.key)
	h.Write(data)
	return h.Sum(nil)[:16]
}
