package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Notification signatures follow the provider's scheme: the header
// carries "t=<unix>,v1=<hex hmac>" where the hmac is SHA-256 over
// "<t>.<raw body>" keyed by the shared webhook secret. Verification runs
// against the raw body BEFORE any parsing; a payload that fails here is
// never trusted.

const DefaultTolerance = 5 * time.Minute

var (
	ErrInvalidSignatureHeader = errors.New("invalid signature header")
	ErrSignatureMismatch      = errors.New("signature mismatch")
	ErrTimestampOutOfRange    = errors.New("signature timestamp out of tolerance")
)

type signatureHeader struct {
	timestamp  time.Time
	signatures [][]byte
}

func parseSignatureHeader(header string) (*signatureHeader, error) {
	parsed := &signatureHeader{}
	if header == "" {
		return nil, ErrInvalidSignatureHeader
	}

	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return nil, ErrInvalidSignatureHeader
		}
		switch parts[0] {
		case "t":
			ts, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return nil, ErrInvalidSignatureHeader
			}
			parsed.timestamp = time.Unix(ts, 0)
		case "v1":
			sig, err := hex.DecodeString(parts[1])
			if err != nil {
				continue
			}
			parsed.signatures = append(parsed.signatures, sig)
		default:
			// Unknown schemes are ignored for forward compatibility.
		}
	}

	if parsed.timestamp.IsZero() || len(parsed.signatures) == 0 {
		return nil, ErrInvalidSignatureHeader
	}
	return parsed, nil
}

func computeSignature(timestamp time.Time, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp.Unix(), payload)
	return mac.Sum(nil)
}

// VerifySignature checks the raw payload against the signature header
// and the shared secret, rejecting stale timestamps.
func VerifySignature(payload []byte, header string, secret string, tolerance time.Duration) error {
	parsed, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	if tolerance > 0 {
		age := time.Since(parsed.timestamp)
		if age > tolerance || age < -tolerance {
			return ErrTimestampOutOfRange
		}
	}

	expected := computeSignature(parsed.timestamp, payload, secret)
	for _, sig := range parsed.signatures {
		if hmac.Equal(expected, sig) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

// SignPayload produces a valid signature header for a payload. Used by
// tests and local tooling to emit notifications the handler accepts.
func SignPayload(payload []byte, secret string, at time.Time) string {
	sig := computeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}
