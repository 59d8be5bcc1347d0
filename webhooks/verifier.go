package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/goliatone/go-cuenca/core"
)

const (
	DefaultSignatureHeader = "X-Cuenca-Signature"

	EncodingHex    = "hex"
	EncodingBase64 = "base64"
)

// SecretSource supplies the current webhook secret. *transport.Client
// implements it, so a rotated secret is picked up on the next delivery.
type SecretSource interface {
	WebhookSecret() string
}

// Verifier checks the HMAC-SHA256 signature carried in a request header.
type Verifier struct {
	Header   string
	Prefix   string
	Encoding string // hex | base64
	Secret   string
	Source   SecretSource
}

func NewVerifier(source SecretSource) Verifier {
	return Verifier{Header: DefaultSignatureHeader, Encoding: EncodingHex, Source: source}
}

// Sign returns the encoded signature of body, including Prefix.
func (v Verifier) Sign(body []byte) (string, error) {
	secret := v.secret()
	if secret == "" {
		return "", core.NewInternalError("webhooks: webhook secret is not configured")
	}
	sum := computeMAC(secret, body)
	if v.encoding() == EncodingBase64 {
		return v.Prefix + base64.StdEncoding.EncodeToString(sum), nil
	}
	return v.Prefix + hex.EncodeToString(sum), nil
}

func (v Verifier) Verify(_ context.Context, headers http.Header, body []byte) error {
	headerName := v.header()
	header := strings.TrimSpace(headers.Get(headerName))
	if header == "" {
		return core.NewSignatureError(nil, "webhooks: "+headerName+" signature header is required")
	}
	secret := v.secret()
	if secret == "" {
		return core.NewInternalError("webhooks: webhook secret is not configured")
	}
	signature := strings.TrimSpace(strings.TrimPrefix(header, strings.TrimSpace(v.Prefix)))
	if signature == "" {
		return core.NewSignatureError(nil, "webhooks: signature value is required")
	}

	var (
		decoded []byte
		err     error
	)
	if v.encoding() == EncodingBase64 {
		decoded, err = base64.StdEncoding.DecodeString(signature)
	} else {
		decoded, err = hex.DecodeString(signature)
	}
	if err != nil {
		return core.NewSignatureError(err, "webhooks: decode "+v.encoding()+" signature")
	}
	if subtle.ConstantTimeCompare(decoded, computeMAC(secret, body)) != 1 {
		return core.NewSignatureError(nil, "webhooks: signature verification failed")
	}
	return nil
}

func (v Verifier) header() string {
	if header := strings.TrimSpace(v.Header); header != "" {
		return header
	}
	return DefaultSignatureHeader
}

func (v Verifier) encoding() string {
	if strings.EqualFold(strings.TrimSpace(v.Encoding), EncodingBase64) {
		return EncodingBase64
	}
	return EncodingHex
}

func (v Verifier) secret() string {
	if v.Source != nil {
		if secret := v.Source.WebhookSecret(); strings.TrimSpace(secret) != "" {
			return secret
		}
	}
	if strings.TrimSpace(v.Secret) == "" {
		return ""
	}
	return v.Secret
}

func computeMAC(secret string, body []byte) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}
