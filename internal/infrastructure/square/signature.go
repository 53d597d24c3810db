// Package square implementa la verificación de firmas de webhooks del POS.
package square

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"

	"github.com/loudbaby/easyops-api/internal/application/webhook"
)

// Esquemas de canonicalización soportados. El proveedor cambió el esquema entre
// versiones de su API de webhooks, así que es configurable.
const (
	SchemeBody          = "body"           // HMAC solo del cuerpo
	SchemeURLBody       = "url_body"       // HMAC de notification_url + cuerpo
	SchemeTimestampBody = "timestamp_body" // HMAC de timestamp + "." + cuerpo
)

var _ webhook.SignatureVerifier = (*Verifier)(nil)

// Verifier valida la firma HMAC-SHA256 (base64) de una entrega de webhook.
type Verifier struct {
	secret          []byte
	scheme          string
	notificationURL string
}

// NewVerifier construye el verificador. notificationURL solo se usa con el
// esquema url_body y debe ser la URL exacta registrada en el proveedor.
func NewVerifier(secret, scheme, notificationURL string) *Verifier {
	return &Verifier{
		secret:          []byte(secret),
		scheme:          scheme,
		notificationURL: notificationURL,
	}
}

// Verify compara la firma recibida contra el HMAC calculado del mensaje
// canónico, en tiempo constante.
func (v *Verifier) Verify(signature, timestamp, requestURL string, body []byte) bool {
	if len(v.secret) == 0 || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	switch v.scheme {
	case SchemeURLBody:
		url := v.notificationURL
		if url == "" {
			url = requestURL
		}
		mac.Write([]byte(url))
		mac.Write(body)
	case SchemeTimestampBody:
		if timestamp == "" {
			return false
		}
		mac.Write([]byte(timestamp))
		mac.Write([]byte("."))
		mac.Write(body)
	default:
		mac.Write(body)
	}
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
