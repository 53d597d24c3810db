package square_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loudbaby/easyops-api/internal/infrastructure/square"
)

const (
	testSecret = "super-secret-webhook-key"
	testURL    = "https://ops.example.com/webhooks/square"
)

func sign(t *testing.T, parts ...string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(testSecret))
	for _, p := range parts {
		mac.Write([]byte(p))
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerify_EsquemaBody(t *testing.T) {
	v := square.NewVerifier(testSecret, square.SchemeBody, "")
	body := []byte(`{"type":"order.created"}`)

	assert.True(t, v.Verify(sign(t, string(body)), "", testURL, body))
	assert.False(t, v.Verify(sign(t, "otro cuerpo"), "", testURL, body),
		"firma de otro cuerpo no debe validar")
}

func TestVerify_EsquemaURLBody(t *testing.T) {
	v := square.NewVerifier(testSecret, square.SchemeURLBody, testURL)
	body := []byte(`{"type":"order.created"}`)

	assert.True(t, v.Verify(sign(t, testURL, string(body)), "", testURL, body))
	// Con otra URL registrada la firma cambia
	assert.False(t, v.Verify(sign(t, "https://otra.example.com/wh", string(body)), "", testURL, body))
}

func TestVerify_EsquemaTimestampBody(t *testing.T) {
	v := square.NewVerifier(testSecret, square.SchemeTimestampBody, "")
	body := []byte(`{"type":"order.created"}`)
	ts := "1724900000"

	assert.True(t, v.Verify(sign(t, ts, ".", string(body)), ts, testURL, body))
	assert.False(t, v.Verify(sign(t, ts, ".", string(body)), "1724900001", testURL, body),
		"otro timestamp debe invalidar la firma")
	assert.False(t, v.Verify(sign(t, ts, ".", string(body)), "", testURL, body),
		"timestamp vacío debe rechazar sin calcular")
}

func TestVerify_CuerpoAlterado(t *testing.T) {
	v := square.NewVerifier(testSecret, square.SchemeBody, "")
	body := []byte(`{"total":"10.00"}`)
	sig := sign(t, string(body))

	tampered := []byte(`{"total":"99.00"}`)
	assert.False(t, v.Verify(sig, "", testURL, tampered))
}

func TestVerify_SecretOFirmaVacios(t *testing.T) {
	body := []byte(`{}`)

	v := square.NewVerifier("", square.SchemeBody, "")
	assert.False(t, v.Verify(sign(t, string(body)), "", testURL, body),
		"sin secreto nada valida")

	v = square.NewVerifier(testSecret, square.SchemeBody, "")
	assert.False(t, v.Verify("", "", testURL, body), "firma vacía no valida")
}
