package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	body := []byte(`{"message_id":"WA-1"}`)
	sig := Sign(body, "s3cret")

	assert.True(t, VerifySignature(body, "s3cret", sig))
	assert.True(t, VerifySignature(body, "s3cret", strings.TrimPrefix(sig, "sha256=")))
	assert.False(t, VerifySignature(body, "other", sig))
	assert.False(t, VerifySignature([]byte(`{}`), "s3cret", sig))
	assert.False(t, VerifySignature(body, "s3cret", "sha256=zz"))
	assert.False(t, VerifySignature(body, "s3cret", ""))
}

func TestWebhookSignatureMiddleware(t *testing.T) {
	t.Parallel()

	body := `{"message_id":"WA-1"}`
	newEcho := func(secret string) *echo.Echo {
		e := echo.New()
		g := e.Group("/webhooks", WebhookSignature(secret, "X-Signature-256", 1<<10))
		g.POST("/n8n/whatsapp", func(c echo.Context) error {
			got, _ := io.ReadAll(c.Request().Body)
			return c.String(http.StatusOK, string(got))
		})
		return e
	}

	tests := []struct {
		name   string
		secret string
		sig    string
		want   int
	}{
		{name: "disabled", secret: "", want: http.StatusOK},
		{name: "valid", secret: "s3cret", sig: Sign([]byte(body), "s3cret"), want: http.StatusOK},
		{name: "missing", secret: "s3cret", want: http.StatusUnauthorized},
		{name: "wrong", secret: "s3cret", sig: Sign([]byte(body), "nope"), want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/webhooks/n8n/whatsapp", strings.NewReader(body))
			if tt.sig != "" {
				req.Header.Set("X-Signature-256", tt.sig)
			}
			rec := httptest.NewRecorder()
			newEcho(tt.secret).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, body, rec.Body.String())
			}
		})
	}
}
