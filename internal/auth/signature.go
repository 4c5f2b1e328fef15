package auth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const signaturePrefix = "sha256="

// VerifySignature checks an HMAC-SHA256 signature of body. The header value may
// carry a "sha256=" prefix.
func VerifySignature(body []byte, secret, signature string) bool {
	signature = strings.TrimPrefix(strings.TrimSpace(signature), signaturePrefix)
	if signature == "" {
		return false
	}
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), want)
}

// Sign returns the header value VerifySignature accepts for body.
func Sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// WebhookSignature rejects requests whose body does not match the signature
// header. An empty secret disables the check. The body is restored for the
// next handler.
func WebhookSignature(secret, header string, maxBody int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if secret == "" {
			return next
		}
		return func(c echo.Context) error {
			sig := c.Request().Header.Get(header)
			if sig == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing signature")
			}
			body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBody+1))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "read body failed")
			}
			if int64(len(body)) > maxBody {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "body too large")
			}
			if !VerifySignature(body, secret, sig) {
				return echo.NewHTTPError(http.StatusForbidden, "invalid signature")
			}
			c.Request().Body = io.NopCloser(bytes.NewReader(body))
			return next(c)
		}
	}
}
