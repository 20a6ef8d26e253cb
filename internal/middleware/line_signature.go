package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	apperrors "github.com/fuelinnovation/line-autoreply/internal/errors"
	"github.com/fuelinnovation/line-autoreply/internal/httputil"
	"github.com/fuelinnovation/line-autoreply/internal/util"
)

const LineSignatureHeader = "X-Line-Signature"

// LineSignatureMiddleware rejects webhook deliveries whose body was not
// signed with the channel secret.
type LineSignatureMiddleware struct {
	secret string
}

func NewLineSignatureMiddleware(secret string) *LineSignatureMiddleware {
	return &LineSignatureMiddleware{secret: secret}
}

func (m *LineSignatureMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.secret == "" {
			log.Warn().Msg("LINE signature verification bypassed: LINE_CHANNEL_SECRET is not configured")
			next.ServeHTTP(w, r)
			return
		}

		signature := r.Header.Get(LineSignatureHeader)
		if signature == "" {
			log.Warn().Msg("line signature middleware: missing signature header")
			httputil.WriteError(w, apperrors.InvalidSignature("Missing signature"))
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error().Err(err).Msg("line signature middleware: failed to read body")
			httputil.WriteError(w, apperrors.InvalidInput("body", "unreadable request body"))
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if !util.ConstantTimeEqual(util.SignBody(m.secret, body), signature) {
			log.Warn().Msg("line signature middleware: invalid signature")
			httputil.WriteError(w, apperrors.InvalidSignature("Invalid signature"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
