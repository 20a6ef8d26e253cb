package util

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// SignBody returns the base64 HMAC-SHA256 of body, the form LINE sends in
// X-Line-Signature.
func SignBody(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

func ConstantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// MaskUserID keeps the first 6 characters of a platform user id for logs.
func MaskUserID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[:6] + "***"
}
