package twilio

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"sort"
)

// RequestValidator checks the X-Twilio-Signature header Twilio attaches
// to webhook callbacks: base64(HMAC-SHA1(authToken, url + params sorted
// by name with values appended)).
type RequestValidator struct {
	authToken string
}

func NewRequestValidator(authToken string) *RequestValidator {
	return &RequestValidator{authToken: authToken}
}

func (v *RequestValidator) Validate(url string, params map[string]string, signature string) bool {
	expected := v.sign(url, params)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

func (v *RequestValidator) sign(url string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mac := hmac.New(sha1.New, []byte(v.authToken))
	mac.Write([]byte(url))
	for _, k := range keys {
		mac.Write([]byte(k))
		mac.Write([]byte(params[k]))
	}

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
