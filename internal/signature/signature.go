// Package signature implements the Landscape API request-signing
// protocol: request parameters are rendered as a canonical query string
// and signed with HMAC-SHA256 (signature version 2).
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	// SignatureMethod and SignatureVersion are the literals the server
	// expects in every signed request.
	SignatureMethod  = "HmacSHA256"
	SignatureVersion = "2"

	// APIVersion is the API revision this client speaks.
	APIVersion = "2011-08-01"

	timestampFormat = "2006-01-02T15:04:05Z"
)

// Params holds the parameters of a single API call. Map iteration order
// is irrelevant; Canonicalize sorts keys before use.
type Params map[string]string

func (p Params) clone() Params {
	out := make(Params, len(p)+6)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Sign returns a copy of params populated with the standard
// authentication fields (access_key_id, signature_method,
// signature_version, version, timestamp) and the request signature. The
// caller's map is never modified.
//
// The signature is the base64 HMAC-SHA256, keyed by secret, of
//
//	method \n lowercase(host) \n path \n canonical-query-string
//
// where host and path come from the endpoint URL. An endpoint without a
// parsable host is a configuration error.
func Sign(params Params, method, endpoint, accessKey, secret string, now time.Time) (Params, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}

	signed := params.clone()
	signed["access_key_id"] = accessKey
	signed["signature_method"] = SignatureMethod
	signed["signature_version"] = SignatureVersion
	signed["version"] = APIVersion
	signed["timestamp"] = Encode(now.UTC().Format(timestampFormat))

	toSign := stringToSign(method, host, path, Canonicalize(signed))

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(toSign))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	signed["signature"] = Encode(sig)
	return signed, nil
}

// Canonicalize renders params as the canonical query string: keys in
// ascending order, keys always percent-encoded, values percent-encoded
// except for the timestamp parameter and parameters whose key starts
// with "file" (those arrive pre-encoded or intentionally raw and must
// not be encoded twice).
func Canonicalize(params Params) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(Encode(k))
		b.WriteByte('=')
		if k == "timestamp" || strings.HasPrefix(k, "file") {
			b.WriteString(params[k])
		} else {
			b.WriteString(Encode(params[k]))
		}
	}
	return b.String()
}

func stringToSign(method, host, path, canonical string) string {
	return method + "\n" + strings.ToLower(host) + "\n" + path + "\n" + canonical
}

// Encode percent-encodes s for the signing protocol. Unreserved
// characters (A-Z a-z 0-9 - . _ ~) pass through, space becomes %20, and
// any other rune is written as the uppercase hex of its Unicode scalar
// value. This is not generic URL encoding: multi-byte runes encode by
// code point, not byte by byte, matching what the server verifies.
func Encode(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		switch {
		case unreserved(r):
			b.WriteRune(r)
		case r == ' ':
			b.WriteString("%20")
		default:
			fmt.Fprintf(&b, "%%%02X", r)
		}
	}
	return b.String()
}

func unreserved(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' ||
		r == '-' || r == '.' || r == '_' || r == '~'
}
