package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrDecodeFailure is the unified error for every decode-path failure:
// invalid base64 after sanitization, a corrupt compressed stream, malformed
// JSON, or an unrecognized payload shape. Callers match it with errors.Is
// and show one generic "could not read code" message; the wrapped cause is
// kept for logs only.
var ErrDecodeFailure = errors.New("codec: could not read code")

// EncodeToText renders bytes as standard-alphabet, padded base64. No
// URL-safe substitution happens here; callers percent-encode the result
// when embedding it in a URL.
func EncodeToText(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeText sanitizes a token that may have been mangled in transit and
// base64-decodes it.
func DecodeText(token string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(Sanitize(token))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64: %v", ErrDecodeFailure, err)
	}
	return data, nil
}

// Sanitize repairs the damage messaging apps, clipboards and hand retyping
// inflict on a token. The steps run in a fixed order: junk characters must
// go before the alphabet filter so legitimate padding is not miscounted,
// and re-padding must come last because every earlier step changes the
// length.
func Sanitize(token string) string {
	// 1. Whitespace from line wrapping and copy margins.
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, token)

	// 2. Zero-width characters and BOMs injected by "smart" copy/paste.
	s = strings.Map(func(r rune) rune {
		if (r >= '\u200b' && r <= '\u200d') || r == '\ufeff' {
			return -1
		}
		return r
	}, s)

	// 3. One surrounding quote from values copied out of shared documents.
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if len(s) > 0 && (s[len(s)-1] == '"' || s[len(s)-1] == '\'') {
		s = s[:len(s)-1]
	}

	// 4. Everything still outside the base64 alphabet.
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '+' || r == '/' || r == '=':
			return r
		}
		return -1
	}, s)

	// 5. Restore padding to a multiple of four.
	if rem := len(s) % 4; rem != 0 {
		s += strings.Repeat("=", 4-rem)
	}
	return s
}
