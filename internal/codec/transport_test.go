package codec

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "aGVsbG8=", "aGVsbG8="},
		{"surrounding whitespace", "  aGVsbG8=\n", "aGVsbG8="},
		{"interior whitespace", "aGVs\tbG8=", "aGVsbG8="},
		{"zero width", "aGVs\u200bbG8=\u200d", "aGVsbG8="},
		{"byte order mark", "\ufeffaGVsbG8=", "aGVsbG8="},
		{"double quotes", `"aGVsbG8="`, "aGVsbG8="},
		{"single quotes", "'aGVsbG8='", "aGVsbG8="},
		{"mixed quotes", `"aGVsbG8='`, "aGVsbG8="},
		{"junk characters", "aGVs,bG8=!", "aGVsbG8="},
		{"lost padding", "aGVsbG8", "aGVsbG8="},
		{"junk then repad", "aGVsbG8\u200b\u2026", "aGVsbG8="},
		{"empty", "", ""},
		{"only junk", "\u2026\u200b ", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("%s: Sanitize(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestSanitizeQuoteThenWhitespaceOrder(t *testing.T) {
	// Quotes that were separated from the token by whitespace must still be
	// recognized as surrounding quotes after step 1 removes the whitespace.
	got := Sanitize("\" aGVsbG8= \"")
	if got != "aGVsbG8=" {
		t.Errorf("Sanitize = %q, want %q", got, "aGVsbG8=")
	}
}

func TestDecodeTextRoundTrip(t *testing.T) {
	payload := []byte("the quick brown fox")
	token := EncodeToText(payload)

	got, err := DecodeText(token)
	if err != nil {
		t.Fatalf("DecodeText: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("round trip = %q, want %q", got, payload)
	}
}

func TestDecodeTextPrintableASCII(t *testing.T) {
	token := EncodeToText([]byte{0x00, 0xff, 0x80, 0x7f})
	for _, r := range token {
		if r < 0x20 || r > 0x7e {
			t.Fatalf("token contains non-printable rune %q", r)
		}
	}
	if strings.ContainsAny(token, " \t\n") {
		t.Fatalf("token contains whitespace: %q", token)
	}
}
