// Package share handles the two ways a token travels between people: as the
// `m` query parameter of a share URL and as hand-pasted text that may carry
// a MENU: prefix or actually be a cloud room id.
package share

import (
	"fmt"
	"net/url"
	"strings"
)

// MenuParam is the query parameter carrying a menu token. Its presence on a
// page load triggers an automatic decode, so the name is part of the share
// URL contract.
const MenuParam = "m"

// MenuPrefix marks hand-typed input as an encoded token, disambiguating it
// from a room id entered in the same field.
const MenuPrefix = "MENU:"

// roomIDMaxLen bounds the "short input with no colon is a room id"
// heuristic. Tokens are always far longer than store ids.
const roomIDMaxLen = 25

// MenuURL appends a percent-encoded menu token to a base URL.
func MenuURL(base, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("share: parse base url: %w", err)
	}
	q := u.Query()
	q.Set(MenuParam, token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExtractToken pulls the token out of whatever the user pasted: a full share
// URL, a query-string fragment containing m=, or the bare token itself.
func ExtractToken(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, MenuParam+"=") {
		return input
	}

	query := input
	if i := strings.IndexByte(input, '?'); i >= 0 {
		query = input[i+1:]
	}
	values, err := url.ParseQuery(query)
	if err == nil {
		if token := values.Get(MenuParam); token != "" {
			return token
		}
	}
	return input
}

// InputKind classifies hand-typed import input.
type InputKind int

const (
	// InputToken is an encoded menu or order token.
	InputToken InputKind = iota + 1
	// InputRoomID is a cloud room identifier.
	InputRoomID
)

// Input is classified user input with the value stripped of markers.
type Input struct {
	Kind  InputKind
	Value string
}

// ClassifyInput decides whether pasted text is a room id or an encoded
// token. A MENU: prefix forces token; otherwise short input without a colon
// is taken as a room id and everything else as a token.
func ClassifyInput(raw string) Input {
	s := strings.TrimSpace(raw)
	if rest, ok := strings.CutPrefix(s, MenuPrefix); ok {
		return Input{Kind: InputToken, Value: strings.TrimSpace(rest)}
	}
	if len(s) < roomIDMaxLen && !strings.Contains(s, ":") {
		return Input{Kind: InputRoomID, Value: s}
	}
	return Input{Kind: InputToken, Value: ExtractToken(s)}
}

// CallbackURL reads the callback endpoint from menu envelope metadata. Both
// the current key and the legacy spreadsheet-hook key are honored so old
// tokens keep working.
func CallbackURL(extra map[string]any) string {
	for _, key := range []string{"callback", "gas"} {
		if v, ok := extra[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
