// Package share encodes the full invoice state into a URL so it can be
// handed to someone else without any server in between.
package share

import (
	"encoding/base64"
	"encoding/json"
	"net/url"
	"strings"

	"billcraft-cli/internal/model"
)

const (
	// BaseURL is where the share link points; the state travels entirely in
	// the query string, so the host never has to exist for `open` to work.
	BaseURL = "https://billcraft.app/i"

	dataParam = "data"
)

// Encode returns a shareable link with the invoice JSON base64url-encoded in
// the data parameter.
func Encode(inv model.Invoice) (string, error) {
	b, err := json.Marshal(inv)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set(dataParam, base64.RawURLEncoding.EncodeToString(b))
	return BaseURL + "?" + q.Encode(), nil
}

// Decode parses a share link (or a bare data payload).
//
// The three outcomes mirror the startup priority rules:
//   - (inv, true, nil): the link carried valid state.
//   - (zero, false, nil): no data parameter at all — callers fall through to
//     the stored snapshot.
//   - (zero, true, err): a data parameter was present but malformed —
//     callers fall through to the built-in defaults, not the snapshot.
func Decode(raw string) (model.Invoice, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Invoice{}, false, nil
	}

	payload := raw
	if strings.Contains(raw, "://") || strings.ContainsAny(raw, "?&") {
		u, err := url.Parse(raw)
		if err != nil {
			return model.Invoice{}, true, err
		}
		payload = u.Query().Get(dataParam)
		if payload == "" {
			return model.Invoice{}, false, nil
		}
	}

	b, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		// Tolerate padded/standard encodings from hand-built links.
		if b2, err2 := base64.URLEncoding.DecodeString(payload); err2 == nil {
			b = b2
		} else if b3, err3 := base64.StdEncoding.DecodeString(payload); err3 == nil {
			b = b3
		} else {
			return model.Invoice{}, true, err
		}
	}

	var inv model.Invoice
	if err := json.Unmarshal(b, &inv); err != nil {
		return model.Invoice{}, true, err
	}
	inv.Normalize()
	return inv, true, nil
}
