package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write writes CLI output in the requested format.
//
// Supported formats:
// - json (default)
// - text (callers pass a pre-rendered string)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("text format needs a rendered string, got %T", v)
		}
		_, err := fmt.Fprint(w, s)
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: Output stays strict JSON only. If a command needs to point at more
// data, it should add a `meta` object rather than trailing prose.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}
