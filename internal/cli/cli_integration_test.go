package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes one billcraft command against a fixture workspace dir and
// returns decoded JSON output.
func run(t *testing.T, dir string, args ...string) map[string]any {
	t.Helper()
	out := runRaw(t, dir, args...)
	var v map[string]any
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("output is not JSON (%v):\n%s", err, out)
	}
	return v
}

func runRaw(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--dir", dir}, args...))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("billcraft %s: %v\nstderr: %s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String()
}

func data(t *testing.T, v map[string]any) map[string]any {
	t.Helper()
	d, ok := v["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data envelope: %v", v)
	}
	return d
}

func TestItemsAddSetRemove_Flow(t *testing.T) {
	dir := t.TempDir()

	// Defaults start with one empty item.
	d := data(t, run(t, dir, "items", "list"))
	items := d["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 default item; got %d", len(items))
	}
	firstID := items[0].(map[string]any)["id"].(string)

	// Fill in the first row, then add a second.
	run(t, dir, "items", "set", firstID, "description", "Design work")
	run(t, dir, "items", "set", firstID, "quantity", "2")
	run(t, dir, "items", "set", firstID, "price", "10")
	d = data(t, run(t, dir, "items", "add", "--description", "Hosting", "--price", "5"))
	secondID := d["item"].(map[string]any)["id"].(string)

	run(t, dir, "set", "tax", "10")
	run(t, dir, "set", "discount", "5")

	d = data(t, run(t, dir, "totals"))
	tot := d["totals"].(map[string]any)
	if tot["subtotal"].(float64) != 25 {
		t.Fatalf("subtotal: got %v, want 25", tot["subtotal"])
	}
	if tot["total"].(float64) != 26.25 {
		t.Fatalf("total: got %v, want 26.25", tot["total"])
	}

	// Remove the second row; removing the last one must fail.
	run(t, dir, "items", "remove", secondID)
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dir", dir, "items", "remove", firstID})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error removing the last item")
	}
	d = data(t, run(t, dir, "items", "list"))
	if got := len(d["items"].([]any)); got != 1 {
		t.Fatalf("expected 1 item left; got %d", got)
	}
}

func TestShareOpen_RoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	dstDir := t.TempDir()

	d := data(t, run(t, srcDir, "items", "list"))
	id := d["items"].([]any)[0].(map[string]any)["id"].(string)
	run(t, srcDir, "items", "set", id, "description", "Design")
	run(t, srcDir, "items", "set", id, "price", "99")
	run(t, srcDir, "set", "currency", "EUR")
	run(t, srcDir, "set", "number", "INV-777")

	link := strings.TrimSpace(runRaw(t, srcDir, "share", "--raw"))
	if !strings.Contains(link, "data=") {
		t.Fatalf("unexpected link: %q", link)
	}

	d = data(t, run(t, dstDir, "open", link))
	inv := d["invoice"].(map[string]any)
	if inv["invoiceNumber"] != "INV-777" || inv["currency"] != "EUR" {
		t.Fatalf("import mismatch: %v", inv)
	}

	// The import is durable.
	d = data(t, run(t, dstDir, "show"))
	if d["invoice"].(map[string]any)["invoiceNumber"] != "INV-777" {
		t.Fatalf("imported state not persisted")
	}
}

func TestOpen_MalformedDataFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "set", "number", "INV-KEEP")

	// Malformed payload: defaults win, not the stored snapshot.
	d := data(t, run(t, dir, "open", "https://billcraft.app/i?data=!!!garbage!!!"))
	inv := d["invoice"].(map[string]any)
	if inv["invoiceNumber"] != "INV-001" {
		t.Fatalf("expected defaults after malformed link; got %v", inv["invoiceNumber"])
	}
}

func TestOpen_NoDataParamKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "set", "number", "INV-KEEP")

	d := data(t, run(t, dir, "open", "https://billcraft.app/i"))
	inv := d["invoice"].(map[string]any)
	if inv["invoiceNumber"] != "INV-KEEP" {
		t.Fatalf("expected stored snapshot kept; got %v", inv["invoiceNumber"])
	}
}

func TestExport_WritesPDFAndArchives(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.pdf")

	run(t, dir, "export", "--out", out)

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected PDF written: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Fatalf("not a PDF: %q", b[:8])
	}

	d := data(t, run(t, dir, "archive", "list"))
	exps := d["exports"].([]any)
	if len(exps) != 1 {
		t.Fatalf("expected 1 archived export; got %d", len(exps))
	}
	if exps[0].(map[string]any)["path"] != out {
		t.Fatalf("archived path mismatch: %v", exps[0])
	}
}

func TestEventsList_RecordsEdits(t *testing.T) {
	dir := t.TempDir()
	run(t, dir, "set", "tax", "10")
	run(t, dir, "items", "add")

	d := data(t, run(t, dir, "events", "list"))
	evs := d["events"].([]any)
	if len(evs) < 2 {
		t.Fatalf("expected at least 2 events; got %d", len(evs))
	}
	types := map[string]bool{}
	for _, e := range evs {
		types[e.(map[string]any)["type"].(string)] = true
	}
	if !types["invoice.set_tax"] || !types["item.add"] {
		t.Fatalf("missing event types: %v", types)
	}
}

func TestValidationWarning_DoesNotBlockWrite(t *testing.T) {
	dir := t.TempDir()

	d := data(t, run(t, dir, "items", "list"))
	id := d["items"].([]any)[0].(map[string]any)["id"].(string)

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--dir", dir, "items", "set", id, "quantity", "0"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("validation must not block the write: %v", err)
	}
	if !strings.Contains(stderr.String(), "Quantity must be at least 1") {
		t.Fatalf("expected validation warning on stderr; got %q", stderr.String())
	}

	var v map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &v); err != nil {
		t.Fatalf("bad output: %v", err)
	}
	item := data(t, v)["item"].(map[string]any)
	if item["quantity"].(float64) != 0 {
		t.Fatalf("expected quantity 0 written; got %v", item["quantity"])
	}
}
