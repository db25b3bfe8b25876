package rawjson

import (
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	got, err := Format(`{"id":"abc","name":"Brew"}`)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	want := "{\n  \"id\": \"abc\",\n  \"name\": \"Brew\"\n}"
	if got != want {
		t.Errorf("Format mismatch.\nExpected: %s\nGot: %s", want, got)
	}
}

func TestFormat_Struct(t *testing.T) {
	type record struct {
		ID   string `json:"id"`
		City string `json:"city"`
	}
	got, err := Format(record{ID: "x", City: "Bend"})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(got, `"city": "Bend"`) {
		t.Errorf("expected city line, got %s", got)
	}
}

func TestFormat_InvalidJSON(t *testing.T) {
	if _, err := Format("{not json"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestFormat_Nil(t *testing.T) {
	got, err := Format(nil)
	if err != nil || got != "null" {
		t.Errorf("expected null, got %q (%v)", got, err)
	}
}

func TestCompact(t *testing.T) {
	got, err := Compact("{\n  \"a\": 1\n}")
	if err != nil {
		t.Fatalf("Compact failed: %v", err)
	}
	if got != `{"a":1}` {
		t.Errorf("expected compact JSON, got %s", got)
	}
}

func TestTruncate(t *testing.T) {
	short := `{"a":1}`
	if Truncate(short, 20) != short {
		t.Error("short strings must not be truncated")
	}

	long := `{"name":"A very long brewery name","city":"Somewhere"}`
	got := Truncate(long, 30)
	if len(got) > 30 {
		t.Errorf("expected at most 30 bytes, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis, got %s", got)
	}
}

func TestSplitKey(t *testing.T) {
	indent, key, rest, ok := SplitKey(`  "city": "Bend",`)
	if !ok {
		t.Fatal("expected key to be found")
	}
	if indent != "  " || key != `"city":` || rest != ` "Bend",` {
		t.Errorf("unexpected split: %q %q %q", indent, key, rest)
	}

	_, _, _, ok = SplitKey("  }")
	if ok {
		t.Error("closing brace has no key")
	}
}

func TestHighlight(t *testing.T) {
	pretty, err := Format(`{"name":"Brew","id":"abc"}`)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	got, err := Highlight(pretty, "monokai")
	if err != nil {
		t.Fatalf("Highlight failed: %v", err)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Error("expected ANSI escapes in highlighted output")
	}
	for _, want := range []string{`"name"`, `"Brew"`, `"abc"`} {
		if !strings.Contains(got, want) {
			t.Errorf("highlighted output lost %s", want)
		}
	}
}

func TestHighlight_UnknownStyle(t *testing.T) {
	got, err := Highlight(`{"a": 1}`, "no-such-style")
	if err != nil {
		t.Fatalf("Highlight failed: %v", err)
	}
	if !strings.Contains(got, `"a"`) {
		t.Errorf("expected key to survive, got %q", got)
	}
}
