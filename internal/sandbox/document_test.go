package sandbox

import (
	"strings"
	"testing"

	"github.com/soletra/backdrop-backend/internal/domain"
)

func TestBuildDocument_ContainsPresetContent(t *testing.T) {
	doc := BuildDocument(domain.ActivePresetPayload{
		ID:            "p1",
		HTML:          `<div class="aurora"></div>`,
		CSS:           ".aurora{background:linear-gradient(teal,navy)}",
		JS:            "document.body.dataset.ready = '1';",
		MotionProfile: domain.MotionSubtle,
		VersionHash:   "deadbeef",
	})

	for _, want := range []string{
		`<div class="aurora"></div>`,
		".aurora{background:linear-gradient(teal,navy)}",
		"document.body.dataset.ready = '1';",
		`data-preset-id="p1"`,
		`data-version="deadbeef"`,
		`data-motion="subtle"`,
		"try {",
		"} catch (err) {",
		"window." + BindingName,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestBuildDocument_EscapesHTMLAttributes(t *testing.T) {
	doc := BuildDocument(domain.ActivePresetPayload{
		ID:          `p"><script>alert(1)</script>`,
		VersionHash: "v&1",
	})

	if strings.Contains(doc, `data-preset-id="p"><script>`) {
		t.Error("preset id broke out of its attribute")
	}
	if !strings.Contains(doc, "data-preset-id=\"p&#34;&gt;&lt;script&gt;") {
		t.Error("preset id was not HTML-escaped")
	}
	if !strings.Contains(doc, `data-version="v&amp;1"`) {
		t.Error("version hash was not HTML-escaped")
	}
}

func TestBuildDocument_EscapesJSStringInterpolations(t *testing.T) {
	doc := BuildDocument(domain.ActivePresetPayload{
		ID:          "p\"1\\2\n3",
		VersionHash: "v'9",
	})

	if !strings.Contains(doc, `presetId: "p\"1\\2\n3"`) {
		t.Error("preset id was not JS-string-escaped")
	}
	if !strings.Contains(doc, `version: "v\'9"`) {
		t.Error("version hash was not JS-string-escaped")
	}
}

func TestBuildDocument_GuardsScriptTerminator(t *testing.T) {
	doc := BuildDocument(domain.ActivePresetPayload{
		ID: "p1",
		JS: `var s = "</script><img src=x>";`,
	})

	if strings.Contains(doc, `var s = "</script>`) {
		t.Error("snippet terminated the script element")
	}
	if !strings.Contains(doc, `var s = "<\/script>`) {
		t.Error("script terminator was not rewritten")
	}
}

func TestEscapeJSString(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`plain`, `plain`},
		{`a\b`, `a\\b`},
		{`say "hi"`, `say \"hi\"`},
		{"line1\nline2", `line1\nline2`},
		{"cr\rend", `cr\rend`},
		{`</script>`, `<\/script>`},
	}
	for _, c := range cases {
		if got := escapeJSString(c.in); got != c.want {
			t.Errorf("escapeJSString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
