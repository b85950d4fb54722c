package sandbox

import (
	"fmt"
	"html"
	"strings"

	"github.com/soletra/backdrop-backend/internal/domain"
)

// jsStringEscaper makes a value safe inside a JS string literal. The </
// rewrite keeps a literal "</script" from terminating the surrounding
// script element.
var jsStringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"</", `<\/`,
)

func escapeHTMLText(s string) string { return html.EscapeString(s) }

func escapeJSString(s string) string { return jsStringEscaper.Replace(s) }

// guardScriptEnd rewrites "</script" in raw snippet text so preset code
// cannot terminate the script element it is embedded in.
func guardScriptEnd(js string) string {
	return strings.ReplaceAll(js, "</script", `<\/script`)
}

// BuildDocument assembles the self-contained page mounted into a host:
// preset markup in the body, styles in a style block, and the script
// wrapped in try/catch so the outcome is always reported through the
// host binding. Markup arrives already sanitized; the id and version
// hash are escaped for the context they land in.
func BuildDocument(p domain.ActivePresetPayload) string {
	var b strings.Builder

	report := fmt.Sprintf(
		`window.%s && window.%s(JSON.stringify(r));`,
		BindingName, BindingName,
	)

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	b.WriteString(p.CSS)
	b.WriteString("\n</style>\n</head>\n")

	fmt.Fprintf(&b, "<body data-preset-id=\"%s\" data-version=\"%s\" data-motion=\"%s\">\n",
		escapeHTMLText(p.ID), escapeHTMLText(p.VersionHash), escapeHTMLText(p.MotionProfile.String()))
	b.WriteString(p.HTML)
	b.WriteString("\n<script>\n(function () {\n  var r;\n  try {\n")
	b.WriteString(guardScriptEnd(p.JS))
	fmt.Fprintf(&b, "\n    r = { ok: true, presetId: \"%s\", version: \"%s\" };\n",
		escapeJSString(p.ID), escapeJSString(p.VersionHash))
	fmt.Fprintf(&b, "  } catch (err) {\n    r = { ok: false, presetId: \"%s\", message: String(err && err.message || err) };\n  }\n",
		escapeJSString(p.ID))
	b.WriteString("  ")
	b.WriteString(report)
	b.WriteString("\n})();\n</script>\n</body>\n</html>\n")

	return b.String()
}
