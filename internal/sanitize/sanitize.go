// Package sanitize strips stored-script injection vectors from admin
// authored preset markup. This is the only mitigation on the markup path:
// raw CSS and JS are admin-trusted and pass through unmodified elsewhere.
package sanitize

import "github.com/microcosm-cc/bluemonday"

// Markup sanitizes preset HTML with a conservative UGC policy extended
// for ambient background visuals: SVG shapes, gradients, and filter
// primitives plus common styling attributes. Sanitization is idempotent.
type Markup struct {
	policy *bluemonday.Policy
}

// NewMarkup builds the policy once; the returned sanitizer is safe for
// concurrent use.
func NewMarkup() *Markup {
	p := bluemonday.UGCPolicy()

	// Styling hooks the UGC baseline strips.
	p.AllowAttrs("style", "class", "id").Globally()

	// SVG containers, shapes, and paint servers.
	svgElements := []string{
		"svg", "g", "defs", "use", "symbol",
		"circle", "ellipse", "rect", "line", "polyline", "polygon", "path",
		"linearGradient", "radialGradient", "stop",
		"mask", "clipPath", "pattern",
	}
	p.AllowElements(svgElements...)
	p.AllowAttrs(
		"viewBox", "xmlns", "preserveAspectRatio", "width", "height",
		"x", "y", "x1", "y1", "x2", "y2", "cx", "cy", "r", "rx", "ry",
		"d", "points", "transform", "opacity",
		"fill", "fill-opacity", "fill-rule",
		"stroke", "stroke-width", "stroke-opacity", "stroke-linecap", "stroke-dasharray",
		"offset", "stop-color", "stop-opacity",
		"gradientUnits", "gradientTransform", "spreadMethod",
		"mask", "clip-path", "clip-rule",
	).OnElements(svgElements...)

	// Filter primitives used by blur/glow style backgrounds.
	filterElements := []string{
		"filter", "feGaussianBlur", "feColorMatrix", "feBlend",
		"feTurbulence", "feDisplacementMap", "feOffset", "feMerge", "feMergeNode",
	}
	p.AllowElements(filterElements...)
	p.AllowAttrs(
		"id", "x", "y", "width", "height", "filterUnits",
		"in", "in2", "result", "mode", "stdDeviation",
		"type", "values", "baseFrequency", "numOctaves", "seed",
		"scale", "xChannelSelector", "yChannelSelector", "dx", "dy",
	).OnElements(filterElements...)
	p.AllowAttrs("filter").Globally()

	return &Markup{policy: p}
}

// Sanitize returns the markup with everything outside the allowlist
// removed.
func (m *Markup) Sanitize(html string) string {
	return m.policy.Sanitize(html)
}
