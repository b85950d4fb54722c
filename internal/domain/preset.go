package domain

// MotionProfile describes how much motion a preset is allowed to render.
type MotionProfile string

const (
	MotionFull   MotionProfile = "full"
	MotionSubtle MotionProfile = "subtle"
	MotionStatic MotionProfile = "static"
)

// Valid reports whether the value is one of the known profiles.
func (m MotionProfile) Valid() bool {
	switch m {
	case MotionFull, MotionSubtle, MotionStatic:
		return true
	}
	return false
}

func (m MotionProfile) String() string { return string(m) }

// ContentLimits are the per-field character ceilings for preset content,
// enforced at both write time and read time.
type ContentLimits struct {
	MaxHTML int
	MaxCSS  int
	MaxJS   int
}

// DefaultContentLimits returns the standard ceilings.
func DefaultContentLimits() ContentLimits {
	return ContentLimits{MaxHTML: 50000, MaxCSS: 25000, MaxJS: 25000}
}

// BackgroundPreset is a stored bundle of markup, styles, and script that
// renders as an ambient visual behind the storefront. The external content
// store is authoritative; this type is never cached by the repository.
type BackgroundPreset struct {
	ID                    string
	Handle                string
	Title                 string
	Slug                  string
	HTMLMarkup            string
	CSSStyles             string
	JSSnippet             string
	MotionProfile         MotionProfile
	SupportsReducedMotion bool
	ThumbnailURL          *string
	IsActive              bool
	UpdatedAt             string
}

// CheckContentSize validates the preset's content fields against the given
// ceilings. Returns a ValidationError listing every oversized field.
func (p *BackgroundPreset) CheckContentSize(limits ContentLimits) error {
	return CheckContentSize(p.HTMLMarkup, p.CSSStyles, p.JSSnippet, limits)
}

// CheckContentSize validates raw content fields against the given ceilings.
func CheckContentSize(html, css, js string, limits ContentLimits) error {
	var errs []FieldError
	if len(html) > limits.MaxHTML {
		errs = append(errs, FieldError{Field: "htmlMarkup", Message: oversized(len(html), limits.MaxHTML)})
	}
	if len(css) > limits.MaxCSS {
		errs = append(errs, FieldError{Field: "cssStyles", Message: oversized(len(css), limits.MaxCSS)})
	}
	if len(js) > limits.MaxJS {
		errs = append(errs, FieldError{Field: "jsSnippet", Message: oversized(len(js), limits.MaxJS)})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}
