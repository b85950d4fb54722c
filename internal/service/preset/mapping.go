package preset

import (
	"strings"

	"github.com/soletra/backdrop-backend/internal/adapter/contentstore"
	"github.com/soletra/backdrop-backend/internal/domain"
)

// Store field keys for the background_preset record type.
const (
	fieldHandle        = "handle"
	fieldTitle         = "title"
	fieldSlug          = "slug"
	fieldHTML          = "html_markup"
	fieldCSS           = "css_styles"
	fieldJS            = "js_snippet"
	fieldMotionProfile = "motion_profile"
	fieldReducedMotion = "supports_reduced_motion"
	fieldThumbnail     = "thumbnail"
	fieldIsActive      = "is_active"
)

// mapRecord extracts a typed preset from the flat field bundle,
// substituting defaults for missing fields: motion profile falls back to
// full, reduced-motion support to true, active flag to false.
func mapRecord(r contentstore.Record) domain.BackgroundPreset {
	p := domain.BackgroundPreset{
		ID:         r.ID,
		Handle:     firstNonEmpty(r.FieldValue(fieldHandle), r.Handle),
		Title:      r.FieldValue(fieldTitle),
		Slug:       r.FieldValue(fieldSlug),
		HTMLMarkup: r.FieldValue(fieldHTML),
		CSSStyles:  r.FieldValue(fieldCSS),
		JSSnippet:  r.FieldValue(fieldJS),
		UpdatedAt:  r.UpdatedAt,
	}

	p.MotionProfile = domain.MotionProfile(r.FieldValue(fieldMotionProfile))
	if !p.MotionProfile.Valid() {
		p.MotionProfile = domain.MotionFull
	}

	p.SupportsReducedMotion = r.FieldValue(fieldReducedMotion) != "false"
	p.IsActive = r.FieldValue(fieldIsActive) == "true"
	p.ThumbnailURL = resolveThumbnail(r.FieldByKey(fieldThumbnail))

	return p
}

// resolveThumbnail prefers a direct URL value and otherwise takes the
// first attached image reference.
func resolveThumbnail(f *contentstore.Field) *string {
	if f == nil {
		return nil
	}
	if f.Value != "" {
		v := f.Value
		return &v
	}
	for _, ref := range f.References {
		if ref.URL != "" && strings.HasPrefix(ref.MediaType, "image/") {
			u := ref.URL
			return &u
		}
	}
	return nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
