package preset

import (
	"strconv"

	"github.com/soletra/backdrop-backend/internal/adapter/contentstore"
	"github.com/soletra/backdrop-backend/internal/domain"
)

// Input is the admin-supplied payload for creating or updating a preset.
type Input struct {
	Handle                string
	Title                 string
	Slug                  string
	HTMLMarkup            string
	CSSStyles             string
	JSSnippet             string
	MotionProfile         domain.MotionProfile
	SupportsReducedMotion bool
	ThumbnailURL          string
}

// validate enforces required fields, motion profile values, and content
// ceilings. An empty motion profile defaults to full.
func (in *Input) validate(limits domain.ContentLimits) error {
	var errs []domain.FieldError

	if in.Title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if in.Handle == "" {
		errs = append(errs, domain.FieldError{Field: "handle", Message: "required"})
	}

	if in.MotionProfile == "" {
		in.MotionProfile = domain.MotionFull
	} else if !in.MotionProfile.Valid() {
		errs = append(errs, domain.FieldError{Field: "motionProfile", Message: "must be full, subtle, or static"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}

	return domain.CheckContentSize(in.HTMLMarkup, in.CSSStyles, in.JSSnippet, limits)
}

// fields flattens the input into the store's key/value field bundle.
func (in *Input) fields() []contentstore.Field {
	return []contentstore.Field{
		{Key: fieldHandle, Value: in.Handle},
		{Key: fieldTitle, Value: in.Title},
		{Key: fieldSlug, Value: in.Slug},
		{Key: fieldHTML, Value: in.HTMLMarkup},
		{Key: fieldCSS, Value: in.CSSStyles},
		{Key: fieldJS, Value: in.JSSnippet},
		{Key: fieldMotionProfile, Value: in.MotionProfile.String()},
		{Key: fieldReducedMotion, Value: strconv.FormatBool(in.SupportsReducedMotion)},
		{Key: fieldThumbnail, Value: in.ThumbnailURL},
	}
}
