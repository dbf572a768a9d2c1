package forms

import (
	"fmt"
	"strings"

	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
)

const imagesPrefix = "images."

// ValidateImages applies the image rules for kind: main is always
// required, the kind's diagram role is required, the gallery holds at most
// MaxGalleryImages entries and every value is a URL or placeholder.
func ValidateImages(kind models.Kind, imgs *models.ImageSet) FieldErrors {
	errs := FieldErrors{}
	required, hasRequired := kind.RequiredImage()

	for _, role := range []models.ImageRole{models.RoleMain, models.RoleFloorplan, models.RoleSurvey, models.RoleLayout} {
		u := imgs.Get(models.ImageField{Role: role})
		mandatory := role == models.RoleMain || (hasRequired && role == required)
		if (u == "" && mandatory) || (u != "" && validate.Var(u, "imageurl") != nil) {
			errs.add(imagesPrefix+string(role), imageTexts[role])
		}
	}

	if len(imgs.Gallery) > models.MaxGalleryImages {
		errs.add(imagesPrefix+string(models.RoleGallery), msgGalleryTooLong)
	}
	for i, u := range imgs.Gallery {
		if validate.Var(u, "required,imageurl") != nil {
			errs.add(imagesPrefix+models.ImageField{Role: models.RoleGallery, Index: i}.String(), msgInvalidImageURL)
		}
	}
	return errs
}

// EnsureDurable is the submit guard: it fails with ErrPendingUpload on the
// first image field still holding a local-preview placeholder.
func EnsureDurable(imgs *models.ImageSet) error {
	if imgs == nil {
		return nil
	}
	for _, f := range imgs.Fields() {
		if models.IsLocalPreview(imgs.Get(f)) {
			return fmt.Errorf("%w: %s", ErrPendingUpload, f)
		}
	}
	return nil
}

// CheckImageFile rejects a picked file before any upload starts: only
// JPEG, PNG and WebP up to 10 MB are accepted.
func CheckImageFile(name, mime string, size int64) error {
	if err := upload.CheckFile(strings.ToLower(mime), size); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
