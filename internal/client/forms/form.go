package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
)

// Form is the editable state of one record of kind Kind. ID is zero while
// creating.
type Form[I any] struct {
	Kind   models.Kind
	ID     int64
	Values I

	pending  map[string]upload.File
	replaced []string
	errors   FieldErrors
}

func NewCreateForm[I any](kind models.Kind, defaults I) *Form[I] {
	return &Form[I]{Kind: kind, Values: defaults, pending: map[string]upload.File{}}
}

func NewEditForm[I any](kind models.Kind, id int64, values I) *Form[I] {
	return &Form[I]{Kind: kind, ID: id, Values: values, pending: map[string]upload.File{}}
}

func (f *Form[I]) IsEdit() bool { return f.ID != 0 }

// Images returns the form's image set, or nil for kinds without images.
func (f *Form[I]) Images() *models.ImageSet {
	if h, ok := any(&f.Values).(models.ImageHolder); ok {
		return h.ImageSet()
	}
	return nil
}

// Errors returns the result of the last Validate call.
func (f *Form[I]) Errors() FieldErrors { return f.errors }

// Validate checks every field and returns *ValidationError listing the
// first failing rule per field.
func (f *Form[I]) Validate() error {
	errs := FieldErrors{}

	if err := validate.Struct(&f.Values); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			errs.add(fe.Field(), messageFor(f.Kind, fe))
		}
	}

	if p, ok := any(&f.Values).(models.ParkingOption); ok {
		available, fee := p.Parking()
		switch {
		case !available:
			delete(errs, "parking_fee")
		case fee == nil:
			errs.add("parking_fee", msgParkingFeeRequired)
		}
	}

	if imgs := f.Images(); imgs != nil {
		for field, msg := range ValidateImages(f.Kind, imgs) {
			errs.add(field, msg)
		}
	}

	f.errors = errs
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

// Payload is the input to send. A parking fee hidden by the toggle is
// left out of the payload but kept in Values.
func (f *Form[I]) Payload() I {
	out := f.Values
	if h, ok := any(&out).(models.ImageHolder); ok {
		imgs := h.ImageSet()
		*imgs = imgs.Clone()
	}
	if p, ok := any(&out).(models.ParkingOption); ok {
		if available, _ := p.Parking(); !available {
			p.DropParkingFee()
		}
	}
	return out
}

// PendingImage is a picked file waiting to be uploaded into Field.
type PendingImage struct {
	Field models.ImageField
	File  upload.File
}

// AttachImage checks f and puts a placeholder for path into field. A
// durable URL it displaces is remembered for deletion after a successful
// submit. Attaching to gallery[len] appends.
func (f *Form[I]) AttachImage(field models.ImageField, path string, file upload.File) error {
	imgs := f.Images()
	if imgs == nil {
		return errors.New(string(f.Kind) + " records have no images")
	}
	if err := CheckImageFile(file.Name, file.ContentType, file.Size()); err != nil {
		return err
	}
	if field.Role == models.RoleGallery && field.Index >= len(imgs.Gallery) {
		if len(imgs.Gallery) >= models.MaxGalleryImages {
			return errors.New(msgGalleryTooLong)
		}
		field.Index = len(imgs.Gallery)
	}

	f.displace(imgs.Get(field))
	placeholder := models.LocalPreview(path)
	f.pending[placeholder] = file
	imgs.Set(field, placeholder)
	return nil
}

// RemoveImage clears field. Removing a gallery entry shifts later ones down.
func (f *Form[I]) RemoveImage(field models.ImageField) {
	imgs := f.Images()
	if imgs == nil {
		return
	}
	f.displace(imgs.Get(field))
	imgs.Set(field, "")
}

func (f *Form[I]) displace(old string) {
	if models.IsDurableURL(old) {
		f.replaced = append(f.replaced, old)
	}
}

// Pending lists placeholders that have a file ready to upload, in field order.
func (f *Form[I]) Pending() []PendingImage {
	imgs := f.Images()
	if imgs == nil {
		return nil
	}
	var out []PendingImage
	for _, field := range imgs.Fields() {
		if file, ok := f.pending[imgs.Get(field)]; ok {
			out = append(out, PendingImage{Field: field, File: file})
		}
	}
	return out
}

// Resolve stores the uploaded URL for field if it still holds a placeholder.
func (f *Form[I]) Resolve(field models.ImageField, url string) {
	imgs := f.Images()
	if imgs == nil || !models.IsLocalPreview(imgs.Get(field)) {
		return
	}
	imgs.Set(field, url)
}

// Replaced lists durable URLs the form no longer references. They are
// deleted from storage once the submit succeeds.
func (f *Form[I]) Replaced() []string {
	return append([]string(nil), f.replaced...)
}

// Saved clears upload bookkeeping after a successful submit and records
// the id assigned on create.
func (f *Form[I]) Saved(id int64) {
	f.ID = id
	f.replaced = nil
	for k := range f.pending {
		delete(f.pending, k)
	}
}
