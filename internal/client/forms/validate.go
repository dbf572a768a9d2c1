package forms

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/miy4x/shigezane-admin/internal/client/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// imageurl accepts a durable http(s) URL or a local-preview placeholder.
	_ = validate.RegisterValidation("imageurl", func(fl validator.FieldLevel) bool {
		u := fl.Field().String()
		return models.IsDurableURL(u) || models.IsLocalPreview(u)
	})
}
