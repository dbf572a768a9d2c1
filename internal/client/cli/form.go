package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/miy4x/shigezane-admin/internal/client/filters"
	"github.com/miy4x/shigezane-admin/internal/client/forms"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/services"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
)

var imageLabels = map[models.ImageRole]string{
	models.RoleMain:      "サムネイル",
	models.RoleFloorplan: "間取り図",
	models.RoleSurvey:    "測量図",
	models.RoleLayout:    "区画図",
	models.RoleGallery:   "ギャラリー",
}

func imageLabel(f models.ImageField) string {
	if f.Role == models.RoleGallery {
		return fmt.Sprintf("%s%d", imageLabels[f.Role], f.Index+1)
	}
	return imageLabels[f.Role]
}

func recordImages(rec any) *models.ImageSet {
	switch r := rec.(type) {
	case models.RentalUnit:
		return &r.Images
	case models.WeeklyUnit:
		return &r.Images
	case models.LandProperty:
		return &r.Images
	case models.HouseProperty:
		return &r.Images
	case models.ParkingLot:
		return &r.Images
	}
	return nil
}

// New prompts for a record of the given kind and saves it.
func (a *App) New(ctx context.Context, args []string) error {
	kind, err := parseKindArg(args, 0)
	if errors.Is(err, errUsage) {
		return usage("new <kind>")
	}
	if err != nil {
		return a.fail(ctx, err)
	}

	r := a.registry
	switch kind {
	case models.KindRental:
		return submitForm(ctx, a, r.Rentals, forms.NewCreateForm(kind, forms.DefaultRentalInput()))
	case models.KindWeekly:
		return submitForm(ctx, a, r.Weeklies, forms.NewCreateForm(kind, forms.DefaultWeeklyInput()))
	case models.KindLand:
		return submitForm(ctx, a, r.Lands, forms.NewCreateForm(kind, forms.DefaultLandInput()))
	case models.KindHouse:
		return submitForm(ctx, a, r.Houses, forms.NewCreateForm(kind, forms.DefaultHouseInput()))
	case models.KindParking:
		return submitForm(ctx, a, r.ParkingSpaces, forms.NewCreateForm(kind, forms.DefaultParkingSpaceInput()))
	case models.KindBuilding:
		return submitForm(ctx, a, r.Buildings, forms.NewCreateForm(kind, forms.DefaultBuildingInput()))
	case models.KindParkingLot:
		return submitForm(ctx, a, r.ParkingLots, forms.NewCreateForm(kind, forms.DefaultParkingLotInput()))
	}
	return a.fail(ctx, fmt.Errorf("unknown kind %q", kind))
}

// Edit loads a record, prompts with its current values and saves it.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usage("edit <kind> <id>")
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return a.fail(ctx, err)
	}
	id, err := parseID(args[1])
	if err != nil {
		return a.fail(ctx, err)
	}

	r := a.registry
	switch kind {
	case models.KindRental:
		return editRecord(ctx, a, r.Rentals, id, forms.RentalInputFrom)
	case models.KindWeekly:
		return editRecord(ctx, a, r.Weeklies, id, forms.WeeklyInputFrom)
	case models.KindLand:
		return editRecord(ctx, a, r.Lands, id, forms.LandInputFrom)
	case models.KindHouse:
		return editRecord(ctx, a, r.Houses, id, forms.HouseInputFrom)
	case models.KindParking:
		return editRecord(ctx, a, r.ParkingSpaces, id, forms.ParkingSpaceInputFrom)
	case models.KindBuilding:
		return editRecord(ctx, a, r.Buildings, id, forms.BuildingInputFrom)
	case models.KindParkingLot:
		return editRecord(ctx, a, r.ParkingLots, id, forms.ParkingLotInputFrom)
	}
	return a.fail(ctx, fmt.Errorf("unknown kind %q", kind))
}

func editRecord[T services.Record, I any](ctx context.Context, a *App, svc *services.EntityService[T, I], id int64, prefill func(T) I) error {
	rec, err := svc.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	return submitForm(ctx, a, svc, forms.NewEditForm(svc.Kind(), id, prefill(rec)))
}

// submitForm prompts every field and image, then saves. A rejected form
// re-prompts only the failing fields; a failed upload or request may be
// retried with the same form, keeping images that already uploaded.
func submitForm[T services.Record, I any](ctx context.Context, a *App, svc *services.EntityService[T, I], form *forms.Form[I]) error {
	p := a.prompter(ctx)
	if err := fillValues(p, form, nil); err != nil {
		return a.cancelled(err)
	}
	if form.Images() != nil {
		if err := fillImages(p, form, nil); err != nil {
			return a.cancelled(err)
		}
	}

	verb := "登録"
	if form.IsEdit() {
		verb = "更新"
	}
	for {
		_, err := svc.Submit(ctx, form)
		if err == nil {
			toastSuccess(a.out, fmt.Sprintf("%s #%d を%sしました", form.Kind.Label(), form.ID, verb))
			return nil
		}
		_ = a.fail(ctx, err)
		if ctx.Err() != nil || !a.isLoggedIn() {
			return err
		}

		var verr *forms.ValidationError
		if !errors.As(err, &verr) {
			ok, cerr := Confirm(a.reader, a.out, "再試行しますか？")
			if cerr != nil || !ok {
				return err
			}
			continue
		}

		ok, cerr := Confirm(a.reader, a.out, "修正しますか？")
		if cerr != nil || !ok {
			return err
		}
		fieldKeys, imageKeys := splitErrorFields(verr.Fields)
		if err := fillValues(p, form, fieldKeys); err != nil {
			return a.cancelled(err)
		}
		if len(imageKeys) > 0 {
			if err := fillImages(p, form, imageKeys); err != nil {
				return a.cancelled(err)
			}
		}
	}
}

func (a *App) cancelled(err error) error {
	if errors.Is(err, errAborted) {
		toastWarn(a.out, "入力を中止しました")
	} else {
		toastError(a.out, err)
	}
	return err
}

// prompter lists master records for reference fields from the cache.
func (a *App) prompter(ctx context.Context) *prompter {
	return &prompter{
		reader: a.reader,
		out:    a.out,
		options: func(kind models.Kind) string {
			e, err := a.registry.Entity(kind)
			if err != nil {
				return ""
			}
			l, err := e.Listing(ctx, filters.Criteria{})
			if err != nil {
				a.logger.Warn(ctx, "failed to load options", "kind", kind, "error", err)
				return ""
			}
			return optionsHint(l)
		},
	}
}

func optionsHint(l services.Listing) string {
	var parts []string
	switch recs := l.Records.(type) {
	case []models.Building:
		for _, b := range recs {
			parts = append(parts, fmt.Sprintf("%d:%s", b.BuildingID, b.Name))
		}
	case []models.ParkingLot:
		for _, p := range recs {
			parts = append(parts, fmt.Sprintf("%d:%s", p.ParkingLotID, p.Name))
		}
	}
	if len(parts) == 0 {
		return gray(l.Kind.Label() + "が登録されていません")
	}
	return gray(strings.Join(parts, "  "))
}

// splitErrorFields separates plain field keys from image fields.
func splitErrorFields(errs forms.FieldErrors) (fieldKeys map[string]bool, imageKeys map[string]bool) {
	fieldKeys, imageKeys = map[string]bool{}, map[string]bool{}
	for _, k := range errs.Fields() {
		if name, ok := strings.CutPrefix(k, "images."); ok {
			imageKeys[name] = true
			continue
		}
		fieldKeys[k] = true
	}
	return fieldKeys, imageKeys
}

func fillValues[I any](p *prompter, form *forms.Form[I], only map[string]bool) error {
	if only != nil && len(only) == 0 {
		return nil
	}
	values, err := toValues(form.Values)
	if err != nil {
		return err
	}
	if only != nil && only["parking_fee"] {
		only["parking_available"] = true
	}
	if err := p.fill(form.Kind, values, only); err != nil {
		return err
	}
	return fromValues(values, &form.Values)
}

// fillImages asks for the main image, the kind's required diagram and
// gallery changes. A path attaches a file, "-" removes the image and an
// empty answer keeps it. only restricts the prompts to failing image
// fields when non-nil.
func fillImages[I any](p *prompter, form *forms.Form[I], only map[string]bool) error {
	roles := []models.ImageRole{models.RoleMain}
	if r, ok := form.Kind.RequiredImage(); ok {
		roles = append(roles, r)
	}
	for _, role := range roles {
		if only != nil && !only[string(role)] {
			continue
		}
		if err := askImage(p, form, models.ImageField{Role: role}); err != nil {
			return err
		}
	}
	if only != nil && !hasGalleryKey(only) {
		return nil
	}
	return askGallery(p, form)
}

func hasGalleryKey(keys map[string]bool) bool {
	for k := range keys {
		if strings.HasPrefix(k, string(models.RoleGallery)) {
			return true
		}
	}
	return false
}

func askImage[I any](p *prompter, form *forms.Form[I], field models.ImageField) error {
	for {
		current := form.Images().Get(field)
		s, changed, err := promptValue(p.reader, p.out, imageLabel(field)+" (ファイルパス、- で削除)", current)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		if s == clearInput {
			form.RemoveImage(field)
			return nil
		}
		if err := attach(form, field, s); err != nil {
			toastError(p.out, err)
			continue
		}
		return nil
	}
}

func askGallery[I any](p *prompter, form *forms.Form[I]) error {
	for {
		imgs := form.Images()
		for i, u := range imgs.Gallery {
			fmt.Fprintf(p.out, "  %d: %s\n", i+1, u)
		}
		prompt := fmt.Sprintf("ギャラリー %d/%d (ファイルパスで追加、-N で N 番目を削除、空で終了)", len(imgs.Gallery), models.MaxGalleryImages)
		s, changed, err := promptValue(p.reader, p.out, prompt, "")
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		if rest, ok := strings.CutPrefix(s, clearInput); ok {
			n, err := strconv.Atoi(rest)
			if err != nil || n < 1 || n > len(imgs.Gallery) {
				toastError(p.out, fmt.Errorf("1 から %d の番号を指定してください", len(imgs.Gallery)))
				continue
			}
			form.RemoveImage(models.ImageField{Role: models.RoleGallery, Index: n - 1})
			continue
		}
		if err := attach(form, models.ImageField{Role: models.RoleGallery, Index: len(imgs.Gallery)}, s); err != nil {
			toastError(p.out, err)
		}
	}
}

func attach[I any](form *forms.Form[I], field models.ImageField, path string) error {
	f, err := upload.OpenFile(path)
	if err != nil {
		return err
	}
	return form.AttachImage(field, path, f)
}
