package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/miy4x/shigezane-admin/internal/client/client"
	"github.com/miy4x/shigezane-admin/internal/client/filters"
	"github.com/miy4x/shigezane-admin/internal/client/models"
	"github.com/miy4x/shigezane-admin/internal/client/services"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
)

// fail shows err and ends the session when the backend rejected the token.
func (a *App) fail(ctx context.Context, err error) error {
	toastError(a.out, err)
	if errors.Is(err, client.ErrUnauthorized) {
		if lerr := a.auth.Logout(ctx); lerr != nil {
			a.logger.Warn(ctx, "logout after 401 failed", "error", lerr)
		}
	}
	return err
}

func usage(text string) error {
	printlnFn("usage:", text)
	return errUsage
}

var errUsage = errors.New("usage")

func parseKindArg(args []string, i int) (models.Kind, error) {
	if len(args) <= i {
		return "", errUsage
	}
	return models.ParseKind(args[i])
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// kindAndID reads "<kind> <id>" from args.
func (a *App) kindAndID(ctx context.Context, args []string, text string) (services.Entity, int64, error) {
	if len(args) < 2 {
		return nil, 0, usage(text)
	}
	kind, err := models.ParseKind(args[0])
	if err != nil {
		return nil, 0, a.fail(ctx, err)
	}
	id, err := parseID(args[1])
	if err != nil {
		return nil, 0, a.fail(ctx, err)
	}
	e, err := a.registry.Entity(kind)
	if err != nil {
		return nil, 0, a.fail(ctx, err)
	}
	return e, id, nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "メールアドレス", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return a.fail(ctx, err)
	}
	defer clear(password)

	s, err := a.auth.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			toastError(a.out, errors.New("メールアドレスまたはパスワードが正しくありません"))
			return err
		}
		return a.fail(ctx, err)
	}
	toastSuccess(a.out, fmt.Sprintf("ログインしました: %s", s.User.Name))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return a.fail(ctx, err)
	}
	toastSuccess(a.out, "ログアウトしました")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.auth.Current()
	if err != nil {
		return a.fail(ctx, err)
	}
	expiry := "なし"
	if !s.ExpiresAt.IsZero() {
		expiry = s.ExpiresAt.Local().Format("2006-01-02 15:04")
	}
	fmt.Fprintf(a.out, "%s <%s>\n有効期限: %s\n", s.User.Name, s.User.Email, expiry)
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	summary, err := a.dashboard.Summary(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	renderDashboard(a.out, summary)
	return nil
}

// criteria parses "<kind> [name=value...]".
func (a *App) criteria(ctx context.Context, args []string, text string) (models.Kind, filters.Criteria, error) {
	kind, err := parseKindArg(args, 0)
	if errors.Is(err, errUsage) {
		return "", filters.Criteria{}, usage(text)
	}
	if err != nil {
		return "", filters.Criteria{}, a.fail(ctx, err)
	}
	c, err := filters.Parse(kind, args[1:])
	if err != nil {
		return "", filters.Criteria{}, a.fail(ctx, err)
	}
	return kind, c, nil
}

func (a *App) List(ctx context.Context, args []string) error {
	kind, c, err := a.criteria(ctx, args, "list <kind> [name=value ...]")
	if err != nil {
		return err
	}
	e, err := a.registry.Entity(kind)
	if err != nil {
		return a.fail(ctx, err)
	}
	l, err := e.Listing(ctx, c)
	if err != nil {
		return a.fail(ctx, err)
	}
	if l.Total == 0 {
		printlnFn(kind.Label() + "はまだ登録されていません")
		return nil
	}
	if err := renderListing(a.out, l); err != nil {
		return a.fail(ctx, err)
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	e, id, err := a.kindAndID(ctx, args, "show <kind> <id>")
	if err != nil {
		return err
	}
	rec, err := e.Record(ctx, id)
	if err != nil {
		return a.fail(ctx, err)
	}
	l := services.Listing{Kind: e.Kind(), Records: []any{rec}, Total: 1, Shown: 1}
	if err := renderRecord(a.out, l); err != nil {
		return a.fail(ctx, err)
	}
	if imgs := recordImages(rec); imgs != nil {
		for _, f := range imgs.Fields() {
			fmt.Fprintf(a.out, "%s: %s\n", imageLabel(f), imgs.Get(f))
		}
	}
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	e, id, err := a.kindAndID(ctx, args, "delete <kind> <id>")
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, a.out, fmt.Sprintf("%s #%d を削除しますか？", e.Kind().Label(), id))
	if err != nil || !ok {
		return err
	}
	if err := e.Delete(ctx, id); err != nil {
		return a.fail(ctx, err)
	}
	toastSuccess(a.out, fmt.Sprintf("%s #%d を削除しました", e.Kind().Label(), id))
	return nil
}

func (a *App) Status(ctx context.Context, args []string) error {
	const text = "status <kind> <id> <status>"
	if len(args) < 3 {
		return usage(text)
	}
	e, id, err := a.kindAndID(ctx, args[:2], text)
	if err != nil {
		return err
	}
	s, err := filters.ParseStatus(e.Kind(), args[2])
	if err != nil {
		return a.fail(ctx, err)
	}
	if err := e.SetStatus(ctx, id, s); err != nil {
		return a.fail(ctx, err)
	}
	toastSuccess(a.out, fmt.Sprintf("%s #%d を「%s」に変更しました", e.Kind().Label(), id, s))
	return nil
}

func (a *App) Export(ctx context.Context, args []string) error {
	kind, c, err := a.criteria(ctx, args, "export <kind> [name=value ...]")
	if err != nil {
		return err
	}
	path, n, err := a.exporter.Export(ctx, kind, c, a.config.ExportDir)
	if errors.Is(err, services.ErrNothingToExport) {
		toastWarn(a.out, "エクスポートするデータがありません")
		return err
	}
	if err != nil {
		return a.fail(ctx, err)
	}
	toastSuccess(a.out, fmt.Sprintf("%d件をエクスポートしました: %s", n, path))
	return nil
}

// Upload sends one local file to storage and prints its durable URL.
func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return usage("upload <path> [main|floorplan|survey|layout|gallery]")
	}
	role := models.RoleMain
	if len(args) > 1 {
		role = models.ImageRole(strings.ToLower(args[1]))
		if _, ok := imageLabels[role]; !ok {
			return a.fail(ctx, fmt.Errorf("unknown image role %q", args[1]))
		}
	}
	f, err := upload.OpenFile(args[0])
	if err != nil {
		return a.fail(ctx, err)
	}
	url, err := a.uploader.UploadForRole(ctx, f, role)
	if err != nil {
		return a.fail(ctx, err)
	}
	toastSuccess(a.out, "アップロードしました: "+url)
	return nil
}

// Refresh drops cached data of one kind, or of every kind.
func (a *App) Refresh(ctx context.Context, args []string) error {
	kinds := models.AllKinds()
	if len(args) > 0 {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return a.fail(ctx, err)
		}
		kinds = []models.Kind{kind}
	}
	for _, k := range kinds {
		a.cache.InvalidateKind(k)
	}
	toastSuccess(a.out, "キャッシュを破棄しました")
	return nil
}
