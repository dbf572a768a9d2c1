package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/miy4x/shigezane-admin/internal/client/client"
	"github.com/miy4x/shigezane-admin/internal/client/forms"
	"github.com/miy4x/shigezane-admin/internal/client/services"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
)

type severity int

const (
	sevError severity = iota
	sevTransient
)

func toastSuccess(w io.Writer, msg string) {
	fmt.Fprintln(w, green("✔ "+msg))
}

func toastWarn(w io.Writer, msg string) {
	fmt.Fprintln(w, yellow("! "+msg))
}

func toastError(w io.Writer, err error) {
	msg, sev := describeError(err)
	if sev == sevTransient {
		fmt.Fprintln(w, yellow("! "+msg))
		return
	}
	fmt.Fprintln(w, red("✘ "+msg))
}

// describeError turns an error from the services into the text shown to
// the operator. Connection problems are transient and shown in yellow.
func describeError(err error) (string, severity) {
	var (
		verr *forms.ValidationError
		gerr *upload.GalleryError
		serr *upload.StorageError
	)
	switch {
	case errors.As(err, &verr):
		lines := []string{"入力内容を確認してください"}
		for _, f := range verr.Fields.Fields() {
			lines = append(lines, "  "+f+": "+verr.Fields[f])
		}
		return strings.Join(lines, "\n"), sevError
	case errors.As(err, &gerr):
		return fmt.Sprintf("ギャラリー画像: %d件成功、%d件失敗 (%v)", gerr.Succeeded, gerr.Failed, gerr.First), sevError
	case errors.Is(err, forms.ErrPendingUpload):
		return "アップロードが完了していない画像があります", sevError
	case errors.Is(err, upload.ErrUnsupportedType):
		return "対応していない画像形式です (JPEG, PNG, WebP のみ)", sevError
	case errors.Is(err, upload.ErrFileTooLarge):
		return "ファイルサイズは10MB以下にしてください", sevError
	case errors.As(err, &serr):
		return "画像のアップロードに失敗しました: " + serr.Err.Error(), sevError
	case errors.Is(err, services.ErrNotLoggedIn):
		return "ログインしてください", sevError
	case errors.Is(err, services.ErrSessionExpired), errors.Is(err, client.ErrUnauthorized):
		return "セッションの有効期限が切れました。再度ログインしてください", sevError
	case errors.Is(err, client.ErrTimeout):
		return "サーバーの応答がありません。しばらくしてから再試行してください", sevTransient
	case errors.Is(err, client.ErrUnavailable):
		return "サーバーに接続できません。ネットワークを確認してください", sevTransient
	case errors.Is(err, client.ErrNotFound):
		return "データが見つかりません", sevError
	}
	if msg, ok := client.ServerMessage(err); ok {
		return msg, sevError
	}
	return err.Error(), sevError
}
