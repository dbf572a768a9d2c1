package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/miy4x/shigezane-admin/internal/client/client"
	"github.com/miy4x/shigezane-admin/internal/client/forms"
	"github.com/miy4x/shigezane-admin/internal/client/services"
	"github.com/miy4x/shigezane-admin/internal/client/upload"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		sev  severity
	}{
		{
			name: "validation lists fields",
			err:  &forms.ValidationError{Fields: forms.FieldErrors{"floor": "階数は50以下で入力してください"}},
			want: "入力内容を確認してください\n  floor: 階数は50以下で入力してください",
		},
		{
			name: "gallery counts",
			err:  &upload.GalleryError{Succeeded: 2, Failed: 1, First: errors.New("403")},
			want: "ギャラリー画像: 2件成功、1件失敗 (403)",
		},
		{
			name: "storage stage",
			err:  fmt.Errorf("main: %w", &upload.StorageError{Stage: upload.Uploading, Err: errors.New("denied")}),
			want: "画像のアップロードに失敗しました: denied",
		},
		{
			name: "pending upload",
			err:  fmt.Errorf("%w: main", forms.ErrPendingUpload),
			want: "アップロードが完了していない画像があります",
		},
		{
			name: "timeout is transient",
			err:  &client.RequestError{Kind: client.NoResponse, Timeout: true, Err: context.DeadlineExceeded},
			want: "サーバーの応答がありません。しばらくしてから再試行してください",
			sev:  sevTransient,
		},
		{
			name: "offline is transient",
			err:  &client.RequestError{Kind: client.NoResponse, Err: errors.New("connection refused")},
			want: "サーバーに接続できません。ネットワークを確認してください",
			sev:  sevTransient,
		},
		{
			name: "unauthorized",
			err:  &client.RequestError{Kind: client.ErrorResponse, StatusCode: http.StatusUnauthorized, Message: "expired"},
			want: "セッションの有効期限が切れました。再度ログインしてください",
		},
		{
			name: "server message",
			err:  &client.RequestError{Kind: client.ErrorResponse, StatusCode: http.StatusConflict, Message: "部屋番号が重複しています"},
			want: "部屋番号が重複しています",
		},
		{
			name: "not logged in",
			err:  services.ErrNotLoggedIn,
			want: "ログインしてください",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, sev := describeError(tt.err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.sev, sev)
		})
	}
}

func TestToastError_Prefix(t *testing.T) {
	var out bytes.Buffer
	toastError(&out, errors.New("boom"))
	toastError(&out, &client.RequestError{Kind: client.NoResponse, Err: errors.New("refused")})
	assert.Equal(t, "✘ boom\n! サーバーに接続できません。ネットワークを確認してください\n", out.String())
}
