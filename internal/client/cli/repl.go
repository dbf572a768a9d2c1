package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App type
// satisfies it; tests provide a lightweight stub. args excludes the
// command word.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Dashboard(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Status(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = `Available commands:
  dashboard                     物件数の集計
  list <kind> [filters]         一覧 (例: list rental status=available min=50000 sort=price-asc)
  show <kind> <id>              詳細
  new <kind>                    新規登録
  edit <kind> <id>              編集
  delete <kind> <id>            削除
  status <kind> <id> <status>   ステータス変更
  export <kind> [filters]       CSV出力
  upload <path> [role]          画像アップロード
  refresh [kind]                キャッシュ破棄
  whoami, logout, exit
kinds: rental, weekly, land, house, parking, building, parking-lot`
)

// runREPL reads commands from reader until EOF, "exit" or "quit", or ctx
// cancellation. Everything but login, help and exit requires a session.
// Handlers report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("admin> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			printlnFn("ログインしてください")
			continue
		}

		switch cmd {
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)
		case "dashboard", "d":
			_ = a.Dashboard(ctx)
		case "list", "l":
			_ = a.List(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "new":
			_ = a.New(ctx, args)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "status":
			_ = a.Status(ctx, args)
		case "export":
			_ = a.Export(ctx, args)
		case "upload":
			_ = a.Upload(ctx, args)
		case "refresh":
			_ = a.Refresh(ctx, args)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
