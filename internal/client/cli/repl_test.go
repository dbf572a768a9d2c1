package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(name string, args []string) error {
	if len(args) > 0 {
		name += " " + strings.Join(args, " ")
	}
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error    { return f.record("whoami", nil) }
func (f *fakeExec) Dashboard(ctx context.Context) error { return f.record("dashboard", nil) }
func (f *fakeExec) List(ctx context.Context, args []string) error {
	return f.record("list", args)
}
func (f *fakeExec) Show(ctx context.Context, args []string) error { return f.record("show", args) }
func (f *fakeExec) New(ctx context.Context, args []string) error  { return f.record("new", args) }
func (f *fakeExec) Edit(ctx context.Context, args []string) error { return f.record("edit", args) }
func (f *fakeExec) Delete(ctx context.Context, args []string) error {
	return f.record("delete", args)
}
func (f *fakeExec) Status(ctx context.Context, args []string) error {
	return f.record("status", args)
}
func (f *fakeExec) Export(ctx context.Context, args []string) error {
	return f.record("export", args)
}
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	return f.record("upload", args)
}
func (f *fakeExec) Refresh(ctx context.Context, args []string) error {
	return f.record("refresh", args)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"list rental",
		"login",
		"help",
		"",
		"l rental status=available sort=price-asc",
		"show rental 3",
		"new building",
		"edit land 2",
		"rm parking 5",
		"status house 4 contracted",
		"export weekly pets",
		"upload ./a.jpg gallery",
		"refresh",
		"d",
		"whoami",
		"foobar",
		"logout",
		"dashboard",
		"exit",
		"list rental",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	require.Equal(t, []string{
		"login",
		"list rental status=available sort=price-asc",
		"show rental 3",
		"new building",
		"edit land 2",
		"delete parking 5",
		"status house 4 contracted",
		"export weekly pets",
		"upload ./a.jpg gallery",
		"refresh",
		"dashboard",
		"whoami",
		"logout",
	}, exec.calls)

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, helpLoggedOut)
	assert.Contains(t, joined, "export <kind> [filters]")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Contains(t, joined, "ログインしてください")
	assert.Contains(t, joined, "Bye!")
	assert.Contains(t, joined, "admin> status > ")
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	silencePrintln(t)
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("whoami")))
	require.Equal(t, []string{"whoami"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	silencePrintln(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{loggedIn: true}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("whoami\n")))
	require.Empty(t, exec.calls)
}
