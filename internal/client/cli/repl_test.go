package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Refresh(ctx context.Context) error        { return f.record("refresh") }
func (f *fakeExec) Show(ctx context.Context, id int64) error { return f.record("show %d", id) }
func (f *fakeExec) CloseDetails(ctx context.Context) error   { return f.record("close") }
func (f *fakeExec) Approve(ctx context.Context, id int64) error {
	return f.record("approve %d", id)
}
func (f *fakeExec) Reject(ctx context.Context, id int64, reason string) error {
	return f.record("reject %d %q", id, reason)
}
func (f *fakeExec) Download(ctx context.Context, id int64, doc models.Document) error {
	return f.record("download %d %s", id, doc)
}
func (f *fakeExec) Notes(ctx context.Context) error             { return f.record("notes") }
func (f *fakeExec) Dismiss(ctx context.Context, id int64) error { return f.record("dismiss %d", id) }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"list",
		"show 12",
		"close",
		"approve 12",
		"reject 13 blurry   selfie",
		"reject 14",
		"download 15 front",
		"notes",
		"dismiss 1700000000000",
		"logout",
		"exit",
		"refresh",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	require.Equal(t, []string{
		"login",
		"refresh",
		"show 12",
		"close",
		"approve 12",
		`reject 13 "blurry selfie"`,
		`reject 14 ""`,
		"download 15 front",
		"notes",
		"dismiss 1700000000000",
		"logout",
	}, exec.calls)
}

func TestRunREPL_UsageAndBadArguments(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.NewReader("show\napprove abc\ndownload 1\ndownload 1 passport\nfoobar\nquit\n")
	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	require.Empty(t, exec.calls)
	out := strings.Join(*lines, "")
	require.Contains(t, out, "Usage: show <id>")
	require.Contains(t, out, "Invalid id: abc")
	require.Contains(t, out, "Usage: download <id> front|selfie")
	require.Contains(t, out, "Unknown document: passport")
	require.Contains(t, out, "Unknown command: foobar")
	require.Contains(t, out, "Bye!")
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	capturePrintln(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("login\n")))
	require.Empty(t, exec.calls)
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	lines := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))
	require.Contains(t, strings.Join(*lines, ""), "Available commands: login")

	*lines = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))
	require.Contains(t, strings.Join(*lines, ""), "approve <id>")
}
