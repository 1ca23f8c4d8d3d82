package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Refresh(ctx context.Context) error
	Show(ctx context.Context, id int64) error
	CloseDetails(ctx context.Context) error
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64, reason string) error
	Download(ctx context.Context, id int64, doc models.Document) error
	Notes(ctx context.Context) error
	Dismiss(ctx context.Context, id int64) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit"/"quit", or ctx is cancelled.
//
// Errors returned by command handlers are ignored here; handlers report
// failures themselves, mostly through notifications.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("kyc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		dispatch(ctx, a, cmd, args)
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn("Available commands: (l)ist, refresh, show <id>, close, approve <id>, reject <id> [reason...], download <id> front|selfie, notes, dismiss <id>, logout, exit")
		} else {
			printlnFn("Available commands: login, notes, dismiss <id>, exit")
		}

	case "login":
		_ = a.Login(ctx)

	case "l", "list", "refresh":
		_ = a.Refresh(ctx)

	case "show":
		if id, ok := parseID(args, "show <id>"); ok {
			_ = a.Show(ctx, id)
		}

	case "close":
		_ = a.CloseDetails(ctx)

	case "approve":
		if id, ok := parseID(args, "approve <id>"); ok {
			_ = a.Approve(ctx, id)
		}

	case "reject":
		if id, ok := parseID(args, "reject <id> [reason...]"); ok {
			_ = a.Reject(ctx, id, strings.Join(args[1:], " "))
		}

	case "download":
		id, ok := parseID(args, "download <id> front|selfie")
		if !ok {
			return
		}
		if len(args) < 2 {
			printlnFn("Usage: download <id> front|selfie")
			return
		}
		doc := models.Document(args[1])
		if doc != models.DocumentIDFront && doc != models.DocumentSelfie {
			printlnFn("Unknown document:", args[1])
			return
		}
		_ = a.Download(ctx, id, doc)

	case "notes":
		_ = a.Notes(ctx)

	case "dismiss":
		if id, ok := parseID(args, "dismiss <id>"); ok {
			_ = a.Dismiss(ctx, id)
		}

	case "logout":
		_ = a.Logout(ctx)

	default:
		printlnFn("Unknown command:", cmd)
	}
}

func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn("Usage: " + usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn("Invalid id:", args[0])
		return 0, false
	}
	return id, true
}
