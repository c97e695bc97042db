package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// printlnFn and outWriter are test seams for user-facing output.
var (
	printlnFn           = fmt.Println
	outWriter io.Writer = os.Stdout
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Send(ctx context.Context, matchID string) error
	Messages(ctx context.Context, matchID string) error
	UploadPhoto(ctx context.Context, path string) error
	DownloadPhoto(ctx context.Context, key string) error
	Events(ctx context.Context) error
	Join(ctx context.Context, eventID string) error
	Export(ctx context.Context, path string) error
	Import(ctx context.Context, path string) error
	Cleanup(ctx context.Context) error
	Stats(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
}

// runREPL reads a line, parses the first token as the command and dispatches
// to methods on 'a'. Unknown commands are reported back. The loop exits on
// scanner EOF or when the user types "exit" or "quit". Errors returned by
// command handlers are ignored here; handlers report their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("match> %s", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, send <matchId>, messages <matchId>, upload-photo <file>, download-photo <key>, events, join <eventId>, export <file>, import <file>, stats, cleanup, logout, delete-account, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "send":
			if len(args) == 0 {
				printlnFn("Usage: send <matchId>")
				continue
			}
			_ = a.Send(ctx, args[0])

		case "messages":
			if len(args) == 0 {
				printlnFn("Usage: messages <matchId>")
				continue
			}
			_ = a.Messages(ctx, args[0])

		case "upload-photo":
			if len(args) == 0 {
				printlnFn("Usage: upload-photo <file>")
				continue
			}
			_ = a.UploadPhoto(ctx, args[0])

		case "download-photo":
			if len(args) == 0 {
				printlnFn("Usage: download-photo <key>")
				continue
			}
			_ = a.DownloadPhoto(ctx, args[0])

		case "events":
			_ = a.Events(ctx)

		case "join":
			if len(args) == 0 {
				printlnFn("Usage: join <eventId>")
				continue
			}
			_ = a.Join(ctx, args[0])

		case "export":
			if len(args) == 0 {
				printlnFn("Usage: export <file>")
				continue
			}
			_ = a.Export(ctx, args[0])

		case "import":
			if len(args) == 0 {
				printlnFn("Usage: import <file>")
				continue
			}
			_ = a.Import(ctx, args[0])

		case "stats":
			_ = a.Stats(ctx)

		case "cleanup":
			_ = a.Cleanup(ctx)

		case "delete-account":
			_ = a.DeleteAccount(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
