package app

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/okarpov/studykeeper/internal/session"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs. The real App
// type satisfies it; tests provide a lightweight stub.
type execIface interface {
	state() session.State
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Start(ctx context.Context) error
	Subjects(ctx context.Context) error
	List(ctx context.Context) error
	Master(ctx context.Context) error
	Unmaster(ctx context.Context) error
	Star(ctx context.Context) error
	Unstar(ctx context.Context) error
	Sync(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Add(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a command per line and dispatches to methods on a. The loop
// exits on scanner EOF or on "exit"/"quit". Handler errors are ignored here;
// handlers report their own failures, which keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sk> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printHelp(a.state())

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "start":
			_ = a.Start(ctx)

		case "subjects":
			_ = a.Subjects(ctx)

		case "list":
			_ = a.List(ctx)

		case "master":
			_ = a.Master(ctx)

		case "unmaster":
			_ = a.Unmaster(ctx)

		case "star":
			_ = a.Star(ctx)

		case "unstar":
			_ = a.Unstar(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "dashboard":
			_ = a.Dashboard(ctx)

		case "add":
			_ = a.Add(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			return

		default:
			printlnFn("Unknown command. Type 'help' for the command list.")
		}
	}
}

func printHelp(state session.State) {
	switch state {
	case session.StateLoggedOut:
		printlnFn("Available commands: register, login, exit")
	case session.StateLinkPending:
		printlnFn("Available commands: start, logout, exit")
	case session.StateActive:
		printlnFn("Available commands: subjects, list, master, unmaster, star, unstar, sync, dashboard, add, logout, exit")
	default:
		printlnFn("Available commands: exit")
	}
}
