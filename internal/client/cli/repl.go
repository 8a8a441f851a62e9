package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Stats(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// runREPL reads a line from scanner, parses the first token as the command
// and dispatches to a. The loop exits on scanner EOF or on "exit"/"quit".
//
//	Not logged in:
//	  - help, signup, login, exit | quit
//
//	Logged in:
//	  - help, whoami, stats, logout, exit | quit
//	  - (l)ist [tab=<status>] [q=<text>] [sort=<key>] [dir=asc|desc]
//	  - add
//	  - edit <id>
//	  - delete <id>
//
// Errors returned by command handlers are logged and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("loggy %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, stats, add, edit <id>, delete <id>, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "logout", "whoami", "l", "list", "stats", "add", "edit", "delete":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			err = dispatchPrivate(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			log.Printf("error: %v", err)
		}
	}
}

func dispatchPrivate(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "l", "list":
		return a.List(ctx, args)
	case "stats":
		return a.Stats(ctx)
	case "add":
		return a.Add(ctx)
	}

	if len(args) != 1 {
		printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
		return nil
	}
	if cmd == "edit" {
		return a.Edit(ctx, args[0])
	}
	return a.Delete(ctx, args[0])
}
