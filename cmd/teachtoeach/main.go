package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A missing .env is normal; other load errors are reported below.
	envErr := godotenv.Load()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))

	env := DefaultEnv()
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		fmt.Fprintf(env.Stderr, "warning: reading .env: %v\n", envErr)
	}

	os.Exit(runMain(os.Args, env))
}

// runMain dispatches the command in args[1] and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "serve":
		err = runServe(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "teachtoeach %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	}

	if err != nil {
		if errors.Is(err, errHelpRequested) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether s names a command.
func isCommand(s string) bool {
	switch strings.TrimSpace(s) {
	case "build", "serve", "doctor", "version", "--version", "help", "-h", "--help":
		return true
	default:
		return false
	}
}
