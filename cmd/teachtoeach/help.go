package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: teachtoeach <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Render the site variants to static HTML")
	fmt.Fprintln(w, "  serve      Preview a variant over HTTP with working forms")
	fmt.Fprintln(w, "  doctor     Check browser, config, content and images")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'teachtoeach help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --asset-root <dir>    Directory images are read from")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: teachtoeach build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every site variant to <output>/<variant>/index.html.")
	fmt.Fprintln(w, "Images are inlined as data URIs; unreadable images fall back to a glyph.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: public)")
	fmt.Fprintln(w, "      --variant <name>      Only build the named variant (repeatable)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel builds (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also export index.pdf with headless Chrome")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4")
	fmt.Fprintln(w, "  -t, --timeout <d>         Export timeout (e.g. 30s, 2m)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TEACHTOEACH_CONFIG, TEACHTOEACH_ASSET_ROOT, TEACHTOEACH_OUTPUT_DIR,")
	fmt.Fprintln(w, "  TEACHTOEACH_WORKERS, TEACHTOEACH_THEME, TEACHTOEACH_SITE,")
	fmt.Fprintln(w, "  TEACHTOEACH_TIMEOUT, TEACHTOEACH_LOG_LEVEL")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: teachtoeach serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve one variant. Contact forms post back to the server, which")
	fmt.Fprintln(w, "re-renders the page with the acknowledgment under the form.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default: 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --variant <name>      Variant to preview (default: first)")
	fmt.Fprintln(w, "      --watch               Reload the page when content or images change")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: teachtoeach doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the system and the site before building.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report:")
	fmt.Fprintln(w, "      --json                Print the report as JSON")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: teachtoeach version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: teachtoeach help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
