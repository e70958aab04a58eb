package main

import (
	"errors"
	"io"

	flag "github.com/spf13/pflag"
)

// errHelpRequested is returned by flag parsing after printing usage for -h.
var errHelpRequested = errors.New("help requested")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	assetRoot string
	logLevel  string
	quiet     bool
	verbose   bool
}

// buildFlags holds flags for the build command.
type buildFlags struct {
	common   commonFlags
	output   string
	variants []string
	workers  int
	pdf      bool
	pageSize string
	timeout  string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common  commonFlags
	addr    string
	variant string
	watch   bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.assetRoot, "asset-root", "", "directory images are read from")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse wraps FlagSet.Parse, mapping -h to errHelpRequested after printing
// usage and flag errors to ErrInvalidFlag.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return errHelpRequested
		}
		return errors.Join(ErrInvalidFlag, err)
	}
	if fs.NArg() > 0 {
		return errors.Join(ErrInvalidFlag, errors.New("unexpected argument: "+fs.Arg(0)))
	}
	return nil
}

func parseBuildFlags(args []string, w io.Writer) (*buildFlags, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", printBuildUsage, w)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringSliceVar(&f.variants, "variant", nil, "only build the named variants (repeatable)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel builds (0 = auto)")
	fs.BoolVar(&f.pdf, "pdf", false, "also export index.pdf for each variant")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "PDF page size: letter, a4")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g. 30s)")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", printServeUsage, w)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address")
	fs.StringVar(&f.variant, "variant", "", "variant to preview (default: first)")
	fs.BoolVar(&f.watch, "watch", false, "reload the page when content or images change")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	fs := newFlagSet("doctor", printDoctorUsage, w)
	addCommonFlags(fs, &f.common)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	if err := parse(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}
