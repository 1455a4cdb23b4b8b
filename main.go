package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bioread/bio-read/internal/config"
	"github.com/bioread/bio-read/internal/fixation"
	"github.com/bioread/bio-read/internal/source"
	"github.com/bioread/bio-read/internal/style"
)

const (
	version  = "0.3.0"
	toolName = "bio-read"
)

// options holds the parsed command line.
type options struct {
	fixationPoint int
	emphasize     string
	deEmphasize   string
	profile       string
	delimiters    string
	segmenter     string
	commonWords   string
	explain       bool
	listProfiles  bool
	verbose       bool
	version       bool
	input         string
	set           map[string]bool
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetFlags(0)
	log.SetPrefix(toolName + ": ")

	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet(toolName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Bionic reading in terminal.\n\nUsage: %s [flags] [file]\n\nReads from stdin when no file (or -) is given.\n\nFlags:\n", toolName)
		fs.PrintDefaults()
	}

	fs.IntVar(&o.fixationPoint, "fixation-point", fixation.DefaultPoint, "the fixation point, in range [1, 5]")
	fs.IntVar(&o.fixationPoint, "f", fixation.DefaultPoint, "shorthand for -fixation-point")
	fs.StringVar(&o.emphasize, "emphasize", "", `emphasis template; the text takes the place of "{}" (default ANSI bold)`)
	fs.StringVar(&o.emphasize, "e", "", "shorthand for -emphasize")
	fs.StringVar(&o.deEmphasize, "de-emphasize", "", `de-emphasis template; the text takes the place of "{}" (default ANSI faint)`)
	fs.StringVar(&o.deEmphasize, "d", "", "shorthand for -de-emphasize")
	fs.StringVar(&o.profile, "profile", "", "built-in profile name or path to a JSON profile (env "+config.EnvProfile+")")
	fs.StringVar(&o.delimiters, "delimiters", "", "extra characters treated as word boundaries")
	fs.StringVar(&o.segmenter, "segmenter", config.SegmenterClassify, "word segmenter: classify or unicode (UAX #29; a single segment over 64 KiB is an input error)")
	fs.StringVar(&o.commonWords, "common-words", "none", "common words emphasized by their first letter only: none, builtin or english")
	fs.BoolVar(&o.explain, "explain", false, "print the head length per word length and fixation point, then exit")
	fs.BoolVar(&o.listProfiles, "list-profiles", false, "list built-in profiles, then exit")
	fs.BoolVar(&o.verbose, "v", false, "log a run summary to stderr")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}
	o.input = fs.Arg(0)

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// apply overlays the explicitly set flags, the highest-precedence layer.
func (o *options) apply(cfg *config.Config) {
	if o.set["fixation-point"] || o.set["f"] {
		cfg.FixationPoint = o.fixationPoint
	}
	if o.set["emphasize"] || o.set["e"] {
		cfg.Emphasize = o.emphasize
	}
	if o.set["de-emphasize"] || o.set["d"] {
		cfg.DeEmphasize = o.deEmphasize
	}
	if o.set["delimiters"] {
		cfg.Delimiters = o.delimiters
	}
	if o.set["segmenter"] {
		cfg.Segmenter = o.segmenter
	}
	if o.set["common-words"] {
		cfg.CommonWords = o.commonWords
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if o.version {
		fmt.Fprintf(stdout, "%s version %s\n", toolName, version)
		return nil
	}
	if o.explain {
		return explain(stdout)
	}

	loader, err := config.NewLoader(config.NewEmbeddedDataProvider())
	if err != nil {
		return err
	}
	if o.listProfiles {
		names, err := loader.BuiltinProfiles()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, strings.Join(names, "\n"))
		return nil
	}

	tpl := style.Detect(stdout)
	cfg := config.Default(tpl.Emphasis, tpl.DeEmphasis)
	profile := o.profile
	if profile == "" {
		profile = getenv(config.EnvProfile)
	}
	if profile != "" {
		p, err := loader.Load(profile)
		if err != nil {
			return err
		}
		cfg.Apply(p)
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return err
	}
	o.apply(&cfg)

	// Configuration problems surface before any input is opened.
	if err := cfg.Validate(); err != nil {
		return err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return err
	}

	in, err := source.Open(o.input, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	stats, err := engine.Run(cfg.Scanner(in), stdout)
	if o.verbose {
		logger := log.New(stderr, toolName+": ", 0)
		logger.Printf("%s (%s): %d words, %d separators, %d bytes in, %d bytes out, fixation point %d",
			in.Name, in.Compression, stats.Words, stats.Separators, stats.BytesIn, stats.BytesOut, cfg.FixationPoint)
	}
	return err
}

// explain prints the head length table for word lengths 1..20.
func explain(w io.Writer) error {
	points := fixation.AllPoints()
	rows, err := fixation.Rows(points, 20)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "length\t")
	for _, p := range points {
		fmt.Fprintf(tw, "fp%d\t", p)
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		fmt.Fprintf(tw, "%d\t", row.Length)
		for _, h := range row.Heads {
			fmt.Fprint(tw, strconv.Itoa(h)+"\t")
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
