package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	fsutil "github.com/kk-code-lab/fxplorer/internal/fs"
	"github.com/kk-code-lab/fxplorer/internal/search"
	"github.com/kk-code-lab/fxplorer/internal/textutil"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	noColor bool
	stats   bool
}

func newSearchCommand(global *globalOptions) *cobra.Command {
	opts := &searchOptions{}
	cmd := &cobra.Command{
		Use:   "search TERM [DIR]",
		Short: "Print paths below DIR whose name contains TERM",
		Long: `search walks DIR (default: the working directory) depth first and
prints every entry whose name contains TERM as soon as it is found.
Matching is literal and case sensitive. Hidden entries and everything
below hidden directories are skipped unless --hidden is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 2 {
				dir = args[1]
			}
			return runSearch(cmd, global, opts, args[0], dir)
		},
	}
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable match highlighting")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print match and scan counts to stderr")
	return cmd
}

func runSearch(cmd *cobra.Command, global *globalOptions, opts *searchOptions, term, dir string) error {
	cfg, err := loadSettings(cmd, global)
	if err != nil {
		return err
	}
	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	root, err := resolveSearchRoot(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	classifier := fsutil.NewClassifier(cfg.Rule(), func(path string, err error) {
		log.Debugf("hidden check %s: %v", path, err)
	})
	engine := search.NewEngine(classifier, search.WithResultBuffer(cfg.ResultBuffer), search.WithLogger(log))
	session := engine.Start(ctx, root, term, cfg.ShowHidden)
	defer session.Stop()

	out := cmd.OutOrStdout()
	p := newMatchPrinter(out, term, colorEnabled(out, opts.noColor), isTerminal(out))
	for path := range session.Results() {
		if err := p.print(path); err != nil {
			return err
		}
	}

	if opts.stats {
		st := session.Stats()
		fmt.Fprintf(cmd.ErrOrStderr(), "%d matches, %d entries scanned\n", st.Matched, st.Visited)
	}
	if ctx.Err() != nil && cmd.Context().Err() == nil {
		return fmt.Errorf("search interrupted: %w", context.Canceled)
	}
	return nil
}

// resolveSearchRoot makes dir absolute and checks it is a directory.
func resolveSearchRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	abs = fsutil.CleanPath(abs)
	kind, err := fsutil.KindOf(abs)
	if err != nil {
		return "", &fsutil.NavigationError{Path: abs, Err: err}
	}
	if kind != fsutil.KindDirectory {
		return "", &fsutil.NavigationError{Path: abs, Err: fsutil.ErrNotDirectory}
	}
	return abs, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func colorEnabled(w io.Writer, noColor bool) bool {
	return !noColor && isTerminal(w)
}

// matchPrinter writes one path per line, optionally highlighting the term
// inside the final segment. Names are sanitised whenever the output is a
// terminal, coloured or not; piped output is raw.
type matchPrinter struct {
	w        io.Writer
	term     string
	sanitize bool
	match    *color.Color
	dir      *color.Color
}

func newMatchPrinter(w io.Writer, term string, useColor, sanitize bool) *matchPrinter {
	p := &matchPrinter{
		w:        w,
		term:     term,
		sanitize: sanitize,
		match:    color.New(color.FgYellow, color.Bold),
		dir:      color.New(color.Faint),
	}
	if useColor {
		p.match.EnableColor()
		p.dir.EnableColor()
	} else {
		p.match.DisableColor()
		p.dir.DisableColor()
	}
	return p
}

func (p *matchPrinter) print(path string) error {
	name := fsutil.LastSegment(path)
	prefix := path[:len(path)-len(name)]

	if p.sanitize {
		prefix = textutil.SanitizeTerminalText(prefix)
		name = textutil.SanitizeTerminalText(name)
	}

	var b strings.Builder
	b.WriteString(p.dir.Sprint(prefix))
	if p.term == "" {
		b.WriteString(name)
	} else {
		parts := strings.Split(name, p.term)
		for i, part := range parts {
			if i > 0 {
				b.WriteString(p.match.Sprint(p.term))
			}
			b.WriteString(part)
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(p.w, b.String())
	return err
}
