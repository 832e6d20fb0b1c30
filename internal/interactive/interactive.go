package interactive

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"sortify/internal/config"
	"sortify/internal/logging"
	"sortify/internal/sorter"
)

const banner = `
    _________              __  .__  _____
 /   _____/ ____________/  |_|__|/ ____\__.__.
 \_____  \ /  _ \_  __ \   __\  \   __<   |  |
 /        (  <_> )  | \/|  | |  ||  |  \___  |
/_______  /\____/|__|   |__| |__||__|  / ____|
        \/                             \/
`

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiCyan    = "\x1b[36m"
)

const sectionWidth = 60

// previewLimit caps how many extension groups the preview table shows.
const previewLimit = 20

// Flow drives the guided prompt sequence and produces the same configuration
// shape as the flag-based surface.
type Flow struct {
	lines    <-chan lineResult
	out      io.Writer
	colorize bool
	logger   *slog.Logger
}

type lineResult struct {
	text string
	err  error
}

// New constructs a flow reading answers from in and writing prompts to out.
// Answers arrive on a dedicated goroutine so a blocked prompt can still
// observe context cancellation.
func New(in io.Reader, out io.Writer, colorize bool, logger *slog.Logger) *Flow {
	lines := make(chan lineResult)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- lineResult{text: scanner.Text()}
		}
		if err := scanner.Err(); err != nil {
			lines <- lineResult{err: err}
		}
		close(lines)
	}()
	return &Flow{
		lines:    lines,
		out:      out,
		colorize: colorize,
		logger:   logging.NewComponentLogger(logger, "interactive"),
	}
}

// Run walks the user through source, destination, filters, a preview of what
// would move, and safety confirmations. Declining the final confirmation,
// closing stdin, or cancelling ctx mid-prompt returns ErrCancelled with zero
// mutations performed.
func (f *Flow) Run(ctx context.Context, defaultRoot string) (sorter.Config, error) {
	f.printBanner(defaultRoot)

	f.printSection("Source & Destination")
	root, err := f.promptPath(ctx, "Start directory", defaultRoot)
	if err != nil {
		return sorter.Config{}, err
	}
	destDir, err := f.promptText(ctx, "Destination folder ('.' keeps files beside their source root)", ".")
	if err != nil {
		return sorter.Config{}, err
	}

	f.printSection("Filters")
	includeDotfiles, err := f.promptYesNo(ctx, "Include hidden files (dotfiles)?", false)
	if err != nil {
		return sorter.Config{}, err
	}
	includeCode, err := f.promptYesNo(ctx, "Include code files (.py, .ipynb, etc.)?", false)
	if err != nil {
		return sorter.Config{}, err
	}

	cfg := sorter.Config{
		Root:            root,
		DestDir:         destDir,
		IncludeDotfiles: includeDotfiles,
		IncludeCode:     includeCode,
		Interactive:     true,
	}

	f.printSection("Preview")
	total := f.renderPreview(cfg)

	f.printSection("Safety Checks")
	dryRun, err := f.promptYesNo(ctx, "Do a dry run first (no changes)?", true)
	if err != nil {
		return sorter.Config{}, err
	}
	cfg.DryRun = dryRun

	proceed, err := f.promptYesNo(ctx, "Proceed with the operation?", total > 0)
	if err != nil {
		return sorter.Config{}, err
	}
	if !proceed {
		fmt.Fprintln(f.out, f.color("Cancelled by user.", ansiMagenta, true))
		return sorter.Config{}, sorter.Wrap(sorter.ErrCancelled, "interactive", "declined by user", nil)
	}

	return cfg, nil
}

// renderPreview scans with the chosen filters and prints the per-extension
// counts. Returns the total number of candidates.
func (f *Flow) renderPreview(cfg sorter.Config) int {
	rootPath, err := cfg.RootPath()
	if err != nil {
		fmt.Fprintln(f.out, f.color(fmt.Sprintf("Preview unavailable: %v", err), ansiMagenta, false))
		return 0
	}
	destRoot, err := cfg.DestinationRoot()
	if err != nil {
		fmt.Fprintln(f.out, f.color(fmt.Sprintf("Preview unavailable: %v", err), ansiMagenta, false))
		return 0
	}

	files, err := sorter.Scan(rootPath, destRoot, sorter.ScanOptions{
		IncludeDotfiles: cfg.IncludeDotfiles,
		IncludeCode:     cfg.IncludeCode,
	}, f.logger)
	if err != nil {
		fmt.Fprintln(f.out, f.color(fmt.Sprintf("Preview unavailable: %v", err), ansiMagenta, false))
		return 0
	}

	total := len(files)
	fmt.Fprintln(f.out, f.color(fmt.Sprintf("Found %d file(s) to process.", total), ansiYellow, true))
	if total == 0 {
		fmt.Fprintln(f.out, f.color("No files detected with the current filters.", ansiMagenta, false))
		return 0
	}

	counts := SummarizeExtensions(files)
	shown := counts
	if len(shown) > previewLimit {
		shown = shown[:previewLimit]
	}
	fmt.Fprintln(f.out, RenderSummaryTable(shown, total))
	if remaining := len(counts) - previewLimit; remaining > 0 {
		fmt.Fprintln(f.out, f.color(fmt.Sprintf("...and %d more extension group(s)", remaining), ansiMagenta, false))
	}
	return total
}

func (f *Flow) printBanner(defaultRoot string) {
	resolved, err := filepath.Abs(defaultRoot)
	if err != nil {
		resolved = defaultRoot
	}
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, f.color(banner, ansiCyan, true))
	fmt.Fprintln(f.out, f.color("Sortify :: Recursive extension-based sorter", ansiMagenta, true))
	fmt.Fprintln(f.out, f.color("Default root -> "+resolved, ansiYellow, false))
	fmt.Fprintln(f.out, f.color(strings.Repeat("-", sectionWidth), ansiBlue, false))
}

func (f *Flow) printSection(title string) {
	rule := strings.Repeat("=", sectionWidth)
	label := fmt.Sprintf("[ %s ]", title)
	pad := (sectionWidth - len(label)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, f.color(rule, ansiBlue, false))
	fmt.Fprintln(f.out, f.color(strings.Repeat(" ", pad)+label, ansiGreen, true))
	fmt.Fprintln(f.out, f.color(rule, ansiBlue, false))
}

func (f *Flow) promptYesNo(ctx context.Context, prompt string, defaultValue bool) (bool, error) {
	suffix := " [y/N]"
	if defaultValue {
		suffix = " [Y/n]"
	}
	for {
		fmt.Fprintf(f.out, "%s%s: ", prompt, suffix)
		line, err := f.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return defaultValue, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(f.out, "Please answer 'y' or 'n'.")
	}
}

func (f *Flow) promptPath(ctx context.Context, prompt, defaultValue string) (string, error) {
	fmt.Fprintf(f.out, "%s [%s]: ", prompt, defaultValue)
	line, err := f.readLine(ctx)
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}
	return config.ExpandPath(line)
}

func (f *Flow) promptText(ctx context.Context, prompt, defaultValue string) (string, error) {
	fmt.Fprintf(f.out, "%s [%s]: ", prompt, defaultValue)
	line, err := f.readLine(ctx)
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// readLine returns the next answer; a closed stdin or a cancelled context
// counts as cancellation, so an interrupt lands even while a prompt blocks.
func (f *Flow) readLine(ctx context.Context) (string, error) {
	select {
	case res, ok := <-f.lines:
		if !ok {
			return "", sorter.Wrap(sorter.ErrCancelled, "interactive", "input closed", nil)
		}
		if res.err != nil {
			return "", sorter.Wrap(sorter.ErrCancelled, "interactive", "read input", res.err)
		}
		return res.text, nil
	case <-ctx.Done():
		fmt.Fprintln(f.out)
		return "", sorter.Wrap(sorter.ErrCancelled, "interactive", "interrupted", ctx.Err())
	}
}

func (f *Flow) color(text, code string, bold bool) string {
	if !f.colorize {
		return text
	}
	prefix := code
	if bold {
		prefix = ansiBold + code
	}
	return prefix + text + ansiReset
}
