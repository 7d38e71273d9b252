// Package domain implements the exam packaging pipeline.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"exampack.dev/pkg/exampack/internal/adapter"
	"exampack.dev/pkg/exampack/internal/controller"
	m "exampack.dev/pkg/exampack/internal/model"
)

// themeScanParallelism bounds concurrent theme-chain resolution during
// discovery. The build pipeline itself is strictly sequential.
const themeScanParallelism = 4

// BuildArgs carries one build invocation's configuration.
type BuildArgs struct {
	// Source is the assessment description document.
	Source []byte
	// SourceDir anchors relative resource paths.
	SourceDir m.Path
	// DataRoot is the runtime data tree (runtime/, themes/, locales/, ...).
	DataRoot m.Path
	// Theme is a theme name or path.
	Theme string
	// Output is the bundle directory, or the archive path in Zip mode.
	Output m.Path

	Zip         bool
	Scorm       bool
	Clean       bool
	FollowLinks bool

	// Locale is the preferred locale identifier.
	Locale string
	// MinifyCommand is the external script minifier; empty disables it.
	MinifyCommand string
}

// InspectArgs configures a dry-run table resolution.
type InspectArgs struct {
	BuildArgs

	Interactive bool
}

// Workflow is the use-case layer the CLI commands drive.
type Workflow interface {
	// Build runs the full packaging pipeline and writes the bundle.
	Build(ctx context.Context, args BuildArgs) error

	// Inspect resolves the virtual file table without writing output.
	Inspect(ctx context.Context, args InspectArgs) error

	// Themes lists the themes under dataRoot with their inheritance chains.
	Themes(ctx context.Context, dataRoot m.Path) error
}

type workflow struct {
	fs       adapter.BundleFS
	compiler adapter.ExamCompiler
	minifier adapter.Minifier
	ui       controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(fs adapter.BundleFS, compiler adapter.ExamCompiler, minifier adapter.Minifier, ui controller.UI) Workflow {
	return &workflow{
		fs:       fs,
		compiler: compiler,
		minifier: minifier,
		ui:       ui,
	}
}

// Build runs the pipeline stages strictly in sequence; the first failing
// stage aborts the build.
func (w *workflow) Build(ctx context.Context, args BuildArgs) error {
	table, _, err := w.assemble(args)
	if err != nil {
		return err
	}

	if args.MinifyCommand != "" {
		if err := w.minify(ctx, table, args.MinifyCommand); err != nil {
			return err
		}
	}

	var writer PackageWriter
	if args.Zip {
		writer = NewZipWriter(w.fs, args.Output)
	} else {
		writer = NewDirWriter(w.fs, args.Output, args.Clean)
	}

	if err := writer.Write(ctx, table); err != nil {
		return err
	}

	slog.Info("bundle written", "output", args.Output, "files", table.Len(), "zip", args.Zip)
	w.ui.Success(fmt.Sprintf("Exam created in %s", args.Output))

	return nil
}

// Inspect resolves the table through aggregation and displays it.
func (w *workflow) Inspect(_ context.Context, args InspectArgs) error {
	table, _, err := w.assemble(args.BuildArgs)
	if err != nil {
		return err
	}

	rows := make([]controller.FileRow, 0, table.Len())

	for _, dst := range table.Paths() {
		src, _ := table.Get(dst)

		origin := "(generated)"
		if fileSrc, ok := src.(m.FileSource); ok {
			origin = string(fileSrc.AbsPath)
		}

		rows = append(rows, controller.FileRow{Dest: relativeHref(dst), Origin: origin})
	}

	if args.Interactive {
		return controller.BrowseFileTable(rows)
	}

	return w.ui.DisplayFileTable(rows)
}

// Themes scans the themes directory; chains resolve concurrently since
// discovery is read-only and independent per theme.
func (w *workflow) Themes(ctx context.Context, dataRoot m.Path) error {
	entries, err := w.fs.ReadDir(m.Path(filepath.Join(string(dataRoot), themesDir)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrThemeNotFound, err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	resolver := NewThemeResolver(w.fs, dataRoot)
	rows := make([]controller.ThemeRow, len(names))

	group, _ := errgroup.WithContext(ctx)
	group.SetLimit(themeScanParallelism)

	for i, name := range names {
		i, name := i, name
		group.Go(func() error {
			chain, err := resolver.Chain(name)
			if err != nil {
				return err
			}

			row := controller.ThemeRow{Name: name}
			for _, dir := range chain {
				row.Chain = append(row.Chain, filepath.Base(string(dir)))
			}

			rows[i] = row

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	return w.ui.DisplayThemes(rows)
}

// assemble builds the virtual file table: overlay collection, generated
// content injection, optional manifest patching, then asset aggregation.
func (w *workflow) assemble(args BuildArgs) (*m.FileTable, *m.Exam, error) {
	exam, err := w.compiler.Compile(args.Source)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("compiled exam", "name", exam.Name, "extensions", len(exam.Extensions), "resources", len(exam.Resources))

	chain, err := NewThemeResolver(w.fs, args.DataRoot).Chain(args.Theme)
	if err != nil {
		return nil, nil, err
	}

	slog.Debug("resolved theme chain", "theme", args.Theme, "chain", chain)

	collector := NewCollector(w.fs, args.FollowLinks)
	overlays, fileResources := collector.BuildOverlays(args.DataRoot, exam, chain, args.SourceDir)

	table := m.NewFileTable()
	if err := collector.Collect(table, overlays, fileResources); err != nil {
		return nil, nil, err
	}

	examXML, err := exam.XML()
	if err != nil {
		return nil, nil, &adapter.SourceDocumentError{Err: err}
	}

	locales, err := LoadLocales(w.fs, args.DataRoot)
	if err != nil {
		return nil, nil, err
	}

	locale := MatchLocale(args.Locale, locales)

	localeScript, err := LocaleScript(locale, locales)
	if err != nil {
		return nil, nil, err
	}

	table.Put(settingsScriptDest, m.Blob(SettingsScript(examXML)))
	table.Put(localeScriptDest, m.Blob(localeScript))

	if args.Scorm {
		// The manifest lists the table as it stands; the scormfiles overlay
		// is applied before aggregation so its assets merge like any other.
		patched, err := PatchManifest(w.fs, args.DataRoot, exam.Name, table.Paths())
		if err != nil {
			return nil, nil, err
		}

		scormOverlay := m.Overlay{Src: m.Path(filepath.Join(string(args.DataRoot), scormFilesDir)), Dst: "."}
		if err := collector.Collect(table, []m.Overlay{scormOverlay}, nil); err != nil {
			return nil, nil, err
		}

		table.Put(manifestDest, m.Blob(patched))
	}

	aggregator := NewAggregator(w.fs)

	if err := aggregator.Aggregate(table, m.Stylesheet); err != nil {
		return nil, nil, err
	}

	if err := aggregator.Aggregate(table, m.Script); err != nil {
		return nil, nil, err
	}

	return table, exam, nil
}

// minify replaces every remaining script entry's content with the external
// command's output. Any failure aborts the build before output is written.
func (w *workflow) minify(ctx context.Context, table *m.FileTable, command string) error {
	for _, dst := range table.Paths() {
		if !m.Script.Matches(dst) {
			continue
		}

		src, _ := table.Get(dst)

		var (
			out []byte
			err error
		)

		switch s := src.(type) {
		case m.FileSource:
			out, err = w.minifier.Minify(ctx, command, s.AbsPath)
		case m.BlobSource:
			out, err = w.minifier.MinifyContent(ctx, command, dst, s.Data)
		}

		if err != nil {
			return err
		}

		table.Put(dst, m.BlobSource{Data: out})
	}

	return nil
}
