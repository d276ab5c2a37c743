// Package runner wires file I/O around the patch engine: it loads the
// target document, applies a payload, and writes the result back out. The
// engine itself never touches the filesystem.
package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/kvit-s/tokpatch/internal/config"
	"github.com/kvit-s/tokpatch/internal/patch"
)

// Request describes one patch run.
type Request struct {
	FilePath   string
	Payload    []byte
	OutputPath string // explicit destination; empty means derive from config
	InPlace    bool   // overwrite FilePath, ignoring versioning
}

// Outcome is the result of a run: the engine result plus where the patched
// text was written.
type Outcome struct {
	Result     *patch.Result
	Original   string
	OutputPath string
}

// Runner executes patch runs against files on disk.
type Runner struct {
	cfg    *config.Config
	engine *patch.Engine
	log    *Logger
}

// New creates a Runner. log may be a disabled logger but not nil.
func New(cfg *config.Config, log *Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		engine: patch.NewEngine(patch.Options{DisableFloating: !cfg.FloatingEnabled()}),
		log:    log,
	}
}

// Engine exposes the configured engine for callers that already hold the
// document text, like the interactive UI.
func (r *Runner) Engine() *patch.Engine {
	return r.engine
}

// Run loads the document, applies the payload, and writes the patched text
// to the resolved output path. The input file is only modified when it is
// itself the resolved output.
func (r *Runner) Run(req Request) (*Outcome, error) {
	data, err := os.ReadFile(req.FilePath)
	if err != nil {
		r.log.RunFailed(req.FilePath, err)
		return nil, fmt.Errorf("read %s: %w", req.FilePath, err)
	}
	original := string(data)

	p, err := patch.ParsePayload(req.Payload)
	if err != nil {
		r.log.RunFailed(req.FilePath, err)
		return nil, err
	}

	r.log.RunStarted(req.FilePath, len(p.Hunks))

	res, err := r.engine.Apply(original, p)
	if err != nil {
		r.log.RunFailed(req.FilePath, err)
		return nil, err
	}
	for _, o := range res.Outcomes {
		r.log.HunkOutcome(o)
	}

	out := r.resolveOutputPath(req)
	if err := WriteFileAtomic(out, res.Text); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}

	r.log.RunFinished(res.AppliedCount(), len(res.Outcomes), out)
	return &Outcome{Result: res, Original: original, OutputPath: out}, nil
}

func (r *Runner) resolveOutputPath(req Request) string {
	switch {
	case req.OutputPath != "":
		return req.OutputPath
	case req.InPlace:
		return req.FilePath
	case r.cfg.Output.Versioned:
		suffix := r.cfg.Output.Suffix
		if suffix == "" {
			suffix = NextVersionSuffix(req.FilePath)
		}
		return VersionedPath(req.FilePath, suffix)
	default:
		return req.FilePath
	}
}

// ReadDocument loads the raw text of the document at path.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFileAtomic writes content to path via a temp file and rename, so a
// crash mid-write never leaves a truncated document. Permissions of an
// existing file are preserved.
func WriteFileAtomic(path, content string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".tokpatch-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up temp file in case of error

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0644)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("atomic rename failed: %w", err)
	}
	return nil
}

// VersionedPath appends suffix to the base name of path, before the
// extension: /d/app.py + "_v1.0" -> /d/app_v1.0.py.
func VersionedPath(path, suffix string) string {
	if suffix != "" && !strings.HasPrefix(suffix, "_") {
		suffix = "_" + suffix
	}
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+suffix+ext)
}

var versionSuffixRe = regexp.MustCompile(`_v(\d+)\.(\d+)$`)

// NextVersionSuffix scans the directory of path for siblings named
// stem_vN.M and returns the next free suffix: _v0.0 when none exist,
// otherwise the highest seen with the minor bumped (minor rolls over to the
// next major at 10).
func NextVersionSuffix(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	dir := filepath.Dir(path)

	major, minor := -1, -1
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "_v0.0"
	}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		m := versionSuffixRe.FindStringSubmatch(name)
		if m == nil || name[:len(name)-len(m[0])] != stem {
			continue
		}
		ma, _ := strconv.Atoi(m[1])
		mi, _ := strconv.Atoi(m[2])
		if ma > major || (ma == major && mi > minor) {
			major, minor = ma, mi
		}
	}

	if major < 0 {
		return "_v0.0"
	}
	minor++
	if minor >= 10 {
		major++
		minor = 0
	}
	return fmt.Sprintf("_v%d.%d", major, minor)
}
