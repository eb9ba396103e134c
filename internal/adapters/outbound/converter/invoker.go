package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/camelgen/camelgen/internal/domain"
)

// Invoker implements domain.ConverterInvoker by running the converter jar
// through a domain.CommandRunner.
type Invoker struct {
	runner  domain.CommandRunner
	java    string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an Invoker. An empty java defaults to "java" on PATH, a
// non-positive timeout to domain.DefaultConverterTimeout, and a nil logger
// discards output.
func New(runner domain.CommandRunner, java string, timeout time.Duration, logger *slog.Logger) *Invoker {
	if java == "" {
		java = domain.DefaultJavaCommand
	}
	if timeout <= 0 {
		timeout = domain.DefaultConverterTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Invoker{runner: runner, java: java, timeout: timeout, logger: logger}
}

// Invoke runs the converter and reports the Java sources it wrote and the
// build fragment it left in the project root, if any.
func (i *Invoker) Invoke(ctx context.Context, jarPath string, inv domain.ConverterInvocation) (*domain.ConversionResult, error) {
	cmd, err := i.Command(jarPath, inv)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(inv.OutDirectory, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	before, err := snapshot(inv.OutDirectory)
	if err != nil {
		return nil, fmt.Errorf("listing output directory: %w", err)
	}

	full := append([]string{cmd.Name}, cmd.Args...)
	i.log(inv).Debug("running wsdl2rest", "command", strings.Join(full, " "))

	runCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	started := time.Now()
	out, err := i.runner.Run(runCtx, cmd)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", i.timeout, err)
		}
		return nil, &domain.ConverterError{Command: full, ExitCode: -1, Stderr: string(out.Stderr), Err: err}
	}

	i.log(inv).Debug("wsdl2rest finished", "exit_code", out.ExitCode, "elapsed", time.Since(started).Round(time.Millisecond))
	for _, line := range strings.Split(strings.TrimSpace(string(out.Stdout)), "\n") {
		if line != "" {
			i.log(inv).Debug(line, "stream", "stdout")
		}
	}

	if out.ExitCode != 0 {
		return nil, &domain.ConverterError{Command: full, ExitCode: out.ExitCode, Stderr: string(out.Stderr)}
	}

	after, err := snapshot(inv.OutDirectory)
	if err != nil {
		return nil, fmt.Errorf("listing output directory: %w", err)
	}

	result := &domain.ConversionResult{GeneratedSources: changedSources(inv.ProjectRoot, before, after)}
	fragment := filepath.Join(inv.ProjectRoot, domain.FragmentFileName)
	if _, err := os.Stat(fragment); err == nil {
		result.FragmentPath = fragment
	}
	return result, nil
}

// Command builds the converter command line for inv.
func (i *Invoker) Command(jarPath string, inv domain.ConverterInvocation) (domain.Command, error) {
	loc, err := Location(inv.WSDL)
	if err != nil {
		return domain.Command{}, err
	}

	args := []string{"-jar", jarPath, "--wsdl", loc, "--out", inv.OutDirectory}
	if ctxFile := inv.DSL.ResourceFile(); ctxFile != "" {
		flag := "--camel-context"
		if inv.DSL == domain.DSLBlueprint {
			flag = "--blueprint-context"
		}
		args = append(args, flag, filepath.Join(inv.ProjectRoot, filepath.FromSlash(ctxFile)))
	}
	if inv.JaxWSURL != "" {
		args = append(args, "--jaxws", inv.JaxWSURL)
	}
	if inv.JaxRSURL != "" {
		args = append(args, "--jaxrs", inv.JaxRSURL)
	}

	return domain.Command{Name: i.java, Args: args, Dir: inv.ProjectRoot}, nil
}

// Location turns a WSDL source into the URL handed to the converter. Remote
// and file URLs pass through; local paths become absolute file:// URLs and
// must exist.
func Location(src string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", fmt.Errorf("%w: WSDL source is empty", domain.ErrInvalidRequest)
	}
	if u, err := url.Parse(src); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return src, nil
		}
	}

	abs, err := filepath.Abs(src)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("%w: WSDL file %s: %v", domain.ErrInvalidRequest, abs, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = "/" + u.Path
	}
	return u.String(), nil
}

func (i *Invoker) log(inv domain.ConverterInvocation) *slog.Logger {
	if inv.Debug {
		return i.logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fileStamp struct {
	size    int64
	modTime int64
}

func snapshot(dir string) (map[string]fileStamp, error) {
	files := map[string]fileStamp{}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files[path] = fileStamp{size: info.Size(), modTime: info.ModTime().UnixNano()}
		return nil
	})
	return files, err
}

func changedSources(root string, before, after map[string]fileStamp) []string {
	var changed []string
	for path, stamp := range after {
		if prev, ok := before[path]; ok && prev == stamp {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = path
		}
		changed = append(changed, filepath.ToSlash(rel))
	}
	sort.Strings(changed)
	return changed
}
