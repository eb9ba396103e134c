package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/camelgen/camelgen/internal/domain"
)

// InitialCommitMessage is used for the commit created with --git.
const InitialCommitMessage = "Initial commit generated by camelgen"

// ScaffoldService generates a Camel project and, when requested, bridges a
// WSDL into it through the wsdl2rest converter.
type ScaffoldService struct {
	renderer   domain.TemplateRenderer
	locator    domain.ArtifactLocator
	invoker    domain.ConverterInvoker
	reconciler domain.BuildReconciler
	repo       domain.RepoInitializer
	searchRoot string
	logger     *slog.Logger
}

// NewScaffoldService creates a new ScaffoldService with all required
// dependencies. searchRoot is where the converter jar is looked up. A nil
// logger discards output.
func NewScaffoldService(
	renderer domain.TemplateRenderer,
	locator domain.ArtifactLocator,
	invoker domain.ConverterInvoker,
	reconciler domain.BuildReconciler,
	repo domain.RepoInitializer,
	searchRoot string,
	logger *slog.Logger,
) *ScaffoldService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ScaffoldService{
		renderer: renderer, locator: locator, invoker: invoker,
		reconciler: reconciler, repo: repo, searchRoot: searchRoot, logger: logger,
	}
}

// Scaffold runs validate, render, locate, invoke, reconcile and git init in
// that order. Nothing is written when validation fails. When a later step
// fails, a destination created by this run is removed again; a destination
// that already existed is left alone and the partial result is returned with
// the error.
func (s *ScaffoldService) Scaffold(ctx context.Context, req domain.ScaffoldRequest) (*domain.ScaffoldResult, error) {
	// 1. Validate
	if err := req.Validate(); err != nil {
		return nil, err
	}
	req.DSL, _ = domain.ParseDSL(string(req.DSL))
	dest, err := filepath.Abs(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}
	req.Destination = dest
	existed := dirExists(dest)

	result := &domain.ScaffoldResult{Request: req}
	fail := func(step string, err error) (*domain.ScaffoldResult, error) {
		err = fmt.Errorf("%s: %w", step, err)
		if existed {
			s.logger.Warn("scaffold failed, leaving existing destination in place", "destination", dest, "files", len(result.Files))
			return result, err
		}
		if rmErr := os.RemoveAll(dest); rmErr != nil {
			s.logger.Warn("rollback failed", "destination", dest, "error", rmErr)
		} else {
			s.logger.Info("rolled back", "destination", dest)
		}
		return nil, err
	}

	// 2. Render templates
	files, err := s.renderer.Render(req)
	result.Files = files
	if err != nil {
		return fail("rendering templates", err)
	}
	s.logger.Debug("templates rendered", "destination", dest, "files", len(files))

	if req.Wsdl2Rest {
		if err := ctx.Err(); err != nil {
			return fail("wsdl2rest", err)
		}

		// 3. Locate converter
		jar, err := s.locator.Find(s.searchRoot)
		if err != nil {
			return fail("locating wsdl2rest", err)
		}
		result.ConverterJar = jar

		// 4. Invoke converter
		conv, err := s.invoker.Invoke(ctx, jar, domain.ConverterInvocation{
			ProjectRoot:  dest,
			WSDL:         req.WSDL,
			OutDirectory: req.ResolvedOutDirectory(),
			DSL:          req.DSL,
			JaxWSURL:     req.JaxWSURL,
			JaxRSURL:     req.JaxRSURL,
			Debug:        req.Debug,
		})
		if err != nil {
			return fail("running wsdl2rest", err)
		}
		result.GeneratedSources = conv.GeneratedSources

		// 5. Reconcile build
		report, err := s.reconciler.Reconcile(dest)
		if err != nil {
			return fail("merging "+domain.FragmentFileName, err)
		}
		result.Merge = report
		result.Files = withoutFragment(result.Files)
	}

	// 6. Git
	if req.GitInit {
		if s.repo.IsGitRepo(dest) {
			s.logger.Info("destination is already inside a git repository, skipping init", "destination", dest)
		} else {
			hash, err := s.repo.InitAndCommit(dest, InitialCommitMessage)
			if err != nil {
				return fail("initializing git", err)
			}
			result.CommitHash = hash
		}
	}

	return result, nil
}

func withoutFragment(files []string) []string {
	kept := files[:0:0]
	for _, f := range files {
		if f != domain.FragmentFileName {
			kept = append(kept, f)
		}
	}
	return kept
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
