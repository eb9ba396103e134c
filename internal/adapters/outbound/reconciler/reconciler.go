package reconciler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/camelgen/camelgen/internal/domain"
	"github.com/camelgen/camelgen/internal/domain/pom"
)

// Reconciler is a file-based implementation of domain.BuildReconciler.
type Reconciler struct{}

// New creates a new Reconciler.
func New() *Reconciler {
	return &Reconciler{}
}

// Reconcile merges <projectRoot>/pom.xml.wsdl2rest into <projectRoot>/pom.xml
// and removes the fragment. Without a fragment it does nothing. When the merge
// fails the fragment stays on disk for inspection.
func (r *Reconciler) Reconcile(projectRoot string) (*domain.MergeReport, error) {
	fragmentPath := filepath.Join(projectRoot, domain.FragmentFileName)
	fragment, err := os.ReadFile(fragmentPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.MergeReport{}, nil // nothing to reconcile
		}
		return nil, err
	}

	pomPath := filepath.Join(projectRoot, "pom.xml")
	info, err := os.Stat(pomPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFragmentMerge, err)
	}
	current, err := os.ReadFile(pomPath)
	if err != nil {
		return nil, err
	}

	merged, report, err := pom.Merge(current, fragment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fragmentPath, err)
	}

	if !report.Empty() {
		if err := os.WriteFile(pomPath, merged, info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("writing pom.xml: %w", err)
		}
	}
	if err := os.Remove(fragmentPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("removing %s: %w", domain.FragmentFileName, err)
	}
	return &report, nil
}
