package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/camelgen/camelgen/internal/domain"
)

// EnvSearchDir overrides the default converter search directory.
const EnvSearchDir = "CAMELGEN_WSDL2REST_DIR"

var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// Locator implements domain.ArtifactLocator by walking the filesystem.
type Locator struct{}

func New() *Locator {
	return &Locator{}
}

// Find returns the path of the wsdl2rest fat jar below searchRoot.
func (l *Locator) Find(searchRoot string) (string, error) {
	absRoot, err := filepath.Abs(searchRoot)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(absRoot); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: search directory %s does not exist", domain.ErrArtifactNotFound, absRoot)
		}
		return "", err
	}

	var candidates []domain.ArtifactCandidate
	err = filepath.WalkDir(absRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if version, ok := domain.ParseArtifactName(d.Name()); ok {
			candidates = append(candidates, domain.ArtifactCandidate{Path: path, Version: version})
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("searching %s: %w", absRoot, err)
	}

	selected, err := domain.SelectArtifact(candidates)
	if err != nil {
		if errors.Is(err, domain.ErrArtifactNotFound) {
			return "", fmt.Errorf("%w in %s", domain.ErrArtifactNotFound, absRoot)
		}
		return "", err
	}
	return selected.Path, nil
}

// DefaultSearchRoot resolves where to look for the converter: the configured
// directory, then $CAMELGEN_WSDL2REST_DIR, then wsdl2rest/target next to the
// running executable.
func DefaultSearchRoot(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv(EnvSearchDir); env != "" {
		return env
	}
	exe, err := os.Executable()
	if err != nil {
		return filepath.Join("wsdl2rest", "target")
	}
	return filepath.Join(filepath.Dir(exe), "wsdl2rest", "target")
}
