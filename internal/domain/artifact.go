package domain

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// ConverterArtifactPrefix is the file name prefix of the packaged converter.
	ConverterArtifactPrefix = "wsdl2rest-impl-fatjar-"
	// DecoySuffix marks the pre-repackaging backup left by the build.
	DecoySuffix = ".original"
)

var artifactNamePattern = regexp.MustCompile(`^` + regexp.QuoteMeta(ConverterArtifactPrefix) + `(.+)\.jar$`)

// ArtifactCandidate is a file that may be the converter fat jar.
type ArtifactCandidate struct {
	Path    string
	Version string
}

// ParseArtifactName returns the version embedded in a converter file name.
// Decoy backups and unrelated files are rejected.
func ParseArtifactName(name string) (string, bool) {
	if strings.HasSuffix(name, DecoySuffix) {
		return "", false
	}
	m := artifactNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SelectArtifact picks the candidate with the highest semantic version.
// Versions that do not parse rank below all parseable ones and are compared
// as strings. Two candidates with the same version are ambiguous.
func SelectArtifact(candidates []ArtifactCandidate) (ArtifactCandidate, error) {
	if len(candidates) == 0 {
		return ArtifactCandidate{}, ErrArtifactNotFound
	}

	sorted := make([]ArtifactCandidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareArtifactVersions(sorted[i].Version, sorted[j].Version) > 0
	})

	if len(sorted) > 1 && compareArtifactVersions(sorted[0].Version, sorted[1].Version) == 0 {
		return ArtifactCandidate{}, fmt.Errorf("%w: version %s found at %s and %s",
			ErrAmbiguousArtifact, sorted[0].Version,
			filepath.ToSlash(sorted[0].Path), filepath.ToSlash(sorted[1].Path))
	}
	return sorted[0], nil
}

func compareArtifactVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	}
	return strings.Compare(a, b)
}
