package domain

// FragmentFileName is the supplementary build fragment merged into pom.xml.
const FragmentFileName = "pom.xml.wsdl2rest"

// ConverterInvocation describes one run of the wsdl2rest converter.
type ConverterInvocation struct {
	ProjectRoot  string
	WSDL         string
	OutDirectory string
	DSL          DSL
	JaxWSURL     string
	JaxRSURL     string
	Debug        bool
}

// ConversionResult is what the converter left behind. It is consumed right
// away by the build reconciler.
type ConversionResult struct {
	GeneratedSources []string `json:"generated_sources"`
	FragmentPath     string   `json:"fragment_path,omitempty"`
}

// HasFragment reports whether the converter run produced a build fragment.
func (r *ConversionResult) HasFragment() bool {
	return r != nil && r.FragmentPath != ""
}

// MergeReport lists what a fragment merge added to pom.xml.
type MergeReport struct {
	Dependencies []string `json:"dependencies,omitempty"`
	Properties   []string `json:"properties,omitempty"`
	Plugins      []string `json:"plugins,omitempty"`
	Skipped      []string `json:"skipped,omitempty"`
}

// Empty reports whether nothing was merged.
func (m MergeReport) Empty() bool {
	return len(m.Dependencies) == 0 && len(m.Properties) == 0 && len(m.Plugins) == 0
}

// ScaffoldResult summarises a completed scaffold run.
type ScaffoldResult struct {
	Request          ScaffoldRequest `json:"request"`
	Files            []string        `json:"files"`
	GeneratedSources []string        `json:"generated_sources,omitempty"`
	ConverterJar     string          `json:"converter_jar,omitempty"`
	Merge            *MergeReport    `json:"merge,omitempty"`
	CommitHash       string          `json:"commit_hash,omitempty"`
}
