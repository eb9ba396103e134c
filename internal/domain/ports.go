package domain

import (
	"context"
	"io/fs"
)

// ConfigLoader loads generator defaults from a directory or explicit file.
type ConfigLoader interface {
	Load(dir, explicitPath string) (GeneratorConfig, error)
}

// TemplateRenderer stamps the base project tree for a request and returns the
// written paths relative to the destination.
type TemplateRenderer interface {
	Render(req ScaffoldRequest) ([]string, error)
}

// ArtifactLocator finds the converter fat jar below a search root.
type ArtifactLocator interface {
	Find(searchRoot string) (string, error)
}

// Command is a process to spawn.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// CommandOutput is what a finished process reported.
type CommandOutput struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

// CommandRunner spawns a process and waits for it to exit. A non-zero exit is
// reported through CommandOutput.ExitCode, not as an error.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (CommandOutput, error)
}

// ConverterInvoker runs the wsdl2rest converter.
type ConverterInvoker interface {
	Invoke(ctx context.Context, jarPath string, inv ConverterInvocation) (*ConversionResult, error)
}

// BuildReconciler merges the converter's build fragment into pom.xml.
type BuildReconciler interface {
	Reconcile(projectRoot string) (*MergeReport, error)
}

// RepoInitializer puts a freshly generated project under version control.
type RepoInitializer interface {
	IsGitRepo(path string) bool
	InitAndCommit(path, message string) (string, error)
}

// TemplateSource supplies the template tree.
type TemplateSource interface {
	FS() (fs.FS, error)
}
