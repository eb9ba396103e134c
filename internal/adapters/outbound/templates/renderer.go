package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/camelgen/camelgen/internal/domain"
)

//go:embed all:assets
var assets embed.FS

const (
	templateSuffix = ".tmpl"
	packageSegment = "__package__"
	commonLayer    = "common"
	bridgeLayer    = "wsdl2rest"
)

// Source implements domain.TemplateSource. The zero value serves the
// embedded tree.
type Source struct {
	Dir string
}

// NewSource returns a source reading from dir, or the embedded tree when dir
// is empty.
func NewSource(dir string) Source {
	return Source{Dir: dir}
}

func (s Source) FS() (fs.FS, error) {
	if s.Dir == "" {
		return fs.Sub(assets, "assets")
	}
	info, err := os.Stat(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("templates directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("templates directory %s is not a directory", s.Dir)
	}
	return os.DirFS(s.Dir), nil
}

// Renderer implements domain.TemplateRenderer on top of text/template.
type Renderer struct {
	source domain.TemplateSource
}

// New creates a Renderer. A nil source uses the embedded tree.
func New(source domain.TemplateSource) *Renderer {
	if source == nil {
		source = Source{}
	}
	return &Renderer{source: source}
}

// data is what templates see: the request plus values computed for the run.
type data struct {
	domain.ScaffoldRequest
	OutSourceDir string
}

type plannedFile struct {
	src      string
	target   string
	template bool
}

// Render stamps the common layer, the DSL layer and, when bridging, the
// wsdl2rest layer into req.Destination. Every file is rendered in memory
// before anything is written.
func (r *Renderer) Render(req domain.ScaffoldRequest) ([]string, error) {
	tree, err := r.source.FS()
	if err != nil {
		return nil, err
	}

	layers := []string{commonLayer, string(req.DSL)}
	if req.Wsdl2Rest {
		layers = append(layers, bridgeLayer)
	}

	var plan []plannedFile
	for _, layer := range layers {
		files, err := planLayer(tree, layer, req.PackagePath())
		if err != nil {
			return nil, err
		}
		plan = append(plan, files...)
	}

	if !req.Force {
		if err := checkConflicts(req.Destination, plan); err != nil {
			return nil, err
		}
	}

	d := data{ScaffoldRequest: req, OutSourceDir: outSourceDir(req)}
	rendered := make([][]byte, len(plan))
	for i, f := range plan {
		raw, err := fs.ReadFile(tree, f.src)
		if err != nil {
			return nil, err
		}
		if !f.template {
			rendered[i] = raw
			continue
		}
		out, err := execute(f.src, raw, d)
		if err != nil {
			return nil, err
		}
		rendered[i] = out
	}

	written := make([]string, 0, len(plan))
	for i, f := range plan {
		target := filepath.Join(req.Destination, filepath.FromSlash(f.target))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return written, err
		}
		if err := os.WriteFile(target, rendered[i], 0644); err != nil {
			return written, err
		}
		written = append(written, f.target)
	}
	return written, nil
}

// FuncMap returns the functions available to project templates.
func FuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["title"] = domain.Title
	funcs["routeID"] = domain.RouteID
	funcs["packagePath"] = domain.PackagePath
	return funcs
}

func execute(name string, raw []byte, d data) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(FuncMap()).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func planLayer(tree fs.FS, layer, pkgPath string) ([]plannedFile, error) {
	var files []plannedFile
	err := fs.WalkDir(tree, layer, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, layer+"/")
		f := plannedFile{src: p, template: strings.HasSuffix(rel, templateSuffix)}
		rel = strings.TrimSuffix(rel, templateSuffix)

		segments := strings.Split(rel, "/")
		for i, s := range segments {
			if s == packageSegment {
				segments[i] = pkgPath
			}
		}
		f.target = path.Join(segments...)
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading template layer %q: %w", layer, err)
	}
	return files, nil
}

func checkConflicts(dest string, plan []plannedFile) error {
	for _, f := range plan {
		target := filepath.Join(dest, filepath.FromSlash(f.target))
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", domain.ErrProjectExists, target)
		}
	}
	return nil
}

func outSourceDir(req domain.ScaffoldRequest) string {
	out := req.ResolvedOutDirectory()
	rel, err := filepath.Rel(req.Destination, out)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(out)
	}
	return filepath.ToSlash(rel)
}
