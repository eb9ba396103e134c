// Package pom merges build fragments into a Maven pom.xml while leaving the
// rest of the document text untouched.
package pom

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/camelgen/camelgen/internal/domain"
)

const defaultPluginGroup = "org.apache.maven.plugins"

type coordinates struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Classifier string `xml:"classifier"`
}

func dependencyKey(raw []byte) (string, error) {
	var c coordinates
	if err := xml.Unmarshal(raw, &c); err != nil {
		return "", err
	}
	if c.GroupID == "" || c.ArtifactID == "" {
		return "", fmt.Errorf("dependency without groupId/artifactId: %s", bytes.TrimSpace(raw))
	}
	key := strings.TrimSpace(c.GroupID) + ":" + strings.TrimSpace(c.ArtifactID)
	if c.Classifier != "" {
		key += ":" + strings.TrimSpace(c.Classifier)
	}
	return key, nil
}

func pluginKey(raw []byte) (string, error) {
	var c coordinates
	if err := xml.Unmarshal(raw, &c); err != nil {
		return "", err
	}
	if c.ArtifactID == "" {
		return "", fmt.Errorf("plugin without artifactId: %s", bytes.TrimSpace(raw))
	}
	group := strings.TrimSpace(c.GroupID)
	if group == "" {
		group = defaultPluginGroup
	}
	return group + ":" + strings.TrimSpace(c.ArtifactID), nil
}

// item is one element taken from the fragment.
type item struct {
	key  string
	text string
	base string
}

type fragment struct {
	properties   []item
	dependencies []item
	plugins      []item
}

func (f fragment) empty() bool {
	return len(f.properties) == 0 && len(f.dependencies) == 0 && len(f.plugins) == 0
}

func parseFragment(data []byte) (fragment, error) {
	var frag fragment
	if len(bytes.TrimSpace(data)) == 0 {
		return frag, nil
	}
	data, _, err := toUTF8(data)
	if err != nil {
		return frag, fmt.Errorf("parsing fragment: %w", err)
	}
	doc, err := scan(data)
	if err != nil {
		return frag, fmt.Errorf("parsing fragment: %w", err)
	}

	var depPath string
	switch root := doc.root().Name; root {
	case "project":
		depPath = "project/dependencies/dependency"
		for _, parent := range doc.findAll("project/properties") {
			for _, el := range doc.children(parent) {
				frag.properties = append(frag.properties, doc.item(el, el.Name))
			}
		}
		for _, el := range doc.findAll("project/build/plugins/plugin") {
			key, err := pluginKey(doc.raw(el))
			if err != nil {
				return frag, fmt.Errorf("parsing fragment: %w", err)
			}
			frag.plugins = append(frag.plugins, doc.item(el, key))
		}
	case "dependencies":
		depPath = "dependencies/dependency"
	default:
		return frag, fmt.Errorf("parsing fragment: unsupported root element <%s>", root)
	}

	for _, el := range doc.findAll(depPath) {
		key, err := dependencyKey(doc.raw(el))
		if err != nil {
			return frag, fmt.Errorf("parsing fragment: %w", err)
		}
		frag.dependencies = append(frag.dependencies, doc.item(el, key))
	}
	return frag, nil
}

func (d *document) item(el *element, key string) item {
	return item{key: key, text: string(d.raw(el)), base: d.indentOf(el)}
}

type edit struct {
	start, end int
	text       string
}

type merger struct {
	doc    *document
	edits  []edit
	report domain.MergeReport
}

// Merge returns pomXML with the properties, dependencies and plugins of
// fragmentXML added. Entries already present in the pom are skipped. The
// result keeps the pom's declared encoding and line endings.
func Merge(pomXML, fragmentXML []byte) ([]byte, domain.MergeReport, error) {
	frag, err := parseFragment(fragmentXML)
	if err != nil {
		return nil, domain.MergeReport{}, fmt.Errorf("%w: %v", domain.ErrFragmentMerge, err)
	}

	text, enc, err := toUTF8(pomXML)
	if err != nil {
		return nil, domain.MergeReport{}, fmt.Errorf("%w: reading pom.xml: %v", domain.ErrFragmentMerge, err)
	}
	doc, err := scan(text)
	if err != nil {
		return nil, domain.MergeReport{}, fmt.Errorf("%w: parsing pom.xml: %v", domain.ErrFragmentMerge, err)
	}
	if doc.root().Name != "project" {
		return nil, domain.MergeReport{}, fmt.Errorf("%w: pom.xml root element is <%s>, want <project>", domain.ErrFragmentMerge, doc.root().Name)
	}
	if frag.empty() {
		return pomXML, domain.MergeReport{}, nil
	}

	m := &merger{doc: doc}
	if err := m.mergeProperties(frag.properties); err != nil {
		return nil, domain.MergeReport{}, err
	}
	if err := m.mergeDependencies(frag.dependencies); err != nil {
		return nil, domain.MergeReport{}, err
	}
	if err := m.mergePlugins(frag.plugins); err != nil {
		return nil, domain.MergeReport{}, err
	}

	out := m.apply()
	if _, err := scan(out); err != nil {
		return nil, domain.MergeReport{}, fmt.Errorf("%w: merged pom.xml is not well-formed: %v", domain.ErrFragmentMerge, err)
	}
	if out, err = fromUTF8(out, enc); err != nil {
		return nil, domain.MergeReport{}, fmt.Errorf("%w: encoding merged pom.xml: %v", domain.ErrFragmentMerge, err)
	}
	return out, m.report, nil
}

func (m *merger) mergeProperties(items []item) error {
	existing := map[string]bool{}
	section := m.doc.find("project/properties")
	if section != nil {
		for _, el := range m.doc.children(section) {
			existing[el.Name] = true
		}
	}
	fresh := m.filter(items, existing, &m.report.Properties)
	if len(fresh) == 0 {
		return nil
	}
	m.place(section, "properties", fresh, "project/dependencies", "project/build")
	return nil
}

func (m *merger) mergeDependencies(items []item) error {
	existing := map[string]bool{}
	section := m.doc.find("project/dependencies")
	if section != nil {
		for _, el := range m.doc.children(section) {
			key, err := dependencyKey(m.doc.raw(el))
			if err != nil {
				return fmt.Errorf("%w: pom.xml: %v", domain.ErrFragmentMerge, err)
			}
			existing[key] = true
		}
	}
	fresh := m.filter(items, existing, &m.report.Dependencies)
	if len(fresh) == 0 {
		return nil
	}
	m.place(section, "dependencies", fresh, "project/build")
	return nil
}

func (m *merger) mergePlugins(items []item) error {
	existing := map[string]bool{}
	section := m.doc.find("project/build/plugins")
	if section != nil {
		for _, el := range m.doc.children(section) {
			key, err := pluginKey(m.doc.raw(el))
			if err != nil {
				return fmt.Errorf("%w: pom.xml: %v", domain.ErrFragmentMerge, err)
			}
			existing[key] = true
		}
	}
	fresh := m.filter(items, existing, &m.report.Plugins)
	if len(fresh) == 0 {
		return nil
	}

	if section != nil {
		m.edits = append(m.edits, m.appendTo(section, m.block(fresh, m.doc.childIndent(section))))
		return nil
	}

	unit := m.doc.unit()
	if build := m.doc.find("project/build"); build != nil {
		indent := m.doc.childIndent(build)
		text := "\n" + indent + wrap("plugins", m.block(fresh, indent+unit), indent)
		m.edits = append(m.edits, m.appendTo(build, text))
		return nil
	}

	project := m.doc.root()
	indent := m.doc.childIndent(project)
	plugins := indent + unit + wrap("plugins", m.block(fresh, indent+unit+unit), indent+unit)
	text := "\n" + indent + "<build>\n" + plugins + "\n" + indent + "</build>"
	m.edits = append(m.edits, m.appendTo(project, text))
	return nil
}

// filter drops items already present (in the pom or earlier in the fragment)
// and records the outcome in the report.
func (m *merger) filter(items []item, existing map[string]bool, added *[]string) []item {
	var fresh []item
	for _, it := range items {
		if existing[it.key] {
			m.report.Skipped = append(m.report.Skipped, it.key)
			continue
		}
		existing[it.key] = true
		fresh = append(fresh, it)
		*added = append(*added, it.key)
	}
	return fresh
}

// place inserts items into section, or creates the section as a child of
// project, ahead of the first anchor that exists.
func (m *merger) place(section *element, name string, items []item, anchors ...string) {
	if section != nil {
		m.edits = append(m.edits, m.appendTo(section, m.block(items, m.doc.childIndent(section))))
		return
	}

	project := m.doc.root()
	indent := m.doc.childIndent(project)
	text := wrap(name, m.block(items, indent+m.doc.unit()), indent)

	for _, path := range anchors {
		if anchor := m.doc.find(path); anchor != nil && anchor.Depth == 1 {
			m.edits = append(m.edits, edit{start: anchor.Start, end: anchor.Start, text: text + "\n" + indent})
			return
		}
	}
	m.edits = append(m.edits, m.appendTo(project, "\n"+indent+text))
}

// block renders items one per line at indent, each preceded by a newline.
func (m *merger) block(items []item, indent string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(reindent(it.text, it.base, indent))
	}
	return b.String()
}

func wrap(name, block, indent string) string {
	return "<" + name + ">" + block + "\n" + indent + "</" + name + ">"
}

// appendTo places text after the last child of parent.
func (m *merger) appendTo(parent *element, text string) edit {
	indent := m.doc.indentOf(parent)
	if parent.SelfClosing {
		return edit{start: parent.Start, end: parent.End, text: wrap(parent.Name, text, indent)}
	}
	if kids := m.doc.children(parent); len(kids) > 0 {
		last := kids[len(kids)-1]
		return edit{start: last.End, end: last.End, text: text}
	}
	if !bytes.Contains(m.doc.data[parent.OpenEnd:parent.CloseStart], []byte("\n")) {
		text += "\n" + indent
	}
	return edit{start: parent.OpenEnd, end: parent.OpenEnd, text: text}
}

func (m *merger) apply() []byte {
	edits := make([]edit, len(m.edits))
	copy(edits, m.edits)
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	nl := newline(m.doc.data)
	var out bytes.Buffer
	pos := 0
	for _, e := range edits {
		if e.start > pos {
			out.Write(m.doc.data[pos:e.start])
			pos = e.start
		}
		text := strings.ReplaceAll(e.text, "\r\n", "\n")
		if nl != "\n" {
			text = strings.ReplaceAll(text, "\n", nl)
		}
		out.WriteString(text)
		if e.end > pos {
			pos = e.end
		}
	}
	out.Write(m.doc.data[pos:])
	return out.Bytes()
}
