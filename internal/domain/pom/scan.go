package pom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// element records where an XML element sits in the source document.
type element struct {
	Path        string
	Name        string
	Depth       int
	Start       int // offset of '<' in the start tag
	OpenEnd     int // offset just past the start tag
	CloseStart  int // offset of the end tag
	End         int // offset just past the end tag
	SelfClosing bool
}

// document is a scanned XML document. Elements appear in document order.
type document struct {
	data     []byte
	elements []*element
}

func scan(data []byte) (*document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = utf8Only
	doc := &document{data: data}
	var stack []*element

	for {
		before := int(dec.InputOffset())
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		after := int(dec.InputOffset())

		switch t := tok.(type) {
		case xml.StartElement:
			path := t.Name.Local
			if len(stack) > 0 {
				path = stack[len(stack)-1].Path + "/" + path
			}
			el := &element{
				Path:    path,
				Name:    t.Name.Local,
				Depth:   len(stack),
				Start:   before,
				OpenEnd: after,
			}
			stack = append(stack, el)
			doc.elements = append(doc.elements, el)
		case xml.EndElement:
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			el.CloseStart = before
			el.End = after
			el.SelfClosing = before == el.OpenEnd && bytes.HasSuffix(data[el.Start:el.OpenEnd], []byte("/>"))
		}
	}

	if len(doc.elements) == 0 {
		return nil, errors.New("no root element")
	}
	if len(stack) > 0 {
		return nil, errors.New("unclosed element <" + stack[len(stack)-1].Name + ">")
	}
	return doc, nil
}

func (d *document) root() *element { return d.elements[0] }

// find returns the first element with the given path.
func (d *document) find(path string) *element {
	for _, el := range d.elements {
		if el.Path == path {
			return el
		}
	}
	return nil
}

// findAll returns every element with the given path.
func (d *document) findAll(path string) []*element {
	var out []*element
	for _, el := range d.elements {
		if el.Path == path {
			out = append(out, el)
		}
	}
	return out
}

func (d *document) children(parent *element) []*element {
	var out []*element
	for _, el := range d.elements {
		if el.Depth == parent.Depth+1 && el.Start >= parent.OpenEnd && el.End <= parent.CloseStart {
			out = append(out, el)
		}
	}
	return out
}

func (d *document) raw(el *element) []byte {
	return d.data[el.Start:el.End]
}

// lineIndent returns the whitespace between the start of the line and pos, or
// "" when pos is not the first non-blank position on its line.
func (d *document) lineIndent(pos int) string {
	i := pos
	for i > 0 && (d.data[i-1] == ' ' || d.data[i-1] == '\t') {
		i--
	}
	if i > 0 && d.data[i-1] != '\n' {
		return ""
	}
	return string(d.data[i:pos])
}

func (d *document) indentOf(el *element) string {
	return d.lineIndent(el.Start)
}

// unit guesses one level of indentation from the root's first child.
func (d *document) unit() string {
	root := d.root()
	kids := d.children(root)
	if len(kids) > 0 {
		inner := d.indentOf(kids[0])
		outer := d.indentOf(root)
		if u := strings.TrimPrefix(inner, outer); u != "" && len(inner) > len(outer) {
			return u
		}
	}
	return "  "
}

// childIndent is the indentation for a new child of parent.
func (d *document) childIndent(parent *element) string {
	if kids := d.children(parent); len(kids) > 0 {
		if in := d.indentOf(kids[0]); in != "" {
			return in
		}
	}
	return d.indentOf(parent) + d.unit()
}

// reindent moves a multi-line snippet whose first line was indented with base
// so that it starts at target.
func reindent(raw, base, target string) string {
	lines := strings.Split(raw, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = target + strings.TrimPrefix(lines[i], base)
	}
	return strings.Join(lines, "\n")
}
