// Package scan walks vector markup with a streaming XML tokenizer and
// flattens it into a Document the color catalog and bounds engine can
// consume without re-parsing. It replaces regex scraping of attributes
// with a proper element/attribute walk, so duplicated or nested paint
// attributes resolve the way a renderer would resolve them.
package scan

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	// MaxDocumentBytes is the hard ceiling on markup size. Documents above
	// it are not parsed at all; callers fall back to a fixed-size result so
	// worst-case latency stays bounded.
	MaxDocumentBytes = 2 << 20

	// maxElementsPerTag caps how many elements of one kind are retained,
	// bounding work on pathological documents.
	maxElementsPerTag = 200
)

// ErrTooLarge is returned by Parse for documents over MaxDocumentBytes.
var ErrTooLarge = fmt.Errorf("markup exceeds %d bytes", MaxDocumentBytes)

// Element is one flattened shape, text, or reference element.
// Fill and Stroke are resolved from the element's own attributes, its
// inline style, and enclosing group paint, in that order.
type Element struct {
	Tag    string
	ID     string
	Fill   string
	Stroke string

	// FillLiteral and StrokeLiteral preserve the paint exactly as written
	// in the markup (attribute value or style declaration), for exact
	// find/replace recoloring.
	FillLiteral   string
	StrokeLiteral string

	PathData string
	Points   string // polygon/polyline points attribute

	X, Y, W, H float64 // rect / line endpoints in X,Y,W,H=X2,Y2
	CX, CY     float64
	RX, RY     float64

	InDefs bool

	Text       string
	FontFamily string
	FontSize   float64
	FontWeight string

	HrefID string // use/tref reference target without '#'
}

// Document is the flattened view of one vector markup string.
type Document struct {
	ViewBox    [4]float64
	HasViewBox bool
	Width      float64
	Height     float64

	Elements []Element

	// Metadata aggregates character data from metadata, desc and title
	// blocks; spot-color name hints live here.
	Metadata string

	GlyphDefIDs []string
	UseRefIDs   []string

	// Truncated is set when an element cap was hit and the document was
	// only partially retained.
	Truncated bool
}

// HasLiveText reports whether the document contains live text: text/tspan
// elements or use-references resolving into glyph definitions.
func (d *Document) HasLiveText() bool {
	for _, el := range d.Elements {
		if (el.Tag == "text" || el.Tag == "tspan") && strings.TrimSpace(el.Text) != "" {
			return true
		}
	}
	return len(d.glyphRefs()) > 0
}

// GlyphsOutlined reports whether glyph definitions exist with no live
// references into them, i.e. the text was already converted to outlines.
func (d *Document) GlyphsOutlined() bool {
	return len(d.GlyphDefIDs) > 0 && len(d.glyphRefs()) == 0
}

// HasGlyphContent reports whether the document carries glyph definition
// blocks or references at all.
func (d *Document) HasGlyphContent() bool {
	return len(d.GlyphDefIDs) > 0 || len(d.UseRefIDs) > 0
}

func (d *Document) glyphRefs() []string {
	if len(d.GlyphDefIDs) == 0 {
		return nil
	}
	defs := make(map[string]struct{}, len(d.GlyphDefIDs))
	for _, id := range d.GlyphDefIDs {
		defs[id] = struct{}{}
	}
	var refs []string
	for _, id := range d.UseRefIDs {
		if _, ok := defs[id]; ok {
			refs = append(refs, id)
		}
	}
	return refs
}

// shapeTags are the element kinds that contribute geometry.
var shapeTags = map[string]bool{
	"path":     true,
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"polygon":  true,
	"polyline": true,
	"line":     true,
}

// groupPaint tracks inheritable paint while descending groups.
type groupPaint struct {
	fill          string
	stroke        string
	fillLiteral   string
	strokeLiteral string
}

// Parse flattens markup into a Document. It returns an error only when the
// input is over the size ceiling or no svg root element can be found;
// malformed content inside the document is skipped, not fatal.
func Parse(markup string) (*Document, error) {
	if len(markup) > MaxDocumentBytes {
		return nil, ErrTooLarge
	}

	dec := xml.NewDecoder(strings.NewReader(markup))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose

	doc := &Document{}
	var (
		sawRoot    bool
		defsDepth  int
		metaDepth  int
		textStack  []int // indexes into doc.Elements
		paintStack []groupPaint
		counts     = map[string]int{}
		metadata   strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Broken markup past this point; keep what we have.
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			attrs := attrMap(t.Attr)

			switch name {
			case "svg":
				if !sawRoot {
					sawRoot = true
					parseRootAttrs(doc, attrs)
				}
			case "defs":
				defsDepth++
			case "metadata", "desc", "title":
				metaDepth++
			case "g":
				paintStack = append(paintStack, resolveGroupPaint(attrs, topPaint(paintStack)))
			case "glyph":
				if id := attrs["id"]; id != "" {
					doc.GlyphDefIDs = append(doc.GlyphDefIDs, id)
				}
			case "use", "tref":
				href := attrs["href"]
				if href == "" {
					href = attrs["xlink:href"]
				}
				if strings.HasPrefix(href, "#") {
					doc.UseRefIDs = append(doc.UseRefIDs, href[1:])
				}
				el := buildElement(name, attrs, defsDepth > 0, topPaint(paintStack))
				el.HrefID = strings.TrimPrefix(href, "#")
				appendCapped(doc, counts, el)
			case "text", "tspan":
				before := len(doc.Elements)
				el := buildElement(name, attrs, defsDepth > 0, topPaint(paintStack))
				appendCapped(doc, counts, el)
				if len(doc.Elements) > before {
					textStack = append(textStack, len(doc.Elements)-1)
				} else {
					// Capped element: push a sentinel so the end tag pops
					// this entry and not an enclosing one.
					textStack = append(textStack, -1)
				}
			default:
				if shapeTags[name] {
					el := buildElement(name, attrs, defsDepth > 0, topPaint(paintStack))
					appendCapped(doc, counts, el)
				}
			}

		case xml.EndElement:
			switch strings.ToLower(t.Name.Local) {
			case "defs":
				if defsDepth > 0 {
					defsDepth--
				}
			case "metadata", "desc", "title":
				if metaDepth > 0 {
					metaDepth--
				}
			case "g":
				if len(paintStack) > 0 {
					paintStack = paintStack[:len(paintStack)-1]
				}
			case "text", "tspan":
				if len(textStack) > 0 {
					textStack = textStack[:len(textStack)-1]
				}
			}

		case xml.CharData:
			if metaDepth > 0 {
				metadata.Write(t)
				metadata.WriteByte('\n')
			}
			if len(textStack) > 0 {
				if idx := textStack[len(textStack)-1]; idx >= 0 {
					doc.Elements[idx].Text += string(t)
				}
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("no svg root element found")
	}
	doc.Metadata = metadata.String()
	return doc, nil
}

func appendCapped(doc *Document, counts map[string]int, el Element) {
	if counts[el.Tag] >= maxElementsPerTag {
		doc.Truncated = true
		return
	}
	counts[el.Tag]++
	doc.Elements = append(doc.Elements, el)
}

func topPaint(stack []groupPaint) groupPaint {
	if len(stack) == 0 {
		return groupPaint{}
	}
	return stack[len(stack)-1]
}

func resolveGroupPaint(attrs map[string]string, inherited groupPaint) groupPaint {
	paint := inherited
	if fill, lit, ok := paintFromAttrs(attrs, "fill"); ok {
		paint.fill, paint.fillLiteral = fill, lit
	}
	if stroke, lit, ok := paintFromAttrs(attrs, "stroke"); ok {
		paint.stroke, paint.strokeLiteral = stroke, lit
	}
	return paint
}

func buildElement(tag string, attrs map[string]string, inDefs bool, inherited groupPaint) Element {
	el := Element{
		Tag:           tag,
		ID:            attrs["id"],
		InDefs:        inDefs,
		Fill:          inherited.fill,
		Stroke:        inherited.stroke,
		FillLiteral:   inherited.fillLiteral,
		StrokeLiteral: inherited.strokeLiteral,
		PathData:      attrs["d"],
		Points:        attrs["points"],
		FontFamily:    attrs["font-family"],
		FontWeight:    attrs["font-weight"],
	}

	if fill, lit, ok := paintFromAttrs(attrs, "fill"); ok {
		el.Fill, el.FillLiteral = fill, lit
	}
	if stroke, lit, ok := paintFromAttrs(attrs, "stroke"); ok {
		el.Stroke, el.StrokeLiteral = stroke, lit
	}
	// Renderers paint an unspecified fill black. The literal stays empty
	// because nothing was written in the markup.
	if el.Fill == "" && !inDefs && shapeTags[tag] {
		el.Fill = "black"
	}

	el.X = floatAttr(attrs, "x", "x1")
	el.Y = floatAttr(attrs, "y", "y1")
	switch tag {
	case "line":
		el.W = floatAttr(attrs, "x2")
		el.H = floatAttr(attrs, "y2")
	default:
		el.W = floatAttr(attrs, "width")
		el.H = floatAttr(attrs, "height")
	}
	el.CX = floatAttr(attrs, "cx")
	el.CY = floatAttr(attrs, "cy")
	el.RX = floatAttr(attrs, "rx", "r")
	el.RY = floatAttr(attrs, "ry", "r")

	if size := attrs["font-size"]; size != "" {
		el.FontSize = parseLength(size)
	}
	if style := attrs["style"]; style != "" {
		if el.FontFamily == "" {
			el.FontFamily = styleValue(style, "font-family")
		}
		if el.FontSize == 0 {
			el.FontSize = parseLength(styleValue(style, "font-size"))
		}
		if el.FontWeight == "" {
			el.FontWeight = styleValue(style, "font-weight")
		}
	}
	return el
}

// paintFromAttrs resolves a paint attribute, preferring the presentation
// attribute and falling back to the inline style declaration.
func paintFromAttrs(attrs map[string]string, key string) (value, literal string, ok bool) {
	if v, present := attrs[key]; present && strings.TrimSpace(v) != "" {
		v = strings.TrimSpace(v)
		return v, v, true
	}
	if style := attrs["style"]; style != "" {
		if v := styleValue(style, key); v != "" {
			return v, v, true
		}
	}
	return "", "", false
}

// styleValue pulls one declaration out of an inline style string.
func styleValue(style, key string) string {
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), key) {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}

func attrMap(attrs []xml.Attr) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		key := strings.ToLower(a.Name.Local)
		if a.Name.Space != "" && strings.Contains(a.Name.Space, "xlink") {
			key = "xlink:" + key
		}
		// First occurrence wins when an attribute is duplicated.
		if _, seen := m[key]; !seen {
			m[key] = a.Value
		}
	}
	return m
}

func parseRootAttrs(doc *Document, attrs map[string]string) {
	if vb := attrs["viewbox"]; vb != "" {
		fields := strings.FieldsFunc(vb, func(r rune) bool { return r == ' ' || r == ',' || r == '\t' || r == '\n' })
		if len(fields) == 4 {
			ok := true
			var parsed [4]float64
			for i, f := range fields {
				v, err := strconv.ParseFloat(f, 64)
				if err != nil {
					ok = false
					break
				}
				parsed[i] = v
			}
			if ok {
				doc.ViewBox = parsed
				doc.HasViewBox = true
			}
		}
	}
	doc.Width = parseLength(attrs["width"])
	doc.Height = parseLength(attrs["height"])
	if doc.Width == 0 && doc.HasViewBox {
		doc.Width = doc.ViewBox[2]
	}
	if doc.Height == 0 && doc.HasViewBox {
		doc.Height = doc.ViewBox[3]
	}
}

// floatAttr reads the first present key among keys as a length, 0 when
// none is set.
func floatAttr(attrs map[string]string, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := attrs[k]; ok {
			return parseLength(v)
		}
	}
	return 0
}

// parseLength reads a CSS-ish length, ignoring a trailing unit suffix.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	end := len(s)
	for end > 0 {
		c := s[end-1]
		if (c >= '0' && c <= '9') || c == '.' {
			break
		}
		end--
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// CanvasWidth returns the usable canvas width, preferring the viewBox.
func (d *Document) CanvasWidth() float64 {
	if d.HasViewBox {
		return d.ViewBox[2]
	}
	return d.Width
}

// CanvasHeight returns the usable canvas height, preferring the viewBox.
func (d *Document) CanvasHeight() float64 {
	if d.HasViewBox {
		return d.ViewBox[3]
	}
	return d.Height
}
