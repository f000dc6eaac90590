package color

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/inkprep/artcore/api"
	"github.com/inkprep/artcore/scan"
)

// Catalog is the full color and font inventory of one vector document.
type Catalog struct {
	Colors []api.ColorEntry `json:"colors" yaml:"colors"`
	Fonts  []api.FontUsage  `json:"fonts" yaml:"fonts"`

	// HasLiveText is true when text or glyph references are still live;
	// GlyphsOutlined when glyph definitions exist with no references.
	// NeedsOutlining drives the "convert text to outlines" warning shown
	// to the uploader.
	HasLiveText    bool `json:"has_live_text" yaml:"has_live_text"`
	GlyphsOutlined bool `json:"glyphs_outlined" yaml:"glyphs_outlined"`
	NeedsOutlining bool `json:"needs_outlining" yaml:"needs_outlining"`

	// PantoneHints are spot-color names declared in document metadata.
	PantoneHints []string `json:"pantone_hints,omitempty" yaml:"pantone_hints,omitempty"`
}

// pantoneHintRe matches embedded spot-color declarations like
// "PANTONE 186 C" or "pms 300".
var pantoneHintRe = regexp.MustCompile(`(?i)\b(?:pantone|pms)\s*#?\s*(\d{2,4})\s*([cum])?\b`)

// CatalogColors scans vector markup for every distinct fill and stroke
// color plus live-text usage. Entries are deduplicated by the (canonical,
// attribute, cmyk) triple, so the same displayed color with different ink
// values stays distinct. The original literal is preserved verbatim for
// later exact find/replace recoloring.
func CatalogColors(markup string) (*Catalog, error) {
	doc, err := scan.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("catalog scan: %w", err)
	}
	return CatalogDocument(doc), nil
}

// CatalogDocument builds a catalog from an already scanned document.
func CatalogDocument(doc *scan.Document) *Catalog {
	cat := &Catalog{
		HasLiveText:    doc.HasLiveText(),
		GlyphsOutlined: doc.GlyphsOutlined(),
	}
	cat.NeedsOutlining = cat.HasLiveText

	type slot struct {
		index int
	}
	seen := map[string]slot{}

	add := func(el scan.Element, attr api.ColorAttribute, literal string) {
		if IsBackground(literal) {
			return
		}
		parsed := ParseLiteral(literal)

		canonical := parsed.Canonical
		var cmyk *api.CMYK
		if parsed.Valid {
			if parsed.CMYK != nil {
				c := *parsed.CMYK
				cmyk = &c
			} else {
				c := RGBToCMYK(parsed.RGB.R, parsed.RGB.G, parsed.RGB.B)
				cmyk = &c
			}
		} else {
			// Unrecognized literal: keep the original representation and
			// leave CMYK unset so callers do not overwrite it.
			canonical = literal
		}

		key := canonical + "|" + string(attr)
		if cmyk != nil {
			key += "|" + cmyk.String()
		}
		if s, ok := seen[key]; ok {
			cat.Colors[s.index].Occurrences++
			return
		}

		entry := api.ColorEntry{
			ID:          fmt.Sprintf("c%d", len(cat.Colors)+1),
			Canonical:   canonical,
			Original:    literal,
			CMYK:        cmyk,
			ElementKind: el.Tag,
			Attribute:   attr,
			Occurrences: 1,
		}
		if parsed.Valid {
			if match := nearestPantoneRGB(parsed.RGB); match != nil {
				entry.PantoneMatch = match.Name
				entry.PantoneDistance = match.Distance
			}
		}
		seen[key] = slot{index: len(cat.Colors)}
		cat.Colors = append(cat.Colors, entry)
	}

	for _, el := range doc.Elements {
		if el.FillLiteral != "" {
			add(el, api.AttributeFill, el.FillLiteral)
		}
		if el.StrokeLiteral != "" {
			add(el, api.AttributeStroke, el.StrokeLiteral)
		}
		if (el.Tag == "text" || el.Tag == "tspan") && strings.TrimSpace(el.Text) != "" {
			cat.Fonts = append(cat.Fonts, api.FontUsage{
				FontFamily:  el.FontFamily,
				FontSize:    el.FontSize,
				FontWeight:  el.FontWeight,
				TextContent: strings.TrimSpace(el.Text),
				ElementKind: el.Tag,
			})
		}
	}

	cat.PantoneHints = extractPantoneHints(doc.Metadata)
	applyPantoneHints(cat)

	if doc.Truncated {
		logger.Warnf("color catalog built from truncated document; counts may be low")
	}
	return cat
}

// extractPantoneHints pulls explicit spot-color names out of metadata text.
func extractPantoneHints(metadata string) []string {
	if metadata == "" {
		return nil
	}
	var hints []string
	for _, m := range pantoneHintRe.FindAllStringSubmatch(metadata, -1) {
		name := "PANTONE " + m[1]
		if m[2] != "" {
			name += " " + strings.ToUpper(m[2])
		}
		if !lo.Contains(hints, name) {
			hints = append(hints, name)
		}
	}
	return hints
}

// applyPantoneHints overrides nearest-match results with metadata-declared
// names. An explicit hint always beats the RGB approximation; hints are
// assigned to entries in descending occurrence order.
func applyPantoneHints(cat *Catalog) {
	if len(cat.PantoneHints) == 0 || len(cat.Colors) == 0 {
		return
	}
	order := make([]int, len(cat.Colors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cat.Colors[order[a]].Occurrences > cat.Colors[order[b]].Occurrences
	})
	for i, hint := range cat.PantoneHints {
		if i >= len(order) {
			break
		}
		entry := &cat.Colors[order[i]]
		entry.PantoneMatch = hint
		entry.PantoneDistance = 0
	}
}
