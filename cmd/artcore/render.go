package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/inkprep/artcore"
	"github.com/inkprep/artcore/api"
	"github.com/inkprep/artcore/dimension"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Faint(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

// outputProfile downgrades to plain ASCII when stdout is not a terminal so
// piped output stays clean.
func outputProfile() termenv.Profile {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// swatch renders a colored block for a hex value, or nothing on dumb
// outputs.
func swatch(hex string) string {
	profile := outputProfile()
	if profile == termenv.Ascii || !strings.HasPrefix(hex, "#") {
		return ""
	}
	return termenv.String("██").Foreground(profile.Color(hex)).String() + " "
}

func renderAnalysis(label string, res *artcore.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", headerStyle.Render(label))
	fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("shape:"), res.Shape)
	if res.Bounds != nil {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("bounds:"), res.Bounds)
	}
	d := res.Dimensions
	fmt.Fprintf(&b, "  %s %.1f x %.1f px | %.1f x %.1f mm | %.1f x %.1f pt (%s, %s)\n",
		labelStyle.Render("size:"),
		d.WidthPx, d.HeightPx, d.WidthMm, d.HeightMm, d.WidthPt, d.HeightPt,
		d.Accuracy, d.Source)

	if len(res.Colors) > 0 {
		fmt.Fprintf(&b, "  %s\n", labelStyle.Render("colors:"))
		for _, c := range res.Colors {
			b.WriteString("    " + swatch(c.Canonical) + c.Canonical)
			if c.CMYK != nil {
				fmt.Fprintf(&b, "  %s", c.CMYK)
			}
			if c.PantoneMatch != "" {
				fmt.Fprintf(&b, "  %s (d=%.1f)", c.PantoneMatch, c.PantoneDistance)
			}
			fmt.Fprintf(&b, "  %s x%d\n", c.Attribute, c.Occurrences)
		}
	}
	if len(res.PantoneHints) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("pantone hints:"), strings.Join(res.PantoneHints, ", "))
	}
	if len(res.Fonts) > 0 {
		fmt.Fprintf(&b, "  %s\n", labelStyle.Render("fonts:"))
		for _, f := range res.Fonts {
			fmt.Fprintf(&b, "    %s %gpx %s\n", f.FontFamily, f.FontSize, f.FontWeight)
		}
	}
	if res.NeedsOutlining {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render("live text present: convert fonts to outlines before print"))
	}
	if res.Truncated {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render("document truncated at element cap, results are partial"))
	}
	return b.String()
}

func renderBoundsBox(label string, box api.BoundingBox) string {
	return fmt.Sprintf("%s\n  %s %s\n  %s %.1f x %.1f mm\n",
		headerStyle.Render(label),
		labelStyle.Render("bounds:"), box.String(),
		labelStyle.Render("size:"), dimension.PxToMm(box.Width), dimension.PxToMm(box.Height))
}

func renderCorrected(label string, cd api.CorrectedDimensions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(label))
	fmt.Fprintf(&b, "  %s %.1f x %.1f mm (%.1f x %.1f pt)\n",
		labelStyle.Render("export size:"), cd.WidthMm, cd.HeightMm, cd.WidthPts, cd.HeightPts)
	if cd.AppliedContentRatio {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render("oversized artwork: content ratio applied"))
	}
	return b.String()
}
