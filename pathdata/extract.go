// Package pathdata tokenizes SVG path "d" attribute strings into ordered
// point sequences. It supports the absolute command subset M/L/H/V/C/S/Q/T/A;
// relative (lowercase) commands are a known limitation and their parameters
// are skipped rather than misread as absolute coordinates.
//
// Curve commands emit every embedded coordinate pair, control points
// included, so bounding boxes estimated from the output err on the wide
// side. Malformed or truncated input yields a best-effort partial point
// list, never an error.
package pathdata

import (
	"strconv"
	"strings"

	"github.com/inkprep/artcore/api"
)

// paramCounts maps each supported absolute command to the number of
// parameters it consumes per repetition.
var paramCounts = map[byte]int{
	'M': 2,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
	'Z': 0,
}

// ExtractCoordinates walks a path command string left to right and emits
// the coordinate pairs it encounters. The current point carries across
// commands so H and V can produce full points.
func ExtractCoordinates(d string) []api.Point2D {
	var points []api.Point2D
	var cur api.Point2D

	toks := tokenize(d)
	i := 0
	for i < len(toks) {
		tok := toks[i]
		if !tok.isCommand {
			// Stray number with no preceding command; skip it.
			i++
			continue
		}
		cmd := tok.cmd
		i++

		upper := cmd
		if upper >= 'a' && upper <= 'z' {
			upper -= 'a' - 'A'
		}
		count, known := paramCounts[upper]
		if !known {
			continue
		}
		if upper == 'Z' {
			continue
		}

		relative := cmd >= 'a' && cmd <= 'z'

		// Commands repeat implicitly while numbers remain.
		for i < len(toks) && !toks[i].isCommand {
			args, next := takeNumbers(toks, i, count)
			i = next
			if len(args) < count {
				// Truncated parameter list; keep whatever full
				// pairs we already emitted and stop this command.
				break
			}
			if relative {
				continue
			}
			pts, end := commandPoints(upper, args, cur)
			points = append(points, pts...)
			cur = end
		}
	}
	return points
}

// commandPoints converts one command repetition's parameters into emitted
// points plus the new current point.
func commandPoints(cmd byte, args []float64, cur api.Point2D) ([]api.Point2D, api.Point2D) {
	switch cmd {
	case 'M', 'L', 'T':
		p := api.Point2D{X: args[0], Y: args[1]}
		return []api.Point2D{p}, p
	case 'H':
		p := api.Point2D{X: args[0], Y: cur.Y}
		return []api.Point2D{p}, p
	case 'V':
		p := api.Point2D{X: cur.X, Y: args[0]}
		return []api.Point2D{p}, p
	case 'C':
		pts := []api.Point2D{
			{X: args[0], Y: args[1]},
			{X: args[2], Y: args[3]},
			{X: args[4], Y: args[5]},
		}
		return pts, pts[2]
	case 'S', 'Q':
		pts := []api.Point2D{
			{X: args[0], Y: args[1]},
			{X: args[2], Y: args[3]},
		}
		return pts, pts[1]
	case 'A':
		// rx/ry/rotation/flags are not coordinates; only the endpoint is.
		p := api.Point2D{X: args[5], Y: args[6]}
		return []api.Point2D{p}, p
	}
	return nil, cur
}

type token struct {
	isCommand bool
	cmd       byte
	value     float64
}

// takeNumbers consumes up to n numeric tokens starting at index i.
func takeNumbers(toks []token, i, n int) ([]float64, int) {
	args := make([]float64, 0, n)
	for len(args) < n && i < len(toks) && !toks[i].isCommand {
		args = append(args, toks[i].value)
		i++
	}
	return args, i
}

func isCommandByte(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// tokenize splits path data into command letters and numbers. Numbers may
// be separated by whitespace, commas, or a bare sign, and may carry
// exponents; anything unparsable is dropped so extraction can continue.
func tokenize(d string) []token {
	var toks []token
	i := 0
	for i < len(d) {
		b := d[i]
		switch {
		case b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == ',':
			i++
		case isCommandByte(b):
			toks = append(toks, token{isCommand: true, cmd: b})
			i++
		case b == '-' || b == '+' || b == '.' || (b >= '0' && b <= '9'):
			j := i + 1
			seenDot := b == '.'
			for j < len(d) {
				c := d[j]
				if c >= '0' && c <= '9' {
					j++
					continue
				}
				if c == '.' && !seenDot {
					seenDot = true
					j++
					continue
				}
				if c == 'e' || c == 'E' {
					// Exponent may carry its own sign.
					if j+1 < len(d) && (d[j+1] == '-' || d[j+1] == '+') {
						j += 2
					} else {
						j++
					}
					continue
				}
				break
			}
			if v, err := strconv.ParseFloat(strings.TrimPrefix(d[i:j], "+"), 64); err == nil {
				toks = append(toks, token{value: v})
			}
			i = j
		default:
			i++
		}
	}
	return toks
}
