package typecheck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ImageCandidate is one entry of a srcset attribute.
type ImageCandidate struct {
	URL     string
	Width   int     // 0 when absent
	Density float64 // 0 when absent
	Height  int     // 0 when absent
}

var (
	reWidthDescriptor   = regexp.MustCompile(`^[0-9]+w$`)
	reDensityDescriptor = regexp.MustCompile(`^(?:[0-9]+(?:\.[0-9]+)?|\.[0-9]+)(?:[eE][+-]?[0-9]+)?x$`)
	reHeightDescriptor  = regexp.MustCompile(`^[0-9]+h$`)
)

var errSrcSet = errors.New("invalid srcset")

// ParseSrcSet splits a srcset value into image candidates following the
// HTML candidate-string grammar, rejecting the inputs that grammar calls
// parse errors.
func ParseSrcSet(v string) ([]ImageCandidate, error) {
	var out []ImageCandidate
	pos := 0
	for {
		commas := 0
		for pos < len(v) && (isCSSSpace(v[pos]) || v[pos] == ',') {
			if v[pos] == ',' {
				commas++
			}
			pos++
		}
		if pos >= len(v) {
			if commas > 0 && len(out) > 0 {
				return nil, fmt.Errorf("%w: trailing comma", errSrcSet)
			}
			break
		}
		if commas > 0 {
			return nil, fmt.Errorf("%w: empty candidate", errSrcSet)
		}

		start := pos
		for pos < len(v) && !isCSSSpace(v[pos]) {
			pos++
		}
		url := v[start:pos]
		var descriptors []string
		if strings.HasSuffix(url, ",") {
			trimmed := strings.TrimRight(url, ",")
			if len(url)-len(trimmed) > 1 {
				return nil, fmt.Errorf("%w: empty candidate", errSrcSet)
			}
			url = trimmed
		} else {
			descriptors, pos = collectDescriptors(v, pos)
		}
		if url == "" || !isURL(url) {
			return nil, fmt.Errorf("%w: bad URL %q", errSrcSet, url)
		}
		c, err := parseDescriptors(url, descriptors)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no candidates", errSrcSet)
	}
	if err := validateCandidates(out); err != nil {
		return nil, err
	}
	return out, nil
}

// collectDescriptors reads descriptor tokens up to the next comma outside
// parentheses and returns them with the position after that comma.
func collectDescriptors(v string, pos int) ([]string, int) {
	var (
		out     []string
		current strings.Builder
		inParen bool
	)
	flush := func() {
		if current.Len() > 0 {
			out = append(out, current.String())
			current.Reset()
		}
	}
	for ; pos < len(v); pos++ {
		c := v[pos]
		switch {
		case inParen:
			if c == ')' {
				inParen = false
			}
			current.WriteByte(c)
		case isCSSSpace(c):
			flush()
		case c == ',':
			flush()
			return out, pos + 1
		case c == '(':
			inParen = true
			current.WriteByte(c)
		default:
			current.WriteByte(c)
		}
	}
	flush()
	return out, pos
}

func parseDescriptors(url string, descriptors []string) (ImageCandidate, error) {
	c := ImageCandidate{URL: url}
	for _, d := range descriptors {
		d = strings.ToLower(d)
		switch {
		case reWidthDescriptor.MatchString(d) && c.Width == 0 && c.Density == 0:
			n, err := strconv.Atoi(strings.TrimSuffix(d, "w"))
			if err != nil || n <= 0 {
				return c, fmt.Errorf("%w: bad width %q", errSrcSet, d)
			}
			c.Width = n
		case reDensityDescriptor.MatchString(d) && c.Width == 0 && c.Density == 0 && c.Height == 0:
			f, err := strconv.ParseFloat(strings.TrimSuffix(d, "x"), 64)
			if err != nil || f <= 0 {
				return c, fmt.Errorf("%w: bad density %q", errSrcSet, d)
			}
			c.Density = f
		case reHeightDescriptor.MatchString(d) && c.Height == 0 && c.Density == 0:
			n, err := strconv.Atoi(strings.TrimSuffix(d, "h"))
			if err != nil || n <= 0 {
				return c, fmt.Errorf("%w: bad height %q", errSrcSet, d)
			}
			c.Height = n
		default:
			return c, fmt.Errorf("%w: unexpected descriptor %q for %s", errSrcSet, d, url)
		}
	}
	if c.Height != 0 && c.Width == 0 {
		return c, fmt.Errorf("%w: height descriptor without width", errSrcSet)
	}
	return c, nil
}

// validateCandidates applies the rules across candidates: width
// descriptors are all-or-nothing, and no two candidates share a width or a
// density.
func validateCandidates(cs []ImageCandidate) error {
	widths := map[int]bool{}
	densities := map[float64]bool{}
	withWidth := 0
	for _, c := range cs {
		if c.Width > 0 {
			withWidth++
			if widths[c.Width] {
				return fmt.Errorf("%w: duplicate width %dw", errSrcSet, c.Width)
			}
			widths[c.Width] = true
			continue
		}
		d := c.Density
		if d == 0 {
			d = 1
		}
		if densities[d] {
			return fmt.Errorf("%w: duplicate density %gx", errSrcSet, d)
		}
		densities[d] = true
	}
	if withWidth > 0 && withWidth != len(cs) {
		return fmt.Errorf("%w: width descriptors must be on every candidate", errSrcSet)
	}
	return nil
}

// IsSrcSet reports whether v is a valid srcset value.
func IsSrcSet(v string) bool {
	_, err := ParseSrcSet(v)
	return err == nil
}
