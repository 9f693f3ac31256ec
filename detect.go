package main

import (
	"regexp"
	"sort"
	"strings"
)

// Match is one occurrence of the heading pattern on a page.
type Match struct {
	Page     int     `json:"page" yaml:"page"` // 0-based
	Start    int     `json:"start" yaml:"-"`   // byte offsets into the page text
	End      int     `json:"end" yaml:"-"`
	Text     string  `json:"text" yaml:"text"`
	Box      Rect    `json:"box" yaml:"box"`
	FontSize float64 `json:"font_size" yaml:"font_size"`
	Bold     bool    `json:"bold" yaml:"bold"`
}

var boldIndicators = []string{"bold", "black", "heavy"}

type detector struct {
	pattern         *regexp.Regexp
	headingFilter   bool
	minFontSize     float64
	headerThreshold float64
}

func newDetector(c *Config) (*detector, error) {
	re, err := c.compilePattern()
	if err != nil {
		return nil, err
	}
	return &detector{
		pattern:         re,
		headingFilter:   c.HeadingFilter,
		minFontSize:     c.MinFontSize,
		headerThreshold: c.HeaderThreshold,
	}, nil
}

// FindMatches returns every occurrence of the pattern on the page, headings or not.
func (d *detector) FindMatches(p *pageText) []Match {
	var matches []Match
	for _, loc := range d.pattern.FindAllStringIndex(p.Text, -1) {
		glyphs := p.glyphsIn(loc[0], loc[1])
		if len(glyphs) == 0 {
			continue
		}
		m := Match{
			Page:  p.Index,
			Start: loc[0],
			End:   loc[1],
			Text:  strings.Join(strings.Fields(p.Text[loc[0]:loc[1]]), " "),
			Box:   p.spanBox(loc[0], loc[1]),
		}
		for _, g := range glyphs {
			m.FontSize = max(m.FontSize, g.Size)
			m.Bold = m.Bold || isBoldFont(g.Font)
		}
		matches = append(matches, m)
	}
	return matches
}

// Headings returns the matches that look like section headings rather than
// references to one in running text, and the number of pattern matches
// before filtering.
func (d *detector) Headings(p *pageText) ([]Match, int) {
	all := d.FindMatches(p)
	hits := len(all)
	return d.filter(p, all), hits
}

// filter keeps the heading-formatted matches of all, reusing its storage.
func (d *detector) filter(p *pageText, all []Match) []Match {
	if !d.headingFilter {
		return all
	}

	headings := all[:0]
	for _, m := range all {
		if d.isHeading(p, m) {
			headings = append(headings, m)
		} else {
			logger.Printf("page %d: %q at %v is not formatted as a heading, ignoring\n", p.Index+1, m.Text, m.Box)
		}
	}
	return headings
}

func (d *detector) isHeading(p *pageText, m Match) bool {
	for _, g := range p.glyphsIn(m.Start, m.End) {
		if g.Size < d.minFontSize {
			continue
		}
		if isBoldFont(g.Font) || g.Size > d.minFontSize {
			return true
		}
	}

	// matches near the top of a page are headings whatever their font
	return m.Box.Y0 < p.Height()*d.headerThreshold
}

func isBoldFont(name string) bool {
	name = strings.ToLower(name)
	for _, s := range boldIndicators {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// sortMatches orders matches in reading order: page, then top, then left.
func sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Box.Y0 != b.Box.Y0 {
			return a.Box.Y0 < b.Box.Y0
		}
		return a.Box.X0 < b.Box.X0
	})
}
