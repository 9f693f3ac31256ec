package main

// EndKind records what stopped a section.
type EndKind string

const (
	EndNextMatch EndKind = "next-match"  // the next heading
	EndPageEnd   EndKind = "page-end"    // bottom of the page, or end of document when spanning
	EndContent   EndKind = "content-end" // trimmed below the last content
	EndSpanLimit EndKind = "span-limit"  // ran out of span_pages
)

// pageLayout is the part of a decoded page needed to place clips.
type pageLayout struct {
	Index   int      `json:"index"`
	Box     mediaBox `json:"box"`
	Content []Rect   `json:"content"`
}

func (p pageLayout) Width() float64  { return p.Box.Width() }
func (p pageLayout) Height() float64 { return p.Box.Height() }

// Clip is a region of one source page that becomes one output page.
type Clip struct {
	Page int  `json:"page" yaml:"page"` // 0-based
	Box  Rect `json:"box" yaml:"box"`
}

// Section is an extracted exercise: its heading and the clips that carry it.
type Section struct {
	Index   int     `yaml:"index"` // 1-based, in output order
	Heading Match   `yaml:"heading"`
	End     EndKind `yaml:"end"`
	Clips   []Clip  `yaml:"clips"`
}

func (s Section) FirstPage() int { return s.Clips[0].Page }
func (s Section) LastPage() int  { return s.Clips[len(s.Clips)-1].Page }

type boundsOptions struct {
	HeaderMargin    float64
	TrailingPadding float64
	MinClipHeight   float64
	TrimTrailing    bool
	SpanPages       int
}

func boundsOptionsFrom(c *Config) boundsOptions {
	return boundsOptions{
		HeaderMargin:    c.HeaderMargin,
		TrailingPadding: c.TrailingPadding,
		MinClipHeight:   c.MinClipHeight,
		TrimTrailing:    c.TrimTrailing,
		SpanPages:       max(c.SpanPages, 1),
	}
}

// computeSections places one section per heading. matches must be in reading
// order (see sortMatches) and pages indexed by page number. Headings that
// yield no usable clip are logged and counted in skipped.
func computeSections(pages []pageLayout, matches []Match, opt boundsOptions) (sections []Section, skipped int) {
	for i, m := range matches {
		if m.Page < 0 || m.Page >= len(pages) {
			logger.Printf("heading %q refers to page %d outside the document, skipping\n", m.Text, m.Page+1)
			skipped++
			continue
		}

		var next *Match
		if i+1 < len(matches) {
			next = &matches[i+1]
		}

		s := Section{Heading: m}
		for _, c := range sectionClips(pages, m, next, opt, &s.End) {
			if err := checkClip(pages[c.Page], c, opt.MinClipHeight); err != "" {
				logger.Printf("heading %q: dropping clip on page %d %v: %s\n", m.Text, c.Page+1, c.Box, err)
				continue
			}
			s.Clips = append(s.Clips, c)
		}

		if len(s.Clips) == 0 {
			logger.Printf("heading %q on page %d has no usable region, skipping\n", m.Text, m.Page+1)
			skipped++
			continue
		}

		s.Index = len(sections) + 1
		sections = append(sections, s)
	}

	return sections, skipped
}

func sectionClips(pages []pageLayout, m Match, next *Match, opt boundsOptions, end *EndKind) []Clip {
	page := pages[m.Page]
	top := max(0, m.Box.Y0-opt.HeaderMargin)

	if next != nil && next.Page == m.Page {
		*end = EndNextMatch
		return []Clip{{Page: m.Page, Box: Rect{0, top, page.Width(), boundaryAbove(*next, m.Box.Y1, opt)}}}
	}

	if opt.SpanPages <= 1 {
		bottom, kind := trailingBottom(page, m.Box.Y1, opt)
		*end = kind
		return []Clip{{Page: m.Page, Box: Rect{0, top, page.Width(), bottom}}}
	}

	clips := []Clip{{Page: m.Page, Box: Rect{0, top, page.Width(), page.Height()}}}
	*end = EndSpanLimit
	last := min(len(pages), m.Page+opt.SpanPages)
	for q := m.Page + 1; q < last; q++ {
		pq := pages[q]
		if next != nil && next.Page == q {
			*end = EndNextMatch
			clips = append(clips, Clip{Page: q, Box: Rect{0, 0, pq.Width(), boundaryAbove(*next, 0, opt)}})
			return clips
		}
		clips = append(clips, Clip{Page: q, Box: Rect{0, 0, pq.Width(), pq.Height()}})
	}

	if last == len(pages) {
		// the document ended before the span did
		n := len(clips) - 1
		bottom, kind := trailingBottom(pages[clips[n].Page], clips[n].Box.Y0, opt)
		clips[n].Box.Y1 = bottom
		*end = kind
	}
	return clips
}

// boundaryAbove is where a section stops when the next heading follows it:
// header_margin above that heading, or the heading itself when the margin
// would reach back above floor.
func boundaryAbove(next Match, floor float64, opt boundsOptions) float64 {
	b := next.Box.Y0 - opt.HeaderMargin
	if b <= floor {
		b = next.Box.Y0
	}
	return b
}

// trailingBottom is the bottom of a section that runs to the end of its page.
func trailingBottom(page pageLayout, below float64, opt boundsOptions) (float64, EndKind) {
	if !opt.TrimTrailing {
		return page.Height(), EndPageEnd
	}

	lowest := below
	for _, c := range page.Content {
		if c.Y0 > below {
			lowest = max(lowest, c.Y1)
		}
	}
	if lowest <= below {
		return page.Height(), EndPageEnd
	}
	return min(page.Height(), lowest+opt.TrailingPadding), EndContent
}

// checkClip returns why a clip cannot be used, or "".
func checkClip(page pageLayout, c Clip, minHeight float64) string {
	switch {
	case c.Box.Y0 < 0:
		return "starts above the page"
	case c.Box.Y1 > page.Height():
		return "ends below the page"
	case c.Box.Empty():
		return "empty region"
	case c.Box.Height() < minHeight:
		return "region too small"
	}
	return ""
}
