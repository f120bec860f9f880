package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

func (r *Renderer) cachedRuneWidth(ru rune) int {
	if w, ok := r.widths[ru]; ok {
		return w
	}
	w := max(runewidth.RuneWidth(ru), 0)
	if r.widths == nil {
		r.widths = make(map[rune]int)
	}
	r.widths[ru] = w
	return w
}

func (r *Renderer) measureTextWidth(text string) int {
	width := 0
	for _, ru := range text {
		width += r.cachedRuneWidth(ru)
	}
	return width
}

const ellipsis = "…"

// fitBudget reports how many columns of text fit beside the ellipsis, or
// ok=false when text needs no cut. A budget of zero means only the ellipsis fits.
func (r *Renderer) fitBudget(text string, maxWidth int) (budget int, ok bool) {
	if r.measureTextWidth(text) <= maxWidth {
		return 0, false
	}
	return max(maxWidth-max(r.cachedRuneWidth('…'), 1), 0), true
}

// truncateTextToWidth keeps the head of text and marks the cut with an ellipsis.
func (r *Renderer) truncateTextToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	budget, cut := r.fitBudget(text, maxWidth)
	if !cut {
		return text
	}

	var b strings.Builder
	used := 0
	for _, ru := range text {
		w := r.cachedRuneWidth(ru)
		if used+w > budget {
			break
		}
		b.WriteRune(ru)
		used += w
	}
	b.WriteString(ellipsis)
	return b.String()
}

// truncateLeftToWidth keeps the tail of text, which is the useful end of a path.
func (r *Renderer) truncateLeftToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	budget, cut := r.fitBudget(text, maxWidth)
	if !cut {
		return text
	}

	runes := []rune(text)
	start, used := len(runes), 0
	for start > 0 {
		w := r.cachedRuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:])
}

func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	for _, ru := range text {
		if x-startX >= maxWidth {
			break
		}
		x = r.drawStyledRune(x, y, startX+maxWidth, ru, style)
	}
	return x
}

func (r *Renderer) drawStyledRune(x, y, maxX int, ru rune, style tcell.Style) int {
	if x >= maxX {
		return x
	}

	width := r.cachedRuneWidth(ru)
	if width <= 0 {
		width = 1
	}

	r.screen.SetContent(x, y, ru, nil, style)
	for w := 1; w < width && x+w < maxX; w++ {
		r.screen.SetContent(x+w, y, ' ', nil, style)
	}
	return x + width
}

func (r *Renderer) fillLine(x, y, maxX int, style tcell.Style) {
	for ; x < maxX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawHighlightedText draws text with the rune ranges in spans in
// highlightStyle. Spans are sorted and non-overlapping.
func (r *Renderer) drawHighlightedText(startX, y, maxX int, text string, spans []highlightSpan, baseStyle, highlightStyle tcell.Style) int {
	x := startX
	spanIdx := 0
	idx := 0
	for _, ru := range text {
		if x >= maxX {
			break
		}
		for spanIdx < len(spans) && idx >= spans[spanIdx].end {
			spanIdx++
		}
		style := baseStyle
		if spanIdx < len(spans) && idx >= spans[spanIdx].start {
			style = highlightStyle
		}
		x = r.drawStyledRune(x, y, maxX, ru, style)
		idx++
	}
	return x
}
