package paginate

import (
	"regexp"
	"strings"
)

// DefaultWordsPerPage is the page budget used when none is given.
const DefaultWordsPerPage = 800

const paragraphSeparator = "\n\n"

// blankLine matches a paragraph boundary: a line break, optional spaces or
// tabs, and at least one more line break.
var blankLine = regexp.MustCompile(`\r?\n[ \t]*(?:\r?\n[ \t]*)+`)

// Paginate splits text into pages of roughly wordsPerPage words without
// breaking paragraphs. Paragraphs are joined with a blank line inside a page.
// A paragraph longer than the budget forms a page of its own. Whitespace-only
// paragraphs are dropped. When no page results, the input is returned as the
// only page. A budget of zero or less uses DefaultWordsPerPage.
func Paginate(text string, wordsPerPage int) []string {
	if wordsPerPage <= 0 {
		wordsPerPage = DefaultWordsPerPage
	}

	var (
		pages  []string
		buf    strings.Builder
		words  int
		filled bool
	)

	flush := func() {
		if page := strings.TrimSpace(buf.String()); page != "" {
			pages = append(pages, page)
		}
		buf.Reset()
		words = 0
		filled = false
	}

	for _, para := range blankLine.Split(text, -1) {
		n := len(strings.Fields(para))
		if n == 0 {
			continue
		}

		if filled && words+n > wordsPerPage {
			flush()
		}

		if filled {
			buf.WriteString(paragraphSeparator)
		}
		buf.WriteString(strings.TrimSpace(para))
		words += n
		filled = true
	}
	flush()

	if len(pages) == 0 {
		return []string{text}
	}
	return pages
}

// Count returns the number of pages Paginate would produce.
func Count(text string, wordsPerPage int) int {
	return len(Paginate(text, wordsPerPage))
}

// Page returns the page at index, clamped to the valid range, together with
// the total page count.
func Page(text string, wordsPerPage, index int) (string, int) {
	pages := Paginate(text, wordsPerPage)
	switch {
	case index < 0:
		index = 0
	case index >= len(pages):
		index = len(pages) - 1
	}
	return pages[index], len(pages)
}
