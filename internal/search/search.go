package search

import (
	"strings"

	"github.com/nikbrunner/lp/internal/model"
	"github.com/sahilm/fuzzy"
)

// Result represents a fuzzy search match. Link points at the original
// entry of the backing page, never a copy, so writes through a filtered
// view mutate the same objects the full page holds.
type Result struct {
	Link           *model.Link
	MatchedIndexes []int
	Score          int
}

// Index is a fuzzy-match index over one loaded page of links.
// It is discarded and rebuilt whenever the page is replaced.
type Index struct {
	links []*model.Link
	texts linkTexts
}

// linkTexts implements fuzzy.Source over the indexed fields of each link.
type linkTexts []string

func (lt linkTexts) String(i int) string { return lt[i] }
func (lt linkTexts) Len() int            { return len(lt) }

// NewIndex builds an index over the given page.
func NewIndex(page []*model.Link) *Index {
	texts := make(linkTexts, len(page))
	for i, l := range page {
		texts[i] = indexText(l)
	}
	return &Index{links: page, texts: texts}
}

// indexText joins the searchable fields of a link.
func indexText(l *model.Link) string {
	return strings.Join([]string{l.Name, l.ID, l.Description, l.URL}, " ")
}

// Search matches the keyword against the indexed page.
// An empty keyword returns the full page in its existing order.
// A non-empty keyword returns matches ranked by score (best first).
func (idx *Index) Search(keyword string) []Result {
	if keyword == "" {
		results := make([]Result, len(idx.links))
		for i, l := range idx.links {
			results[i] = Result{Link: l}
		}
		return results
	}

	matches := fuzzy.FindFrom(keyword, idx.texts)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Link:           idx.links[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}

// Links returns the raw result links in ranked order.
func Links(results []Result) []*model.Link {
	links := make([]*model.Link, len(results))
	for i, r := range results {
		links[i] = r.Link
	}
	return links
}
