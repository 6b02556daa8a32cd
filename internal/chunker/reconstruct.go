package chunker

import (
	"math"
	"sort"
	"strings"

	"github.com/frederico-kluser/docchat/internal/core/domain"
)

// ReconstructPage rebuilds reading-order text from positioned fragments.
// Fragments are grouped into lines by rounded Y coordinate, lines are
// ordered top to bottom (descending Y, bottom-left origin), and fragments
// within a line left to right. Malformed fragments are skipped rather
// than failing the page.
func ReconstructPage(fragments []domain.PageFragment) string {
	lines := make(map[int][]domain.PageFragment)
	for _, frag := range fragments {
		if strings.TrimSpace(frag.Text) == "" {
			continue
		}
		key := int(math.Round(frag.Y))
		lines[key] = append(lines[key], frag)
	}
	if len(lines) == 0 {
		return ""
	}

	keys := make([]int, 0, len(lines))
	for k := range lines {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		frags := lines[k]
		sort.SliceStable(frags, func(i, j int) bool { return frags[i].X < frags[j].X })

		parts := make([]string, 0, len(frags))
		for _, f := range frags {
			parts = append(parts, f.Text)
		}
		line := strings.TrimSpace(strings.Join(parts, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
