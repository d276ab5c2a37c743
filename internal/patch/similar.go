package patch

import "github.com/kvit-s/tokpatch/internal/document"

// levenshteinDistance calculates the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	d := make([][]int, len(s1)+1)
	for i := range d {
		d[i] = make([]int, len(s2)+1)
		d[i][0] = i
	}
	for j := range d[0] {
		d[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			d[i][j] = min(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[len(s1)][len(s2)]
}

// similarityRatio is 1 - distance/max(len), in [0, 1].
func similarityRatio(s1, s2 string) float64 {
	if len(s1) == 0 && len(s2) == 0 {
		return 1.0
	}
	distance := levenshteinDistance(s1, s2)
	return 1.0 - float64(distance)/float64(max(len(s1), len(s2)))
}

// mostSimilarLine finds the document line closest to the first non-empty
// search token. It feeds the hint attached to a failed hunk's outcome so
// the patch author can see what the search block nearly matched. Returns a
// 1-based line number, or 0 when there is nothing to compare.
func mostSimilarLine(doc *document.Document, tokens []string) (lineNum int, text string, ratio float64) {
	var probe string
	for _, t := range tokens {
		if collapseWhitespace(t) != "" {
			probe = collapseWhitespace(t)
			break
		}
	}
	if probe == "" {
		return 0, "", 0
	}

	best := 0.0
	for i := 0; i < doc.Len(); i++ {
		content := doc.LineAt(i).Content
		r := similarityRatio(collapseWhitespace(content), probe)
		if r > best {
			best = r
			lineNum = i + 1
			text = content
		}
	}
	return lineNum, text, best
}
