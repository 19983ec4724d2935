package dictionary

// EditDistance is the Damerau-Levenshtein distance between a and b with
// insertions and deletions costing 1, substitutions 2 and adjacent
// transpositions 1.
func EditDistance(a, b string) int {
	target := []rune(a)
	source := []rune(b)
	n, m := len(target), len(source)

	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		d[i][0] = i
	}
	for j := 1; j <= m; j++ {
		d[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			sub := 2
			if target[i-1] == source[j-1] {
				sub = 0
			}
			d[i][j] = min(d[i-1][j]+1, d[i-1][j-1]+sub, d[i][j-1]+1)
			if i > 1 && j > 1 && target[i-1] == source[j-2] && target[i-2] == source[j-1] {
				d[i][j] = min(d[i][j], d[i-2][j-2]+1)
			}
		}
	}
	return d[n][m]
}

// BestMatch returns the known term of category closest to term.
func (s *Store) BestMatch(category, term string) (string, int, bool) {
	best, bestDist := "", -1
	for _, candidate := range s.Terms(category) {
		dist := EditDistance(candidate, term)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best, bestDist, bestDist >= 0
}
