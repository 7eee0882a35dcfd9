package core

// sniff.go implements heuristic delimiter detection from a bounded
// sample of file content.
//
// The sniffer only runs when the caller left the default comma
// delimiter, mirroring the behavior of the interactive importer this
// package replaces. Detection is intentionally conservative: a
// candidate wins only on evidence, and an inconclusive sample falls
// back to comma.

import "strings"

// sniffSampleSize is the number of decoded bytes examined.
const sniffSampleSize = 1024

// sniffMaxLines bounds how many sample lines are scored.
const sniffMaxLines = 10

// sniffCandidates are the delimiters considered, in preference order
// for ties.
var sniffCandidates = []rune{',', '\t', ';', '|'}

// sniffSample clips the decoded content to the sniffing window.
func sniffSample(data []byte) []byte {
	if len(data) > sniffSampleSize {
		return data[:sniffSampleSize]
	}
	return data
}

// sniffDelimiter picks the most plausible delimiter for the sample.
//
// Scoring: for each candidate, count occurrences per line across the
// first few non-empty lines. A candidate that appears the same
// non-zero number of times on every line is "consistent" and beats
// any inconsistent candidate. Among consistent candidates the higher
// per-line count wins; among inconsistent ones the higher total
// count wins. No occurrences at all means comma.
func sniffDelimiter(sample []byte) rune {
	lines := sampleLines(string(sample))
	if len(lines) == 0 {
		return ','
	}

	best := ','
	bestScore := -1
	bestConsistent := false

	for _, cand := range sniffCandidates {
		total := 0
		first := strings.Count(lines[0], string(cand))
		consistent := first > 0

		for _, line := range lines {
			n := strings.Count(line, string(cand))
			total += n
			if n != first {
				consistent = false
			}
		}
		if total == 0 {
			continue
		}

		score := total
		switch {
		case consistent && !bestConsistent:
			best, bestScore, bestConsistent = cand, first, true
		case consistent && bestConsistent && first > bestScore:
			best, bestScore = cand, first
		case !consistent && !bestConsistent && score > bestScore:
			best, bestScore = cand, score
		}
	}

	return best
}

// sampleLines splits the sample into complete, non-empty lines. The
// last line is dropped when the sample was clipped mid-line, so a
// truncated record cannot skew the per-line counts.
func sampleLines(sample string) []string {
	clipped := len(sample) == sniffSampleSize && !strings.HasSuffix(sample, "\n")

	raw := strings.Split(strings.ReplaceAll(sample, "\r\n", "\n"), "\n")
	if clipped && len(raw) > 1 {
		raw = raw[:len(raw)-1]
	}

	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, l)
		if len(lines) == sniffMaxLines {
			break
		}
	}
	return lines
}
