package scraper

import (
	"regexp"
	"strings"
	"unicode"
)

const defaultKeyword = "article"

var (
	tokenPattern   = regexp.MustCompile(`[\p{L}\p{N}_]+|[^\p{L}\p{N}_\s]+`)
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// NLTK's English list; contraction fragments ("s", "t", "don") are
// separate tokens after splitting on apostrophes.
var stopWords = toSet(`i me my myself we our ours ourselves you your yours yourself yourselves he
him his himself she her hers herself it its itself they them their theirs themselves what which
who whom this that these those am is are was were be been being have has had having do does did
doing a an the and but if or because as until while of at by for with about against between into
through during before after above below to from up down in out on off over under again further
then once here there when where why how all any both each few more most other some such no nor
not only own same so than too very s t can will just don should now d ll m o re ve y ain aren
couldn didn doesn hadn hasn haven isn ma mightn mustn needn shan shouldn wasn weren won wouldn`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// Keyword picks the highest-ranked key phrase of title and squeezes it into
// a filename-safe word. Phrases are runs of non-stop words; each word scores
// degree/frequency and a phrase scores the sum of its words. Ties go to the
// lexicographically larger phrase.
func Keyword(title string) string {
	phrases := candidatePhrases(title)
	if len(phrases) == 0 {
		return defaultKeyword
	}

	freq := make(map[string]int)
	degree := make(map[string]int)
	for _, p := range phrases {
		for _, w := range p {
			freq[w]++
			degree[w] += len(p)
		}
	}

	best, bestScore := "", -1.0
	for _, p := range phrases {
		score := 0.0
		for _, w := range p {
			score += float64(degree[w]) / float64(freq[w])
		}
		phrase := strings.Join(p, " ")
		if score > bestScore || (score == bestScore && phrase > best) {
			best, bestScore = phrase, score
		}
	}

	keyword := nonWordPattern.ReplaceAllString(best, "")
	if keyword == "" {
		return defaultKeyword
	}
	return keyword
}

func candidatePhrases(text string) [][]string {
	var phrases [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, current)
			current = nil
		}
	}

	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		r := []rune(tok)[0]
		isWord := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if !isWord || stopWords[tok] {
			flush()
			continue
		}
		current = append(current, tok)
	}
	flush()
	return phrases
}
