package service

import (
	"regexp"
	"strings"
)

// Hyphens become spaces so double-barrelled names ("Karl-Anthony") keep their
// token boundary; apostrophes and periods are dropped outright so "O.G." and
// "OG" collapse to the same token.
var (
	reHyphen = regexp.MustCompile(`[-‐–]`)
	rePunct  = regexp.MustCompile(`[.'’]`)
	reSuffix = regexp.MustCompile(`\s(junior|senior|jr|sr|iii|ii|iv)$`)
)

// Standalone particles that vary between sources ("Juan de la Cruz" vs
// "Juan Cruz"). Whole tokens only.
var particles = map[string]struct{}{
	"de": {}, "von": {}, "van": {}, "el": {}, "la": {}, "le": {}, "del": {}, "della": {},
}

// Normalize canonicalizes a raw display name: lowercase, punctuation
// stripped, whitespace collapsed, trailing generational suffix removed, bare
// "iii" and nobiliary particles dropped as whole tokens. Total and
// deterministic; any input, including garbage, yields a (possibly empty)
// string. Callers must treat an empty result as "no signal".
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = reHyphen.ReplaceAllString(s, " ")
	s = rePunct.ReplaceAllString(s, "")
	s = collapseSpaces(s)
	// Trailing suffix only; "jr" mid-string stays ("Jr Smith" is a name).
	// The suffix strip and the token filter run together until stable:
	// dropping a particle can expose a new trailing suffix, and a single
	// ordered pass would leave it behind on the first call.
	for {
		next := reSuffix.ReplaceAllString(s, "")
		next = filterTokens(next)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// filterTokens drops bare "iii" (some sources carry the numeral mid-string)
// and nobiliary particles, as whole tokens only.
func filterTokens(s string) string {
	toks := strings.Fields(s)
	kept := toks[:0]
	for _, t := range toks {
		if t == "iii" {
			continue
		}
		if _, ok := particles[t]; ok {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, " ")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
