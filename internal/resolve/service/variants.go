package service

import (
	"sort"
	"strings"

	"league-recon/internal/resolve/model"
)

// Variants expands a raw name into its accepted alternate spellings:
// the canonical form itself, the first+last form when middle tokens exist,
// and one-token nickname substitutions from the table. Sorted for
// deterministic output; always contains Normalize(raw).
func Variants(raw string, nicknames model.NicknameTable) []string {
	set := variantSet(raw, nicknames)
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func variantSet(raw string, nicknames model.NicknameTable) map[string]struct{} {
	norm := Normalize(raw)
	set := map[string]struct{}{norm: {}}

	toks := strings.Fields(norm)

	// first+last before any substitution, so the two passes don't compound
	if len(toks) > 2 {
		set[toks[0]+" "+toks[len(toks)-1]] = struct{}{}
	}

	// one substitution per variant, no combinatorial expansion
	for i, t := range toks {
		alt, ok := nicknames[t]
		if !ok {
			continue
		}
		sub := make([]string, len(toks))
		copy(sub, toks)
		sub[i] = alt
		set[strings.Join(sub, " ")] = struct{}{}
	}

	return set
}
