package model

// PlayerRecord is one player row as supplied by a collaborator (spreadsheet
// export, platform API payload, or the league datastore). The engine never
// mutates a record, it only produces decisions about pairs of them.
type PlayerRecord struct {
	SourceID    string            `json:"sourceId"`              // stable id within the origin system
	DisplayName string            `json:"displayName"`           // raw name as stored/received
	ExternalIDs map[string]string `json:"externalIds,omitempty"` // system name -> id
	Origin      string            `json:"origin"`                // which system produced the record
}

// Basis names the signal that produced a similarity score.
type Basis string

const (
	BasisExactVariant Basis = "exact-variant"
	BasisContainment  Basis = "containment"
	BasisTokenOverlap Basis = "token-overlap-ratio"
	BasisEditDistance Basis = "edit-distance-ratio"
)

// SimilarityResult is the score for one compared pair, always in [0,1].
// 1.0 is reserved for exact canonical-form or exact-ID equality.
type SimilarityResult struct {
	Score float64 `json:"score"`
	Basis Basis   `json:"basis"`
}

// Tier is the confidence bucket assigned to a candidate match.
type Tier string

const (
	TierIdentical     Tier = "identical"
	TierAutoMatch     Tier = "auto"
	TierNeedsReview   Tier = "review"
	TierWeakCandidate Tier = "weak"
	TierNoMatch       Tier = "none"
)

// MatchDecision pairs a source record with its best target candidate (nil for
// NoMatch) and the similarity that led to the tier.
type MatchDecision struct {
	Tier       Tier             `json:"tier"`
	Source     PlayerRecord     `json:"source"`
	Target     *PlayerRecord    `json:"target,omitempty"`
	Similarity SimilarityResult `json:"similarity"`
}

// DuplicateCluster groups mutually similar records within one record set.
// The first member is the representative (seed of the greedy pass).
type DuplicateCluster struct {
	Members       []PlayerRecord `json:"members"`
	MaxSimilarity float64        `json:"maxSimilarity"`
}

// Thresholds are the score cutoffs for the classification tiers. Kept in one
// place so every caller works off the same numbers.
type Thresholds struct {
	Auto   float64 `json:"auto"`   // >= Auto (or exact-variant basis) -> AutoMatch
	Review float64 `json:"review"` // >= Review -> NeedsReview
	Weak   float64 `json:"weak"`   // >= Weak -> WeakCandidate
}

func DefaultThresholds() Thresholds {
	return Thresholds{Auto: 0.98, Review: 0.90, Weak: 0.80}
}

// NicknameTable maps a name token to its equivalent spelling, in both
// directions (jimmy->james and james->jimmy are separate entries).
type NicknameTable map[string]string

// DefaultNicknames covers the short forms that actually show up in league
// exports. Passed explicitly so runs can swap in a league-specific table.
func DefaultNicknames() NicknameTable {
	pairs := [][2]string{
		{"jimmy", "james"},
		{"mike", "michael"},
		{"bob", "robert"},
		{"bill", "william"},
		{"rich", "richard"},
		{"dave", "david"},
		{"chris", "christopher"},
		{"tony", "anthony"},
		{"cam", "cameron"},
		{"nic", "nicolas"},
		{"alex", "alexander"},
	}
	t := make(NicknameTable, len(pairs)*2)
	for _, p := range pairs {
		t[p[0]] = p[1]
		t[p[1]] = p[0]
	}
	return t
}

// ConfirmFunc is the interactive confirmation gate for the review tier.
// Returning true accepts the match.
type ConfirmFunc func(MatchDecision) bool

// Options configures one resolution run.
type Options struct {
	Thresholds  Thresholds    `json:"thresholds"`
	Nicknames   NicknameTable `json:"-"`
	IncludeWeak bool          `json:"includeWeak"`           // route WeakCandidate into review instead of unmatched
	AcceptAbove float64       `json:"acceptAbove,omitempty"` // >0: auto-accept review items at/above this score (non-interactive)
	Apply       bool          `json:"apply"`                 // persist confirmed mappings through the sink
	Confirm     ConfirmFunc   `json:"-"`                     // nil means non-interactive
}

func DefaultOptions() Options {
	return Options{
		Thresholds: DefaultThresholds(),
		Nicknames:  DefaultNicknames(),
	}
}

// Mapping tells the handler which spreadsheet columns feed a PlayerRecord.
type Mapping struct {
	NameKey   string            `json:"nameKey"`
	IDKey     string            `json:"idKey,omitempty"` // empty: row number becomes the source id
	ExtKeys   map[string]string `json:"extKeys,omitempty"`
	Origin    string            `json:"origin"`
	HeaderRow int               `json:"headerRow"` // 1-based
}

// ApplyFailure reports one confirmed mapping the sink could not persist.
type ApplyFailure struct {
	Decision MatchDecision `json:"decision"`
	Error    string        `json:"error"`
}

// Result is the outcome of one resolution run. The three record lists are
// disjoint; Opts echoes what was actually applied.
type Result struct {
	Confirmed     []MatchDecision `json:"confirmed"`
	NeedsReview   []MatchDecision `json:"needsReview"`
	Unmatched     []PlayerRecord  `json:"unmatched"`
	ApplyFailures []ApplyFailure  `json:"applyFailures,omitempty"`
	Opts          Options         `json:"opts"`
}
