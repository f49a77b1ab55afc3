package handler

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"league-recon/internal/resolve/model"
)

var reHeaderJunk = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normHeaderKey makes column lookup tolerant of the casing/spacing drift
// between exports ("Player Name" vs "player_name").
func normHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	s = reHeaderJunk.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// resolveKey finds the actual column name in a row that corresponds to the
// requested key, exact first, then normalized.
func resolveKey(row map[string]string, want string) string {
	if want == "" {
		return ""
	}
	if _, ok := row[want]; ok {
		return want
	}
	nw := normHeaderKey(want)
	for k := range row {
		if normHeaderKey(k) == nw {
			return k
		}
	}
	return ""
}

// toRecords maps parsed spreadsheet rows onto PlayerRecords. Rows with an
// empty name cell are kept (the engine treats them as no-signal); rows
// without an id column get a stable row-number id.
func toRecords(rows []map[string]string, m model.Mapping) []model.PlayerRecord {
	out := make([]model.PlayerRecord, 0, len(rows))
	for i, row := range rows {
		name := ""
		if k := resolveKey(row, m.NameKey); k != "" {
			name = strings.TrimSpace(row[k])
		}
		id := ""
		if k := resolveKey(row, m.IDKey); k != "" {
			id = strings.TrimSpace(row[k])
		}
		if id == "" {
			id = fmt.Sprintf("row:%d", i+1)
		}
		var ext map[string]string
		for sys, col := range m.ExtKeys {
			k := resolveKey(row, col)
			if k == "" {
				continue
			}
			v := strings.TrimSpace(row[k])
			if v == "" {
				continue
			}
			if ext == nil {
				ext = make(map[string]string)
			}
			ext[sys] = v
		}
		out = append(out, model.PlayerRecord{
			SourceID:    id,
			DisplayName: name,
			ExternalIDs: ext,
			Origin:      m.Origin,
		})
	}
	return out
}

// parseExtKeys parses repeated "system=column" form values.
func parseExtKeys(vals []string) map[string]string {
	var out map[string]string
	for _, v := range vals {
		sys, col, ok := strings.Cut(v, "=")
		sys, col = strings.TrimSpace(sys), strings.TrimSpace(col)
		if !ok || sys == "" || col == "" {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[sys] = col
	}
	return out
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
