package importer

import (
	"fmt"
	"strings"

	"valorant-accounts/internal/domain"
)

// Record is one loosely-typed account candidate: arbitrary string keys
// (any casing) mapped to scalar values as they came out of a parser.
type Record map[string]any

// stringify renders a scalar the way loosely-typed data usually arrives:
// numbers without a decimal point when whole, booleans as true/false.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// firstNonEmpty returns the first non-empty stringified value among keys.
// Keys in rec are assumed to be lowercased already.
func firstNonEmpty(rec Record, keys ...string) string {
	for _, k := range keys {
		if v, ok := rec[k]; ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// splitCombined splits a combined "name#tag" value. The left part becomes
// the riot ID; an empty right part falls back to the default hashtag.
func splitCombined(combined string) (riotID, hashtag string) {
	parts := strings.Split(combined, "#")
	riotID = strings.TrimSpace(parts[0])
	hashtag = domain.DefaultHashtag
	if len(parts) > 1 {
		if tag := strings.TrimSpace(parts[1]); tag != "" {
			hashtag = tag
		}
	}
	return riotID, hashtag
}

// Normalize recovers one canonical account from a loosely-typed record, or
// nil when the record carries no usable riot ID. Passwords are deliberately
// never recovered through this path.
func Normalize(rec Record) *domain.Account {
	if rec == nil {
		return nil
	}

	normalized := make(Record, len(rec))
	for k, v := range rec {
		normalized[strings.ToLower(k)] = v
	}

	riotID := firstNonEmpty(normalized, "riotid", "username", "name")
	if riotID == "" {
		if email := firstNonEmpty(normalized, "email"); email != "" {
			riotID = strings.Split(email, "@")[0]
		}
	}

	hashtag := firstNonEmpty(normalized, "hashtag", "tag")

	// Combined "PlayerName#1234" wins over a separately supplied hashtag.
	if strings.Contains(riotID, "#") {
		riotID, hashtag = splitCombined(riotID)
	}

	if hashtag == "" {
		hashtag = domain.DefaultHashtag
	}

	if riotID == "" {
		return nil
	}

	hasSkins := false
	if v, ok := normalized["hasskins"]; ok && stringify(v) != "" {
		hasSkins = isSkinsValue(v)
	} else if v, ok := normalized["skins"]; ok && stringify(v) != "" {
		hasSkins = isSkinsValue(v)
	}

	username := firstNonEmpty(normalized, "username", "email")
	if username == "" {
		username = riotID
	}

	region := firstNonEmpty(normalized, "region")
	if region == "" {
		region = string(domain.RegionAP)
	}

	rank := firstNonEmpty(normalized, "rank", "currentrank")
	if rank == "" {
		rank = domain.DefaultRank
	}

	return &domain.Account{
		RiotID:      riotID,
		Hashtag:     hashtag,
		Username:    username,
		Password:    "",
		Region:      domain.Region(region),
		HasSkins:    hasSkins,
		CurrentRank: rank,
	}
}

func isSkinsValue(v any) bool {
	if b, ok := v.(bool); ok && b {
		return true
	}
	switch strings.ToUpper(stringify(v)) {
	case "Y", "YES", "TRUE":
		return true
	}
	return false
}
