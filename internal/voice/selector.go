package voice

import (
	"sort"
	"strings"
)

// preferredName wins within the surviving candidates
const preferredName = "samantha"

// Select returns the best voice from catalog. When override names a catalog
// entry (case-insensitive, exact) that entry is returned verbatim; an unknown
// override is ignored. ok is false when no English voice exists and the
// platform default should be used.
func Select(catalog []string, override string) (id string, ok bool) {
	if id, ok := matchOverride(catalog, override); ok {
		return id, true
	}

	buckets := group(catalog)
	for _, b := range priority {
		if candidates := buckets[b]; len(candidates) > 0 {
			return pick(byQuality(candidates)), true
		}
	}
	return "", false
}

// matchOverride finds the catalog entry equal to override ignoring case
func matchOverride(catalog []string, override string) (string, bool) {
	override = strings.TrimSpace(override)
	if override == "" {
		return "", false
	}

	var matches []string
	for _, id := range catalog {
		if strings.EqualFold(id, override) {
			matches = append(matches, id)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[0], true
}

// group sorts the catalog into locale buckets, dropping duplicates
func group(catalog []string) map[Bucket][]string {
	seen := make(map[string]bool, len(catalog))
	buckets := make(map[Bucket][]string)
	for _, id := range catalog {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		b := classifyLocale(id)
		buckets[b] = append(buckets[b], id)
	}
	return buckets
}

// byQuality narrows a bucket to its enhanced voices, else its compact voices,
// else returns it unchanged.
func byQuality(bucket []string) []string {
	for _, q := range []Quality{QualityEnhanced, QualityCompact} {
		var tier []string
		for _, id := range bucket {
			if classifyQuality(id) == q {
				tier = append(tier, id)
			}
		}
		if len(tier) > 0 {
			return tier
		}
	}
	return bucket
}

// pick returns the smallest Samantha voice, or the smallest voice overall
func pick(candidates []string) string {
	var named []string
	for _, id := range candidates {
		if strings.Contains(strings.ToLower(id), preferredName) {
			named = append(named, id)
		}
	}
	if len(named) > 0 {
		return smallest(named)
	}
	return smallest(candidates)
}

// smallest compares case-insensitively and breaks ties on the raw string
func smallest(ids []string) string {
	best := ids[0]
	for _, id := range ids[1:] {
		if less(id, best) {
			best = id
		}
	}
	return best
}

func less(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
