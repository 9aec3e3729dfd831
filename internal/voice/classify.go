package voice

import (
	"regexp"
	"strings"
)

// Bucket is a locale-delimited subset of the catalog
type Bucket int

const (
	BucketNone Bucket = iota
	BucketUS
	BucketGB
	BucketAU
	BucketOtherEnglish
)

// priority lists the English buckets in selection order
var priority = []Bucket{BucketUS, BucketGB, BucketAU, BucketOtherEnglish}

// String returns the locale label of the bucket
func (b Bucket) String() string {
	switch b {
	case BucketUS:
		return "en-US"
	case BucketGB:
		return "en-GB"
	case BucketAU:
		return "en-AU"
	case BucketOtherEnglish:
		return "en"
	default:
		return "none"
	}
}

// Quality is the synthesis tier advertised in a voice identifier
type Quality int

const (
	QualityStandard Quality = iota
	QualityCompact
	QualityEnhanced
)

// String returns the name of the quality tier
func (q Quality) String() string {
	switch q {
	case QualityEnhanced:
		return "enhanced"
	case QualityCompact:
		return "compact"
	default:
		return "standard"
	}
}

// localePattern matches a language_REGION token delimited by separators,
// e.g. "en_US" in "x.en_US.samantha" or "en-GB" in "en-GB.enhanced.Gamma".
var localePattern = regexp.MustCompile(`(?i)(?:^|[._\s-])([a-z]{2,3})[-_]([a-z]{2})(?:$|[._\s-])`)

// legacyNames are voices the first generations of the tool treated as English
// without any locale marker in the identifier.
var legacyNames = map[string]bool{
	"samantha": true,
	"alex":     true,
	"ava":      true,
	"victoria": true,
	"kate":     true,
	"serena":   true,
	"daniel":   true,
	"moira":    true,
}

// Classify returns the locale bucket and quality tier of a voice identifier
func Classify(id string) (Bucket, Quality) {
	return classifyLocale(id), classifyQuality(id)
}

func classifyLocale(id string) Bucket {
	if m := localePattern.FindStringSubmatch(id); m != nil {
		if !strings.EqualFold(m[1], "en") {
			return BucketNone
		}
		switch strings.ToLower(m[2]) {
		case "us":
			return BucketUS
		case "gb", "uk":
			return BucketGB
		case "au":
			return BucketAU
		default:
			return BucketOtherEnglish
		}
	}

	low := strings.ToLower(id)
	if strings.HasSuffix(low, ".english") {
		return BucketOtherEnglish
	}
	for _, seg := range segments(low) {
		if seg == "en" || seg == "english" || legacyNames[seg] {
			return BucketOtherEnglish
		}
	}
	return BucketNone
}

func classifyQuality(id string) Quality {
	low := strings.ToLower(id)
	switch {
	case strings.Contains(low, "enhanced"), strings.Contains(low, "premium"):
		return QualityEnhanced
	case strings.Contains(low, "compact"):
		return QualityCompact
	default:
		return QualityStandard
	}
}

// segments splits an identifier on the separators used by voice catalogs
func segments(id string) []string {
	return strings.FieldsFunc(id, func(r rune) bool {
		return r == '.' || r == '-' || r == '_' || r == ' ' || r == '/'
	})
}
