package voice

import "sort"

// Report explains a selection for display
type Report struct {
	// Selected is empty when OK is false
	Selected string
	OK       bool

	// FromOverride is set when the override matched a catalog entry
	FromOverride bool

	// Bucket of the selected voice
	Bucket Bucket

	// Buckets holds the catalog grouped by locale, each sorted
	Buckets map[Bucket][]string
}

// Describe runs Select and returns the grouping it was based on
func Describe(catalog []string, override string) Report {
	buckets := group(catalog)
	for _, ids := range buckets {
		sort.Slice(ids, func(i, j int) bool { return less(ids[i], ids[j]) })
	}

	report := Report{Buckets: buckets}
	if id, ok := matchOverride(catalog, override); ok {
		report.FromOverride = true
		report.Selected, report.OK = id, true
	} else {
		report.Selected, report.OK = Select(catalog, "")
	}
	if report.OK {
		report.Bucket = classifyLocale(report.Selected)
	}
	return report
}
