package sequence

// rowFilter reports whether a sequence row can be turned into a Record.
type rowFilter struct {
	name string
	keep func(Row) bool
}

var exclusionRules = []rowFilter{
	{name: "unreadable", keep: isReadable},
	{name: "no usable max value", keep: hasUsableMax},
	{name: "negative last value", keep: hasNonNegativeLast},
}

// isReadable drops sequences the session has no SELECT privilege on. Their
// last_value is NULL, so no ratio can be computed.
func isReadable(row Row) bool {
	return row.Bool("readable")
}

func hasUsableMax(row Row) bool {
	maxValue, ok := row.Int64("max_value")
	return ok && maxValue > 0
}

// hasNonNegativeLast treats NULL as 0 (never advanced).
func hasNonNegativeLast(row Row) bool {
	if row["last_value"] == nil {
		return true
	}
	last, ok := row.Int64("last_value")
	return ok && last >= 0
}

func firstExclusion(row Row) (string, bool) {
	for _, rule := range exclusionRules {
		if !rule.keep(row) {
			return rule.name, true
		}
	}
	return "", false
}
