package sequence

// Record is a point-in-time view of one sequence and the column it feeds.
type Record struct {
	Schema     string
	Table      string
	Column     string
	Sequence   string
	ColumnType string
	LastValue  int64
	MaxValue   int64
	Readable   bool
	Healthy    bool
}

func (r Record) PercentUsed() float64 {
	if r.MaxValue == 0 {
		return 0
	}
	return float64(r.LastValue) / float64(r.MaxValue) * 100
}

// Remaining is the headroom left before the sequence hits its max value.
func (r Record) Remaining() int64 {
	return r.MaxValue - r.LastValue
}

func isHealthy(lastValue, maxValue int64, threshold float64) bool {
	return float64(lastValue)/float64(maxValue) <= threshold
}
