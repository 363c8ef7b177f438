package output

import (
	"encoding/json"
	"io"

	"github.com/jacobarthurs/pgseq/internal/analyzer"
)

type JSONSequence struct {
	Schema      string  `json:"schema"`
	Sequence    string  `json:"sequence"`
	Table       string  `json:"table"`
	Column      string  `json:"column"`
	ColumnType  string  `json:"column_type"`
	LastValue   int64   `json:"last_value"`
	MaxValue    int64   `json:"max_value"`
	Remaining   int64   `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
	Healthy     bool    `json:"healthy"`
}

type JSONReport struct {
	Threshold      float64        `json:"threshold"`
	TotalCount     int            `json:"total_count"`
	UnhealthyCount int            `json:"unhealthy_count"`
	Sequences      []JSONSequence `json:"sequences"`
}

// NewJSONReport lists every collected sequence, closest to exhaustion first.
func NewJSONReport(r analyzer.Result) JSONReport {
	report := JSONReport{
		Threshold:      r.Threshold,
		TotalCount:     len(r.Records),
		UnhealthyCount: len(r.Unhealthy),
		Sequences:      make([]JSONSequence, 0, len(r.Records)),
	}
	for _, rec := range r.Records {
		report.Sequences = append(report.Sequences, JSONSequence{
			Schema:      rec.Schema,
			Sequence:    rec.Sequence,
			Table:       rec.Table,
			Column:      rec.Column,
			ColumnType:  rec.ColumnType,
			LastValue:   rec.LastValue,
			MaxValue:    rec.MaxValue,
			Remaining:   rec.Remaining(),
			PercentUsed: rec.PercentUsed(),
			Healthy:     rec.Healthy,
		})
	}
	return report
}

func RenderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
