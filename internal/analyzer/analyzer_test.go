package analyzer

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/jacobarthurs/pgseq/internal/sequence"
)

// --- Helpers ---

type stubQuerier struct {
	rows []sequence.Row
	err  error
}

func (s *stubQuerier) Query(_ context.Context, _ string) ([]sequence.Row, error) {
	return s.rows, s.err
}

func row(oid int64, schema, seq, table, column string, lastValue, maxValue int64) sequence.Row {
	r := sequence.Row{
		"sequence_oid":  oid,
		"schema":        schema,
		"sequence":      seq,
		"last_value":    lastValue,
		"max_value":     maxValue,
		"sequence_type": "bigint",
		"readable":      true,
	}
	if table != "" {
		r["table_name"] = table
		r["column_name"] = column
		r["column_type"] = "integer"
	}
	return r
}

func buildReport(t *testing.T, threshold float64, rows ...sequence.Row) string {
	t.Helper()
	a, err := New(&stubQuerier{rows: rows}, threshold, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	report, err := a.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	return report
}

func TestBuildReport_NoSequences(t *testing.T) {
	report := buildReport(t, 0.9)
	if report != "No sequences found in the database." {
		t.Errorf("report = %q", report)
	}
}

func TestBuildReport_OnlyExcludedSequences(t *testing.T) {
	unreadable := row(1, "secret", "secret_seq", "t", "id", 999, 1000)
	unreadable["readable"] = false

	report := buildReport(t, 0.9, unreadable, row(2, "public", "zero_seq", "", "", 0, 0))
	if report != NoSequencesMessage {
		t.Errorf("report = %q, want %q", report, NoSequencesMessage)
	}
}

func TestBuildReport_AllHealthy(t *testing.T) {
	report := buildReport(t, 0.9, row(1, "public", "ok_seq", "ok_table", "id", 100, 1000))
	if report != "All sequences have healthy usage levels." {
		t.Errorf("report = %q", report)
	}
}

func TestBuildReport_OneUnhealthy(t *testing.T) {
	report := buildReport(t, 0.9, row(1, "public", "danger_seq", "danger_table", "id", 950, 1000))

	lines := strings.Split(report, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), report)
	}
	if lines[0] != "Sequences approaching maximum value:" {
		t.Errorf("header = %q", lines[0])
	}

	want := "Sequence 'public.danger_seq' used for danger_table.id has used 95.0% of available values (950 of 1,000, 50 remaining)"
	if lines[1] != want {
		t.Errorf("line = %q\nwant   %q", lines[1], want)
	}
	for _, s := range []string{"95.0%", "950 of 1,000", "50 remaining"} {
		if !strings.Contains(lines[1], s) {
			t.Errorf("expected %q in %q", s, lines[1])
		}
	}
}

func TestBuildReport_LargeValuesGrouped(t *testing.T) {
	report := buildReport(t, 0.9, row(1, "public", "big_seq", "events", "id", 2147000000, 2147483647))

	if !strings.Contains(report, "(2,147,000,000 of 2,147,483,647, 483,647 remaining)") {
		t.Errorf("unexpected grouping: %s", report)
	}
	if !strings.Contains(report, "100.0%") {
		t.Errorf("expected rounded percentage, got: %s", report)
	}
}

func TestBuildReport_UnownedSequence(t *testing.T) {
	report := buildReport(t, 0.5, row(1, "public", "orphan_seq", "", "", 90, 100))

	if !strings.Contains(report, "Sequence 'public.orphan_seq' used for . has used 90.0%") {
		t.Errorf("unexpected line: %s", report)
	}
}

func TestBuildReport_OrderedByHeadroom(t *testing.T) {
	report := buildReport(t, 0.5,
		row(1, "public", "big_seq", "a", "id", 900000, 1000000),
		row(2, "public", "tiny_seq", "b", "id", 9, 10),
		row(3, "public", "mid_seq", "c", "id", 950, 1000),
	)

	lines := strings.Split(report, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	order := []string{"tiny_seq", "mid_seq", "big_seq"}
	for i, name := range order {
		if !strings.Contains(lines[i+1], name) {
			t.Errorf("line %d = %q, want %s", i+1, lines[i+1], name)
		}
	}
}

func TestBuildReport_Idempotent(t *testing.T) {
	rows := []sequence.Row{
		row(1, "public", "a_seq", "a", "id", 95, 100),
		row(2, "public", "b_seq", "b", "id", 10, 100),
		row(3, "audit", "c_seq", "c", "id", 99, 100),
	}
	a, err := New(&stubQuerier{rows: rows}, 0.9, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first, err := a.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	second, err := a.BuildReport(context.Background())
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if first != second {
		t.Errorf("reports differ:\n%s\n---\n%s", first, second)
	}
}

func TestBuildReport_PropagatesDataAccessError(t *testing.T) {
	cause := errors.New("permission denied for schema pg_catalog")
	a, err := New(&stubQuerier{err: cause}, 0.9, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := a.BuildReport(context.Background())
	if report != "" {
		t.Errorf("expected empty report, got %q", report)
	}
	var dae *sequence.DataAccessError
	if !errors.As(err, &dae) {
		t.Fatalf("expected DataAccessError, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be preserved, got %v", err)
	}
}

func TestAnalyze_SortAndFilter(t *testing.T) {
	a, err := New(&stubQuerier{rows: []sequence.Row{
		row(1, "public", "healthy_seq", "a", "id", 100, 1000),
		row(2, "public", "hot_seq", "b", "id", 950, 1000),
	}}, 0.9, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := a.Analyze(context.Background())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Threshold != 0.9 {
		t.Errorf("Threshold = %v, want 0.9", result.Threshold)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}
	if result.Records[0].Sequence != "hot_seq" {
		t.Errorf("first record = %s, want hot_seq (headroom 50 < 900)", result.Records[0].Sequence)
	}
	if len(result.Unhealthy) != 1 || result.Unhealthy[0].Sequence != "hot_seq" {
		t.Errorf("Unhealthy = %+v", result.Unhealthy)
	}
}

func TestNew_InvalidThreshold(t *testing.T) {
	for _, th := range []float64{-0.1, 1.01, 2, math.NaN()} {
		_, err := New(&stubQuerier{}, th, nil)
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("New(%v) error = %v, want ErrInvalidThreshold", th, err)
		}
	}
	for _, th := range []float64{0, 0.5, 1} {
		if _, err := New(&stubQuerier{}, th, nil); err != nil {
			t.Errorf("New(%v) unexpected error: %v", th, err)
		}
	}
}

func TestSortByHeadroom_StableOnTies(t *testing.T) {
	records := []sequence.Record{
		{Sequence: "first", LastValue: 50, MaxValue: 100},
		{Sequence: "second", LastValue: 950, MaxValue: 1000},
		{Sequence: "third", LastValue: 0, MaxValue: 50},
		{Sequence: "closest", LastValue: 9, MaxValue: 10},
	}

	sortByHeadroom(records)

	want := []string{"closest", "first", "second", "third"}
	for i, name := range want {
		if records[i].Sequence != name {
			t.Errorf("records[%d] = %s, want %s", i, records[i].Sequence, name)
		}
	}
}

func TestFormatReport_FiltersWithoutResorting(t *testing.T) {
	result := Result{
		Records: []sequence.Record{
			{Schema: "s", Sequence: "x", LastValue: 1, MaxValue: 2},
		},
		Unhealthy: []sequence.Record{
			{Schema: "s", Sequence: "late", Table: "t", Column: "c", LastValue: 1, MaxValue: 1000},
			{Schema: "s", Sequence: "early", Table: "t", Column: "c", LastValue: 9, MaxValue: 10},
		},
	}

	lines := strings.Split(FormatReport(result), "\n")
	if !strings.Contains(lines[1], "late") || !strings.Contains(lines[2], "early") {
		t.Errorf("FormatReport reordered records: %v", lines)
	}
}
