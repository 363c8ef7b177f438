package analyzer

import (
	"fmt"
	"strings"

	"github.com/jacobarthurs/pgseq/internal/sequence"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	NoSequencesMessage = "No sequences found in the database."
	AllHealthyMessage  = "All sequences have healthy usage levels."
	ReportHeader       = "Sequences approaching maximum value:"
)

var numberPrinter = message.NewPrinter(language.English)

func FormatReport(r Result) string {
	if len(r.Records) == 0 {
		return NoSequencesMessage
	}
	if len(r.Unhealthy) == 0 {
		return AllHealthyMessage
	}

	lines := make([]string, 0, len(r.Unhealthy)+1)
	lines = append(lines, ReportHeader)
	for _, rec := range r.Unhealthy {
		lines = append(lines, formatRecord(rec))
	}
	return strings.Join(lines, "\n")
}

func formatRecord(r sequence.Record) string {
	return fmt.Sprintf("Sequence '%s.%s' used for %s.%s has used %.1f%% of available values (%s of %s, %s remaining)",
		r.Schema, r.Sequence, r.Table, r.Column,
		r.PercentUsed(),
		groupDigits(r.LastValue), groupDigits(r.MaxValue), groupDigits(r.Remaining()))
}

func groupDigits(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}
