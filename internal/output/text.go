package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacobarthurs/pgseq/internal/analyzer"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

// RenderReportText writes a report built by analyzer.FormatReport. With
// color the header and the success messages are wrapped in ANSI codes, and
// every line is otherwise written as is.
func RenderReportText(w io.Writer, report string, color bool) error {
	tw := &textWriter{w: w}

	if !color {
		tw.printf("%s\n", report)
		return tw.err
	}

	switch report {
	case analyzer.NoSequencesMessage, analyzer.AllHealthyMessage:
		tw.printf("%s%s%s%s\n", colorBold, colorGreen, report, colorReset)
		return tw.err
	}

	for _, line := range strings.Split(report, "\n") {
		if line == analyzer.ReportHeader {
			tw.printf("%s%s%s%s\n", colorBold, colorYellow, line, colorReset)
			continue
		}
		tw.printf("%s\n", line)
	}

	return tw.err
}
