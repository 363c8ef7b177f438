package analyzer

import "github.com/jacobarthurs/pgseq/internal/sequence"

type Result struct {
	Threshold float64
	// Records is every collected sequence, closest to exhaustion first.
	Records []sequence.Record
	// Unhealthy keeps the order of Records.
	Unhealthy []sequence.Record
}
