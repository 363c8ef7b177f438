package sequence

type owner struct {
	table      string
	column     string
	columnType string
}

type sequenceRow struct {
	oid   int64
	first Row
}

// ownerLookup merges the owned-column and default-expression associations
// for each sequence. The first association seen for a sequence wins; rows
// arrive ordered by rank, so ownership edges beat default expressions.
type ownerLookup struct {
	owners    map[int64]owner
	sequences []sequenceRow
	seen      map[int64]bool
}

func newOwnerLookup() *ownerLookup {
	return &ownerLookup{
		owners: make(map[int64]owner),
		seen:   make(map[int64]bool),
	}
}

func buildOwnerLookup(rows []Row) *ownerLookup {
	l := newOwnerLookup()
	for _, row := range rows {
		l.add(row)
	}
	return l
}

func (l *ownerLookup) add(row Row) {
	oid, ok := row.Int64("sequence_oid")
	if !ok {
		// Without an identifier every row is its own sequence.
		oid = -int64(len(l.sequences)) - 1
	}

	if !l.seen[oid] {
		l.seen[oid] = true
		l.sequences = append(l.sequences, sequenceRow{oid: oid, first: row})
	}

	if _, found := l.owners[oid]; found {
		return
	}
	table := row.String("table_name")
	if table == "" {
		return
	}
	l.owners[oid] = owner{
		table:      table,
		column:     row.String("column_name"),
		columnType: row.String("column_type"),
	}
}

func (l *ownerLookup) ownerOf(oid int64) (owner, bool) {
	o, ok := l.owners[oid]
	return o, ok
}
