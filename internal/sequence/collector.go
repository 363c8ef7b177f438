package sequence

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DataAccessError is returned when the catalog query itself fails. Rows the
// session cannot read are not errors; they are skipped.
type DataAccessError struct {
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("reading sequence catalog: %v", e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

type Collector struct {
	querier   Querier
	threshold float64
	logger    *zap.Logger
}

func NewCollector(q Querier, threshold float64, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		querier:   q,
		threshold: threshold,
		logger:    logger,
	}
}

// Collect runs CatalogQuery once and returns a Record for every sequence that
// passes the exclusion rules. The order of the result carries no meaning.
func (c *Collector) Collect(ctx context.Context) ([]Record, error) {
	rows, err := c.querier.Query(ctx, CatalogQuery)
	if err != nil {
		return nil, &DataAccessError{Err: err}
	}

	c.logger.Debug("Fetched sequence catalog rows", zap.Int("rows", len(rows)))

	lookup := buildOwnerLookup(rows)

	records := make([]Record, 0, len(lookup.sequences))
	for _, seq := range lookup.sequences {
		row := seq.first

		if reason, excluded := firstExclusion(row); excluded {
			c.logger.Debug("Skipping sequence",
				zap.String("schema", row.String("schema")),
				zap.String("sequence", row.String("sequence")),
				zap.String("reason", reason),
			)
			continue
		}

		records = append(records, c.newRecord(row, lookup, seq.oid))
	}

	return records, nil
}

func (c *Collector) newRecord(row Row, lookup *ownerLookup, oid int64) Record {
	lastValue, _ := row.Int64("last_value")
	maxValue, _ := row.Int64("max_value")

	rec := Record{
		Schema:     row.String("schema"),
		Sequence:   row.String("sequence"),
		ColumnType: row.String("sequence_type"),
		LastValue:  lastValue,
		MaxValue:   maxValue,
		Readable:   true,
		Healthy:    isHealthy(lastValue, maxValue, c.threshold),
	}

	if o, ok := lookup.ownerOf(oid); ok {
		rec.Table = o.table
		rec.Column = o.column
		if o.columnType != "" {
			rec.ColumnType = o.columnType
		}
	}
	if rec.ColumnType == "" {
		rec.ColumnType = row.String("column_type")
	}

	return rec
}
