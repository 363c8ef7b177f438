package sequence

// CatalogQuery returns one row per (sequence, candidate owner) pair. Owners
// come from two paths: ownership dependencies (serial and identity columns,
// rank 1) and column defaults that call nextval() on the sequence (rank 2).
// Sequences without any owner are still returned with NULL owner columns.
const CatalogQuery = `
WITH sequence_usage AS (
    SELECT
        s.oid AS sequence_oid,
        c.relname AS table_name,
        a.attname AS column_name,
        format_type(a.atttypid, a.atttypmod) AS column_type,
        1 AS source_rank
    FROM pg_class s
    JOIN pg_depend d ON d.objid = s.oid AND d.deptype IN ('a', 'i')
    JOIN pg_class c ON c.oid = d.refobjid
    JOIN pg_attribute a ON a.attrelid = c.oid AND a.attnum = d.refobjsubid
    WHERE s.relkind = 'S'

    UNION

    SELECT
        s.oid AS sequence_oid,
        c.relname AS table_name,
        a.attname AS column_name,
        format_type(a.atttypid, a.atttypmod) AS column_type,
        2 AS source_rank
    FROM pg_attrdef ad
    JOIN pg_attribute a ON a.attrelid = ad.adrelid AND a.attnum = ad.adnum
    JOIN pg_class c ON c.oid = a.attrelid
    JOIN pg_depend d ON d.objid = ad.oid
        AND d.classid = 'pg_attrdef'::regclass
        AND d.refclassid = 'pg_class'::regclass
    JOIN pg_class s ON s.oid = d.refobjid AND s.relkind = 'S'
)
SELECT
    s.oid::bigint AS sequence_oid,
    ps.schemaname AS schema,
    ps.sequencename AS sequence,
    ps.last_value,
    ps.max_value,
    ps.data_type::text AS sequence_type,
    u.table_name,
    u.column_name,
    u.column_type,
    has_sequence_privilege(
        quote_ident(ps.schemaname) || '.' || quote_ident(ps.sequencename), 'SELECT'
    ) AS readable
FROM pg_sequences ps
JOIN pg_namespace n ON n.nspname = ps.schemaname
JOIN pg_class s ON s.relname = ps.sequencename AND s.relnamespace = n.oid
LEFT JOIN sequence_usage u ON u.sequence_oid = s.oid
WHERE ps.schemaname NOT IN ('information_schema', 'pg_catalog')
  AND ps.schemaname NOT LIKE 'pg\_temp\_%'
ORDER BY ps.schemaname, ps.sequencename, u.source_rank NULLS LAST, u.table_name, u.column_name
`
