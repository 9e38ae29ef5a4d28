// Package results persists the pipeline's output tables in SQLite.
//
// Each invocation of the batch records a run row plus one drift report and
// one exclusion decision per participant, keyed by run id, so reruns over
// revised data stay auditable side by side. The database lives in the
// configured results directory; concurrent writers are excluded with a lock
// file next to it.
//
// Schema changes bump schemaVersion in schema.go; the database is an output
// artifact, so adopting a new schema means deleting the old file.
package results
