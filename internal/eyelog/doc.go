// Package eyelog parses raw eye-tracker event messages into structured
// calibration and validation quality records.
//
// The tracker writes semi-structured result lines into the session event log,
// padded with variable interior whitespace. Parse collapses that whitespace
// and extracts fields from fixed token positions; the position table in
// tokens.go is the single place those positional assumptions live.
//
// Lines without a recognized result marker are not errors: Parse reports
// them as non-matches and callers drop them. Matched lines missing a numeric
// field produce a record carrying NaN for that field rather than a failure.
package eyelog
