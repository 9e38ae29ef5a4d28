// Package config loads, normalizes, and validates the csn configuration.
//
// Configuration lives in a TOML file. Load starts from repository defaults,
// overlays the file when present, expands paths, and validates the result,
// so callers always receive a usable Config. Policy constants (the error
// threshold and the revalidation gap) default to the vendor-recommended
// values and are overridable here rather than hard-coded at call sites.
package config
