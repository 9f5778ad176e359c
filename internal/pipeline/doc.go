// Package pipeline implements the offline cleaning job that turns a raw
// retail order extract into the typed, derived-field dataset consumed by
// the loader and the reporting queries.
//
// The pipeline is a strictly sequential composition of pure stages:
// ingestion, header normalization, derivation, categorical cleaning, and
// export. Every stage consumes a complete input and returns a complete
// output; no stage mutates shared state, drops rows, or depends on row
// order. A failed stage returns a typed error and no partial table.
package pipeline
