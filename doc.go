// Package featureflow is a single-stage ETL module for ML data ingestion:
// it exports a document collection from MongoDB into an in-memory feature
// table, persists the table verbatim to a CSV feature store, and partitions
// it into reproducible training and testing subsets.
//
// # Architecture
//
// Three components run in strict sequence under one orchestrator:
//
//	┌─────────────────────────────────────┐
//	│        Pipeline (ingestion)         │  State machine, metrics,
//	│   export → persist → split          │  artifact assembly
//	└─────────────────────────────────────┘
//	           ↓ invokes
//	┌──────────────┬──────────────┬───────┐
//	│ input/mongodb│ output/      │ split │
//	│ (reader)     │ featurestore │       │
//	└──────────────┴──────────────┴───────┘
//
// Data flows one way: database → in-memory table → disk (three full
// rewrites). No component retains state between calls; each run is
// idempotent-by-overwrite but not safe under concurrent invocation against
// the same output paths.
//
// # Determinism
//
// The train/test partition is a seeded permutation followed by a fixed cut:
// the same collection contents, split ratio, and seed always yield
// byte-identical partition files.
//
// # Error handling
//
// Every public operation wraps internal failures into a classified error
// (see the errors package) carrying the error class, original cause, and a
// trace reference. Nothing is retried; failures propagate to the caller and
// files written by earlier steps of a failed run remain on disk.
package featureflow
