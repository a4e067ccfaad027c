// FILE: docsync/doc.go

// Package docsync keeps the attributes of in-memory objects in sync with
// human-readable document files (YAML by default, JSON and TOML by
// extension).
//
// Features:
//   - Bidirectional conversion between attributes and a document tree
//   - Lenient scalar coercion that never fails, degrading to defaults
//   - Nested mappings and sequences, declared or inferred from data
//   - Undeclared keys found in a file are kept and written back
//   - External edits are detected by modification time and size
//   - Writes are skipped when the rendered text is unchanged
//   - Atomic file replacement, parent directories created on demand
//   - Weakly referenced registry: bound objects are garbage collected normally
//   - Optional polling watcher with change notifications
//
// Quick Start:
//
//	rec := docsync.NewRecord(map[string]any{"string": "", "number": 0})
//	_, err := docsync.Sync(rec, "sample.yml", []docsync.Attr{
//	    docsync.A("string", docsync.String),
//	    docsync.A("number", docsync.Integer),
//	}, true)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec.Set("number", 42)      // sample.yml now reads "number: 42\nstring: ''\n"
//	n, _ := rec.Int("number")  // re-reads sample.yml if it changed on disk
//
// Struct pointers can be bound as well; fields are named by their yaml tag:
//
//	type Sample struct {
//	    Count   int            `yaml:"count"`
//	    Notes   string         `yaml:"notes" docsync:"markdown"`
//	    Unknown map[string]any `yaml:",inline"`
//	}
//
//	sample, err := docsync.Bind(docsync.NewBuilder().WithPath("data/{UUID}.yml"), &Sample{})
//	docsync.Set(sample, "count", 5)
//	docsync.Modify(sample, func(s *Sample) { s.Notes = "Edited in place." })
//
// Sync Model:
// With auto enabled every Get fetches the file when its modification time
// or size changed and every Set stores it. With auto disabled writes only
// mark the mapper modified until Store (or Save) is called.
//
// Thread Safety:
// Mappers, schemas and records are guarded by mutexes, so an optional
// watcher and user goroutines may interleave. There is no locking between
// processes editing the same file.
package docsync
