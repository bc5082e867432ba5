// Package csvbind binds CSV records to typed, validated values and turns
// validation failures into localized messages.
//
// The module is organized as a set of focused packages:
//
//   - pkg/column: declarative field descriptors and constraint annotations.
//   - pkg/format: parsing and printing of typed cell values.
//   - pkg/replacer: longest-match character and word replacement.
//   - pkg/sanitizer: named text conversions such as width folding.
//   - pkg/cellproc: the per-column processor chain and validation errors.
//   - pkg/constraint: the annotation registry and the built-in constraints.
//   - pkg/seen: session-scoped side-table backing unique constraints.
//   - pkg/mapping: definitions, the builder and CSV reading and writing.
//   - pkg/message: templated messages for validation failures.
//   - pkg/i18n: message bundles and language matching.
//   - pkg/config, pkg/logger, pkg/cache: ambient infrastructure.
//
// The csvcheck command in cmd/csvcheck wires everything together.
package csvbind
