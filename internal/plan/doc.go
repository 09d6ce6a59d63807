// Package plan turns a manifest and a type graph into RecordPlans consumed by
// code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Load manifest → validate
//  3. For each listed record:
//     - Find the struct type, suggesting close names on a miss
//     - Evaluate declared member types in the record's package, or take the field types
//     - Build the cell surrogate under the analyzed layout model and compare
//     size, alignment and offsets with the record
//  4. Emit diagnostics (missing records, layout mismatches, fields that can't be
//     selected by name)
package plan
