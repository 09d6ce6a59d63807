// Package diagnostic provides structured warnings, errors, and
// informational notes produced while checking records for code generation.
//
// Key capabilities:
//   - Layout assertion failures naming the record and the mismatched quantities
//   - Unknown record reports with "did you mean" suggestions
//   - Members that cannot be selected from generated code
package diagnostic
