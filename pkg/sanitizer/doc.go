// Package sanitizer normalizes booking input before validation and storage.
//
// All functions are idempotent: applying them twice yields the same result.
// They never fail; input that cannot be normalized is returned trimmed so the
// validator can reject it with a precise message.
//
// Normalization includes:
//   - Names and labels: trim, collapse internal whitespace
//   - E-mail addresses: trim, lowercase
//   - Phone numbers: trim, collapse internal whitespace
//   - Free text: trim, normalize line endings, drop control characters
//   - Dates and slots: trim, lowercase
package sanitizer
