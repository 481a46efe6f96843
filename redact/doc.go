// Package redact obscures credentials before they are written to logs.
//
// Masking is a display transform for human-readable audit trails. It keeps
// the edges of a value visible so operators can tell credentials apart and
// hides the middle. It is not encryption and gives no secrecy guarantee for
// short values.
package redact
