// Package util provides small generic helpers shared across the SDK.
//
// Extract and HasNonEmpty implement configuration-style lookups where an
// absent key and an empty value are equivalent. Lookup is the strict
// variant: a key is present when it exists and holds the requested type,
// whatever its value.
package util
