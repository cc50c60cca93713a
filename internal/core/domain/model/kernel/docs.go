// Package kernel holds the value objects shared by every aggregate of the
// fulfillment engine: UUID identifiers and warehouse storage locations.
//
// Both are immutable, safe to copy and share between goroutines, and invalid
// as zero values; build them through their constructors.
package kernel
