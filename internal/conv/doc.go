// Package conv provides bounds-checked integer conversions.
//
// Row indices are stored as uint32 in cluster membership bitmaps, so matrix
// sizes are validated with IntToUint32 before any index is narrowed.
package conv
