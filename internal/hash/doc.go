// Package hash provides the CRC32-Castagnoli checksum that guards report
// bodies against truncated or corrupted blobs.
//
//	sum := hash.CRC32C(body)
//
// Go's crc32 package uses hardware instructions (SSE4.2, ARM CRC) when
// available.
package hash
