// Package hash provides the CRC32-Castagnoli (CRC32C) checksums that guard
// grid snapshots.
//
// For one-shot checksums:
//
//	checksum := hash.CRC32C(data)
//
// For streaming checksums over everything written to w:
//
//	cw := hash.NewWriter(w)
//	cw.Write(header)
//	cw.Write(body)
//	sum := cw.Sum32()
package hash
