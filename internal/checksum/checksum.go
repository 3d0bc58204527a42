// Package checksum provides the integrity digest stored alongside every
// persisted value. It detects accidental corruption of stored bytes; it is
// not a cryptographic hash and makes no tamper-evidence claims.
package checksum

import "strconv"

// Sum computes a rolling 32-bit digest of data and formats it in base-36.
// The accumulator wraps at 32 bits on every step, so the output is stable
// across platforms and process restarts. Negative accumulators format with a
// leading minus sign, which is part of the stored format.
func Sum(data []byte) string {
	var h int32
	for _, b := range data {
		h = (h << 5) - h + int32(b)
	}
	return strconv.FormatInt(int64(h), 36)
}
