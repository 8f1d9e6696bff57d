package memmap

import (
	"fmt"
	"strings"
)

// FormatAddr renders an address for boundary markers: fixed-width uppercase
// hex, zero-padded to at least eight digits, grouped in clusters of four from
// the most significant end. A 32-bit value renders as two 4-digit clusters,
// e.g. 0x0804_0000.
func FormatAddr(v uint64) string {
	s := fmt.Sprintf("%X", v)
	if len(s) < 8 {
		s = strings.Repeat("0", 8-len(s)) + s
	}
	// Pad to a multiple of four so clusters stay aligned for wide addresses.
	if r := len(s) % 4; r != 0 {
		s = strings.Repeat("0", 4-r) + s
	}

	var b strings.Builder
	b.WriteString("0x")
	for i := 0; i < len(s); i += 4 {
		if i > 0 {
			b.WriteByte('_')
		}
		b.WriteString(s[i : i+4])
	}
	return b.String()
}

var sizeUnits = [...]string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with binary (1024-based) units. The B tier
// prints no decimals, every other tier prints two.
func FormatSize(n uint64) string {
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f %s", v, sizeUnits[0])
	}
	return fmt.Sprintf("%.2f %s", v, sizeUnits[i])
}
