// Package conv formats integers for the log without fmt or strconv.
package conv

// AppendUint appends the base-10 form of n to dst.
func AppendUint(dst []byte, n uint64) []byte {
	var buf [20]byte
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, buf[i:]...)
}

// AppendInt appends the base-10 form of n to dst.
func AppendInt(dst []byte, n int64) []byte {
	if n < 0 {
		dst = append(dst, '-')
		return AppendUint(dst, uint64(-n))
	}
	return AppendUint(dst, uint64(n))
}

// AppendHex8 appends n as 0x-prefixed two-digit lowercase hex, the form
// I2C addresses are logged in.
func AppendHex8(dst []byte, n uint8) []byte {
	const hexd = "0123456789abcdef"
	return append(dst, '0', 'x', hexd[n>>4], hexd[n&0xF])
}

// U32 returns the base-10 form of n.
func U32(n uint32) string {
	var buf [10]byte
	return string(AppendUint(buf[:0], uint64(n)))
}
