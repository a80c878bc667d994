package gen

// Generate printable runes: ASCII and a slice of accented Latin.
// Shrinks toward the low ASCII printable range.
func Rune() Gen[rune] {
	return Map(OneGenOf(IntRange(' ', '~'), IntRange(0x00C0, 0x024F)), func(v int) rune {
		return rune(v)
	})
}

// Generate alphabetic runes. Shrinks toward 'a'.
func AlphaChar() Gen[rune] {
	return Map(IntRange(0, 51), func(i int) rune {
		if i < 26 {
			return rune('a' + i)
		}
		return rune('A' + i - 26)
	})
}

// Generate strings of runes from char with a length in [0, size].
// Shrinks toward shorter strings and simpler runes.
func StringOf(char Gen[rune]) Gen[string] {
	return Map(SliceOf(char), func(rs []rune) string { return string(rs) })
}

// Generate alphabetic strings.
func AlphaString() Gen[string] {
	return StringOf(AlphaChar())
}

// Generate printable strings.
func AnyString() Gen[string] {
	return StringOf(Rune())
}
