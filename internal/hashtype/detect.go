package hashtype

// Detect returns the hash types whose digest length matches the hex string.
// Non-hex input, or a length no supported algorithm produces, yields
// []HashType{Unknown}. 32 hex characters is genuinely ambiguous between MD5
// and NTLM, so both are returned.
func Detect(hash string) []HashType {
	if !isHex(hash) {
		return []HashType{Unknown}
	}

	switch len(hash) / 2 {
	case 16:
		return []HashType{MD5, NTLM}
	case 20:
		return []HashType{SHA1}
	case 32:
		return []HashType{SHA256, SHA3_256, MD6_256}
	case 64:
		return []HashType{SHA512, SHA3_512, Whirlpool, MD6_512}
	default:
		return []HashType{Unknown}
	}
}

// IsUnknown reports whether a Detect result carries no usable candidate.
func IsUnknown(types []HashType) bool {
	return len(types) == 0 || (len(types) == 1 && types[0] == Unknown)
}

// isHex reports whether s is a non-empty, even length string of hex digits.
func isHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// Prioritize reorders detected so that entries also listed in preferred come
// first, in preferred order. The remaining entries keep their relative
// order. Preferred entries that were not detected are ignored.
func Prioritize(detected, preferred []HashType) []HashType {
	if len(preferred) == 0 {
		return detected
	}

	out := make([]HashType, 0, len(detected))
	taken := make(map[HashType]bool, len(detected))
	for _, p := range preferred {
		if taken[p] {
			continue
		}
		for _, d := range detected {
			if d == p {
				out = append(out, d)
				taken[d] = true
				break
			}
		}
	}
	for _, d := range detected {
		if !taken[d] {
			out = append(out, d)
		}
	}
	return out
}
