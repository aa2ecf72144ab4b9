// Package isbn validates ISBN-10 and ISBN-13 identifiers by checksum.
package isbn

import "strings"

// Clean removes hyphens and spaces and trims the result.
func Clean(s string) string {
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, " ", "")
	return strings.TrimSpace(s)
}

// Valid reports whether s is a well-formed ISBN-10 or ISBN-13 with a correct
// check digit. Hyphens and spaces are ignored.
func Valid(s string) bool {
	s = Clean(s)
	switch len(s) {
	case 10:
		return valid10(s)
	case 13:
		return valid13(s)
	default:
		return false
	}
}

func valid10(s string) bool {
	sum := 0
	for i := 0; i < 9; i++ {
		if !isDigit(s[i]) {
			return false
		}
		sum += int(s[i]-'0') * (10 - i)
	}

	switch last := s[9]; {
	case last == 'X':
		sum += 10
	case isDigit(last):
		sum += int(last - '0')
	default:
		return false
	}

	return sum%11 == 0
}

func valid13(s string) bool {
	for i := 0; i < 13; i++ {
		if !isDigit(s[i]) {
			return false
		}
	}

	sum := 0
	for i := 0; i < 12; i++ {
		d := int(s[i] - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}

	checksum := (10 - sum%10) % 10
	return int(s[12]-'0') == checksum
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
