package parser

// MayBeComplete is a cheap framing check for stream readers: it reports
// whether data, ignoring surrounding whitespace, ends with the byte its first
// byte calls for. A true result does not mean data parses, and a false
// result does not mean it never will.
func MayBeComplete(data []byte) bool {
	start, end := 0, len(data)
	for start < end && isWhitespace(data[start]) {
		start++
	}
	for end > start && isWhitespace(data[end-1]) {
		end--
	}
	if end-start < 2 {
		return false
	}
	last := data[end-1]
	switch data[start] {
	case '{':
		return last == '}'
	case '[':
		return last == ']'
	case '"':
		return last == '"'
	case 'f', 't':
		return last == 'e'
	case 'n':
		return last == 'l'
	default:
		return true
	}
}
