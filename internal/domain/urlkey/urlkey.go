// Package urlkey maps URLs to stable storage keys.
package urlkey

import "strings"

// Key returns the storage key for a URL: the scheme is stripped and every
// remaining non-alphanumeric byte is replaced with an underscore. The
// mapping is deterministic; distinct URLs in a configured set map to
// distinct keys as long as they differ in more than punctuation.
//
//	https://example.com/ -> example_com_
func Key(rawURL string) string {
	s := rawURL
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+len("://"):]
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
