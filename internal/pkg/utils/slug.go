package utils

import (
	"strings"
	"unicode"
)

// turkishFold maps the Turkish letters that ASCII folding gets wrong.
var turkishFold = map[rune]string{
	'ı': "i", 'İ': "i", 'ş': "s", 'Ş': "s",
	'ğ': "g", 'Ğ': "g", 'ç': "c", 'Ç': "c",
	'ö': "o", 'Ö': "o", 'ü': "u", 'Ü': "u",
}

// Slugify builds a URL-safe slug from a display name. Turkish characters are
// folded to their ASCII equivalents, everything else non-alphanumeric becomes
// a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range name {
		if folded, ok := turkishFold[r]; ok {
			b.WriteString(folded)
			lastHyphen = false
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
