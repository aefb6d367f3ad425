package metadata

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// ErrAuthorNotResolved is returned when no name can be read from a creator
var ErrAuthorNotResolved = errors.New("author not resolved")

// authorPattern keeps what precedes the dates or role of a catalogued creator,
// e.g. "Christine de Pizan (1364?-1431?). Auteur du texte" -> "Christine de Pizan"
var authorPattern = regexp.MustCompile(`^(.+)\s[(|.]`)

// ResolveAuthor extracts the author name from a manifest creator
func ResolveAuthor(creator string) (string, error) {
	m := authorPattern.FindStringSubmatch(strings.TrimSpace(creator))
	if m == nil {
		return "", ErrAuthorNotResolved
	}
	return m[1], nil
}

// authorID derives an xml:id from the first three letters of a name
func authorID(name string) string {
	var id []rune
	for _, r := range name {
		if !unicode.IsLetter(r) {
			continue
		}
		id = append(id, r)
		if len(id) == 3 {
			break
		}
	}
	return string(id)
}
