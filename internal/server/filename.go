package server

import "strings"

// filesystemUnsafe are the characters stripped from titles before they are
// used as attachment filenames.
const filesystemUnsafe = `<>:"/\|?*`

// sanitizeTitle strips filesystem-unsafe characters from a content title so
// it can be used directly in a Content-Disposition filename.
func sanitizeTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(filesystemUnsafe, r) {
			return -1
		}
		return r
	}, title)

	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return "download"
	}
	return cleaned
}

// snakeTitle lower-snake-cases a title for thumbnail attachment filenames:
// every non-alphanumeric rune becomes an underscore.
func snakeTitle(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, title)

	if strings.Trim(cleaned, "_") == "" {
		return "thumbnail"
	}
	return cleaned
}
