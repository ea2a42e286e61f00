package domain

import (
	"fmt"
	"path"
	"strings"
	"unicode"
)

// MaxFileNameLength is the longest accepted file name, in bytes.
const MaxFileNameLength = 255

// forbiddenFileNameChars may not appear in file names.
const forbiddenFileNameChars = `\/:*?"<>|`

// NormalizeFileName validates name and appends ".txt" when it has no extension.
// The length limit applies to name as given, before the suffix.
func NormalizeFileName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidFileName)
	}
	if strings.ContainsAny(name, forbiddenFileNameChars) {
		return "", fmt.Errorf("%w: %q contains one of %s", ErrInvalidFileName, name, forbiddenFileNameChars)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("%w: %q contains whitespace", ErrInvalidFileName, name)
	}
	if len(name) > MaxFileNameLength {
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidFileName, MaxFileNameLength)
	}
	if path.Ext(name) == "" {
		name += ".txt"
	}
	return name, nil
}

// NormalizeName trims a project, mark or group name and rejects blanks.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// Slugify turns a project name into a file-system friendly stem.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "project"
	}
	return slug
}
