package content

import "strings"

// Slugify derives a URL-safe identifier from a title.
// Letters are lowercased, every run of characters outside [a-z0-9] becomes a
// single hyphen, and hyphens at either end are dropped.
//
//	Slugify("My App 2.0!")   // "my-app-2-0"
//	Slugify("  Hello--World") // "hello-world"
func Slugify(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
