package wistia

import "regexp"

var wistiaURLPattern = regexp.MustCompile(`(?i)https?://(?:[a-z0-9-]+\.)*(?:wistia\.com|wistia\.net|wi\.st)/[^\s"'<>]*`)

// DetectURLs returns every Wistia or wi.st link found in text, in order of
// appearance. Matching ignores case.
func DetectURLs(text string) []string {
	return wistiaURLPattern.FindAllString(text, -1)
}
