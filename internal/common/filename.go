package common

import (
	"fmt"
	"regexp"
	"time"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// SanitizeFileToken collapses runs of whitespace into single underscores so
// the token is safe inside a generated file name
func SanitizeFileToken(s string) string {
	return whitespaceRe.ReplaceAllString(s, "_")
}

// BulkDocumentFileName derives the file name for the nth item (1-based) of a
// bulk generation run, e.g. "Service_Contract_Item2_2026-08-28.docx"
func BulkDocumentFileName(templateName string, itemNumber int, now time.Time) string {
	return fmt.Sprintf("%s_Item%d_%s.docx",
		SanitizeFileToken(templateName), itemNumber, now.UTC().Format("2006-01-02"))
}

// SingleDocumentFileName derives the file name for a single-document run,
// e.g. "NDA_Acme_Corp_2026-08-28.docx"
func SingleDocumentFileName(templateName, subject string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s.docx",
		SanitizeFileToken(templateName), SanitizeFileToken(subject), now.UTC().Format("2006-01-02"))
}

// DownloadURL returns the opaque download locator for a document ID
func DownloadURL(documentID string) string {
	return fmt.Sprintf("/mock-download/%s.docx", documentID)
}
