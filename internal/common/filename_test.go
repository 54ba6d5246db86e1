package common

import (
	"testing"
	"time"
)

func TestSanitizeFileToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces", "Service Contract", "Service_Contract"},
		{"multiple spaces", "Deed  of   Sale", "Deed_of_Sale"},
		{"tabs and newlines", "A\tB\nC", "A_B_C"},
		{"no whitespace", "NDA", "NDA"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileToken(tt.input); got != tt.expected {
				t.Errorf("SanitizeFileToken(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBulkDocumentFileName(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	got := BulkDocumentFileName("Service Contract", 2, now)
	want := "Service_Contract_Item2_2026-08-28.docx"
	if got != want {
		t.Errorf("BulkDocumentFileName = %q, want %q", got, want)
	}
}

func TestSingleDocumentFileName(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

	got := SingleDocumentFileName("NDA", "Acme Corp", now)
	want := "NDA_Acme_Corp_2026-08-28.docx"
	if got != want {
		t.Errorf("SingleDocumentFileName = %q, want %q", got, want)
	}
}

func TestDownloadURL(t *testing.T) {
	got := DownloadURL("doc_abc123")
	want := "/mock-download/doc_abc123.docx"
	if got != want {
		t.Errorf("DownloadURL = %q, want %q", got, want)
	}
}
