// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType IdentifierType
		wantNorm string
	}{
		{"arxiv bare", "2301.07041", TypeArxiv, "2301.07041"},
		{"arxiv prefixed", "arXiv:2301.07041", TypeArxiv, "2301.07041"},
		{"arxiv versioned", "2301.07041v2", TypeArxiv, "2301.07041v2"},
		{"arxiv five digit", "2301.12345", TypeArxiv, "2301.12345"},
		{"doi simple", "10.1145/1234567.1234568", TypeDOI, "10.1145/1234567.1234568"},
		{"doi nature", "10.1038/s41586-024-07487-w", TypeDOI, "10.1038/s41586-024-07487-w"},
		{"url https", "https://example.com/paper.pdf", TypeURL, "https://example.com/paper.pdf"},
		{"url http", "http://example.com/paper.pdf", TypeURL, "http://example.com/paper.pdf"},
		{"unknown bare word", "not-an-id", TypeUnknown, "not-an-id"},
		{"unknown empty", "", TypeUnknown, ""},
		{"doi missing suffix", "10.1145/", TypeUnknown, "10.1145/"},
		{"ftp url rejected", "ftp://example.com/paper.pdf", TypeUnknown, "ftp://example.com/paper.pdf"},
		{"whitespace trimmed", "  2301.07041  ", TypeArxiv, "2301.07041"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotNorm := Resolve(tt.input)
			if gotType != tt.wantType {
				t.Errorf("Resolve(%q) type = %v, want %v", tt.input, gotType, tt.wantType)
			}
			if gotNorm != tt.wantNorm {
				t.Errorf("Resolve(%q) norm = %q, want %q", tt.input, gotNorm, tt.wantNorm)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		idType   IdentifierType
		norm     string
		wantSlug string
	}{
		{"arxiv", TypeArxiv, "2301.07041", "2301.07041"},
		{"doi", TypeDOI, "10.1145/1234567.1234568", "10.1145-1234567.1234568"},
		{"url with filename", TypeURL, "https://example.com/my-paper.pdf", "my-paper"},
		{"url no filename", TypeURL, "https://example.com/", urlHashSlug("https://example.com/")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slug(tt.idType, tt.norm)
			if got != tt.wantSlug {
				t.Errorf("Slug(%v, %q) = %q, want %q", tt.idType, tt.norm, got, tt.wantSlug)
			}
		})
	}
}

func TestPDFURL(t *testing.T) {
	tests := []struct {
		name    string
		idType  IdentifierType
		norm    string
		wantURL string
	}{
		{"arxiv", TypeArxiv, "2301.07041", arxivPDFBase + "2301.07041"},
		{"doi", TypeDOI, "10.1145/1234567", doiBase + "10.1145/1234567"},
		{"url passthrough", TypeURL, "https://example.com/paper.pdf", "https://example.com/paper.pdf"},
		{"unknown empty", TypeUnknown, "foo", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PDFURL(tt.idType, tt.norm)
			if got != tt.wantURL {
				t.Errorf("PDFURL(%v, %q) = %q, want %q", tt.idType, tt.norm, got, tt.wantURL)
			}
		})
	}
}
