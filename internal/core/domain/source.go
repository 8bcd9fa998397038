package domain

import (
	"net/url"
	"path"
	"strings"
)

// Kind identifies the format of a document source.
// It is derived from the URL suffix unless configured explicitly.
type Kind string

const (
	// KindPDF is a PDF document.
	KindPDF Kind = "pdf"

	// KindHTML is an HTML page. This is the fallback kind: legal
	// portals serve pages under suffixes like .aspx or none at all.
	KindHTML Kind = "html"

	// KindPlaintext is a plain text file.
	KindPlaintext Kind = "plaintext"
)

// Source represents a configured remote document source.
// Sources are immutable and fixed at process start; the declaration
// order in configuration defines the passage ordering of the corpus.
type Source struct {
	// Title is the unique human-readable name of the source.
	Title string

	// URL is the remote location of the document.
	URL string

	// Kind is the document format, derived from the URL suffix.
	Kind Kind
}

// DeriveKind returns the document kind for a source URL.
// Only ".pdf" and ".txt" suffixes are special-cased; everything
// else is treated as HTML.
func DeriveKind(rawURL string) Kind {
	switch strings.ToLower(URLSuffix(rawURL)) {
	case ".pdf":
		return KindPDF
	case ".txt":
		return KindPlaintext
	default:
		return KindHTML
	}
}

// URLSuffix returns the file extension of a URL's path component,
// including the leading dot. Empty when the path has no extension
// or the URL cannot be parsed.
func URLSuffix(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return path.Ext(u.Path)
}
