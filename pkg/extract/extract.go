// Package extract converts uploaded loan-service documents (PDF, DOCX, plain
// text and email formats) into normalized text for the classification
// pipeline.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format tags the source format of an extracted document.
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatText  Format = "txt"
	FormatEmail Format = "email"
)

// ErrUnsupportedFormat is returned when a file extension has no registered
// reader. Unlike per-format parse failures this is fatal for the file.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Failure describes a per-format parse failure. The pipeline deliberately
// does not abort on a single bad file; the failure travels with the document
// so downstream stages can tell real content from a failed extraction.
type Failure struct {
	Format Format
	Reason string
}

// Document is the result of extracting one file. When Failure is nil, Text
// holds the extracted content (normalized for PDF/DOCX/TXT, header-prefixed
// raw text for emails). When Failure is set, Text holds a human-readable
// placeholder describing the failure, preserving the soft-failure contract
// of the upload flow.
type Document struct {
	Path    string
	Format  Format
	Text    string
	Failure *Failure
}

// Failed reports whether extraction produced a placeholder instead of
// content.
func (d *Document) Failed() bool {
	return d.Failure != nil
}

// FromFile extracts text from the file at path, dispatching by extension.
// Recognized extensions: .pdf, .docx, .txt, .msg, .eml, .email. Any other
// extension returns ErrUnsupportedFormat.
func FromFile(path string) (*Document, error) {
	switch {
	case strings.HasSuffix(path, ".pdf"):
		return softExtract(path, FormatPDF, readPDF, "Error in extracting text from PDF"), nil
	case strings.HasSuffix(path, ".docx"):
		return softExtract(path, FormatDOCX, readDOCX, "Error in extracting text from DOCX"), nil
	case strings.HasSuffix(path, ".txt"):
		return softExtract(path, FormatText, readText, "Error in extracting text from TXT"), nil
	case strings.HasSuffix(path, ".msg"), strings.HasSuffix(path, ".eml"), strings.HasSuffix(path, ".email"):
		doc := softExtract(path, FormatEmail, readEmail, "Error in extracting text from email")
		if doc.Failure != nil {
			// The email placeholder carries the parser detail, matching the
			// verbosity the upload flow has always exposed for mail files.
			doc.Text = fmt.Sprintf("Error in extracting text from email: %s", doc.Failure.Reason)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func softExtract(path string, format Format, read func(string) (string, error), placeholder string) *Document {
	text, err := read(path)
	if err != nil {
		return &Document{
			Path:    path,
			Format:  format,
			Text:    placeholder,
			Failure: &Failure{Format: format, Reason: err.Error()},
		}
	}
	return &Document{Path: path, Format: format, Text: text}
}
