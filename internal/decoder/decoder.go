// Package decoder turns document files into a uniform sequence of pages, each
// exposing an optional table grid of cell strings and a plain-text rendering.
// Extraction never looks at file formats; everything format-specific ends here.
package decoder

import (
	"fmt"
	"path/filepath"
	"strings"

	"matlist/internal"
)

// Kind reports which decoder is responsible for a file, by extension.
func Kind(path string) (internal.DocumentKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return internal.DocPDF, true
	case ".html", ".htm":
		return internal.DocHTML, true
	case ".xlsx":
		return internal.DocXLSX, true
	}
	return "", false
}

func Supported(path string) bool {
	_, ok := Kind(path)
	return ok
}

func Open(path string) (internal.Document, error) {
	kind, ok := Kind(path)
	if !ok {
		return internal.Document{}, fmt.Errorf("unsupported document type: %s", filepath.Base(path))
	}

	var (
		pages []internal.Page
		err   error
	)
	switch kind {
	case internal.DocPDF:
		pages, err = decodePDF(path)
	case internal.DocHTML:
		pages, err = decodeHTML(path)
	case internal.DocXLSX:
		pages, err = decodeXLSX(path)
	}
	if err != nil {
		return internal.Document{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return internal.Document{
		Source: SourceName(path),
		Path:   path,
		Kind:   kind,
		Pages:  pages,
	}, nil
}

// SourceName is the document label carried into every extracted record: the
// file name without its extension.
func SourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
