// Package pdftext reads page text and embedded document metadata from PDF
// files and guesses bibliographic fields from them.
package pdftext

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// DefaultMaxPages is how many leading pages are read. Bibliographic
// front matter (title, authors, abstract, DOI) sits on the first pages.
const DefaultMaxPages = 3

// Info holds the embedded document-information strings a PDF container
// may carry. All fields may be empty.
type Info struct {
	Title        string
	Author       string
	CreationDate string
}

// Document is the raw text of a PDF's leading pages plus its embedded
// metadata. Produced once per file and consumed immediately; not persisted.
type Document struct {
	Pages []string
	Info  Info
}

// Text returns the page texts joined in order.
func (d *Document) Text() string {
	return strings.Join(d.Pages, "\n")
}

// Read opens a PDF and extracts plain text from the first maxPages pages
// along with the document-information dictionary. Pages that fail to
// render are skipped; an unopenable file is an error.
func Read(path string, maxPages int) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	doc := &Document{}
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		doc.Pages = append(doc.Pages, text)
	}

	doc.Info = readInfo(r)
	return doc, nil
}

// readInfo pulls title/author/creation-date strings from the trailer's
// Info dictionary, tolerating their absence.
func readInfo(r *pdf.Reader) Info {
	var info Info
	dict := r.Trailer().Key("Info")
	if dict.Kind() != pdf.Dict {
		return info
	}
	if v := dict.Key("Title"); v.Kind() == pdf.String {
		info.Title = v.Text()
	}
	if v := dict.Key("Author"); v.Kind() == pdf.String {
		info.Author = v.Text()
	}
	if v := dict.Key("CreationDate"); v.Kind() == pdf.String {
		info.CreationDate = v.Text()
	}
	return info
}
