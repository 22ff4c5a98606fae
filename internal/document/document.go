// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document turns uploaded files into plain text. PDFs are read with
// ledongthuc/pdf, .docx files through their word/document.xml text runs and
// anything else is decoded as UTF-8 with invalid bytes dropped.
package document

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MinTextLength is the shortest text, in characters, worth analyzing.
const MinTextLength = 100

var (
	// ErrTextTooShort is returned by Validate for text under MinTextLength.
	ErrTextTooShort = errors.New("text too short")

	// ErrUnsupportedFormat is returned for legacy binary .doc files.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)

// FromFile reads path and extracts its text.
func FromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return FromBytes(data, filepath.Base(path))
}

// FromBytes extracts text from data, choosing the decoder by the filename
// extension.
func FromBytes(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return pdfText(data)
	case ".docx":
		return docxText(data)
	case ".doc":
		return "", fmt.Errorf("%s: %w", filename, ErrUnsupportedFormat)
	default:
		return strings.ToValidUTF8(string(data), ""), nil
	}
}

// Validate rejects text shorter than MinTextLength characters.
func Validate(text string) error {
	if utf8.RuneCountInString(text) < MinTextLength {
		return ErrTextTooShort
	}
	return nil
}

// pdfText concatenates the plain text of every page. Pages that fail to
// decode are skipped.
func pdfText(data []byte) (text string, err error) {
	// The PDF parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parsing PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// docxText reads the paragraphs of word/document.xml. Each <w:p> ends a
// line; <w:tab/> and <w:br/> become a tab and a newline.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", fmt.Errorf("docx has no word/document.xml")
	}

	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("opening word/document.xml: %w", err)
	}
	defer rc.Close()

	var b strings.Builder
	dec := xml.NewDecoder(rc)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing word/document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
