// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>References</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">[1] Kucsko G (2013). </w:t></w:r><w:r><w:t>doi:10.1038/nature12373</w:t></w:r></w:p>
    <w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDocx(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestFromBytes_PlainText(t *testing.T) {
	got, err := FromBytes([]byte("hello\nworld"), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", got)
}

func TestFromBytes_DropsInvalidUTF8(t *testing.T) {
	got, err := FromBytes([]byte("caf\xc3\xa9 \xff\xfeok"), "upload")
	require.NoError(t, err)
	assert.Equal(t, "café ok", got)
}

func TestFromBytes_Docx(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   sampleDocumentXML,
	})

	got, err := FromBytes(data, "Paper.DOCX")
	require.NoError(t, err)
	assert.Equal(t, "References\n[1] Kucsko G (2013). doi:10.1038/nature12373\na\tb\nc\n", got)
}

func TestFromBytes_DocxWithoutBody(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/styles.xml": `<styles/>`})
	_, err := FromBytes(data, "paper.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestFromBytes_CorruptDocx(t *testing.T) {
	_, err := FromBytes([]byte("not a zip"), "paper.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening docx")
}

func TestFromBytes_CorruptPDF(t *testing.T) {
	_, err := FromBytes([]byte("%PDF-1.4 garbage"), "paper.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing PDF")
}

func TestFromBytes_LegacyDoc(t *testing.T) {
	_, err := FromBytes([]byte{0xd0, 0xcf, 0x11, 0xe0}, "paper.doc")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.md")
	require.NoError(t, os.WriteFile(path, []byte("# Refs\n"), 0o644))

	got, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Refs\n", got)

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(""), ErrTextTooShort)
	assert.ErrorIs(t, Validate(strings.Repeat("x", MinTextLength-1)), ErrTextTooShort)
	assert.NoError(t, Validate(strings.Repeat("x", MinTextLength)))
	// Characters, not bytes.
	assert.ErrorIs(t, Validate(strings.Repeat("é", MinTextLength-1)), ErrTextTooShort)
}
