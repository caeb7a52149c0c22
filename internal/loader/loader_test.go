package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatPDF, FormatFromPath("/tmp/report.pdf"))
	assert.Equal(t, FormatPDF, FormatFromPath("REPORT.PDF"))
	assert.Equal(t, FormatText, FormatFromPath("notes.txt"))
	assert.Equal(t, FormatText, FormatFromPath("README"))
}

func TestLoad_Text(t *testing.T) {
	text, err := Load([]byte("Hello world.\nSecond line."), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Hello world.\nSecond line.", text)
}

func TestLoad_NFC(t *testing.T) {
	decomposed := "Cafe\u0301"
	text, err := Load([]byte(decomposed), FormatText)
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", text)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(nil, FormatText)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Load([]byte{0xff, 0xfe, 0x00}, FormatText)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load([]byte("x"), Format("docx"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load([]byte("not a pdf"), FormatPDF)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("Some document text."), 0644))

	text, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Some document text.", text)

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
