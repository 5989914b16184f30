package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanTextNormalizesLines(t *testing.T) {
	raw := "  John Smith  \n\n\n   SKILLS   \n\nPython, Docker\n"

	assert.Equal(t, "John Smith\nSKILLS\nPython, Docker", CleanText(raw))
}

func TestCleanTextEmptyInput(t *testing.T) {
	assert.Equal(t, "", CleanText("   \n\n  \n"))
}

func TestExtractTextMissingFile(t *testing.T) {
	parser := NewPDFParserService()

	_, err := parser.ExtractText(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	_, err = parser.ExtractTextWithMetaData(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
