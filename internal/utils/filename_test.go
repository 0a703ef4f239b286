package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFileName(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantExt  string
	}{
		{"report.pdf", "report", "pdf"},
		{"report.final.PDF", "report.final", "pdf"},
		{"notes", "notes", ""},
		{".bashrc", ".bashrc", ""},
		{"trailing.", "trailing.", ""},
		{"../../etc/passwd.txt", "passwd", "txt"},
		{`C:\Users\bob\thesis.docx`, "thesis", "docx"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, ext := SplitFileName(tt.in)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestValidExtension(t *testing.T) {
	assert.True(t, ValidExtension(""))
	assert.True(t, ValidExtension("pdf"))
	assert.True(t, ValidExtension("mp4"))
	assert.False(t, ValidExtension("tar.gz"))
	assert.False(t, ValidExtension("p/f"))
	assert.False(t, ValidExtension("pdfpdfpdfpdfpdfpdf"))
	assert.False(t, ValidExtension("пдф"))
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.Generate(), g.Generate()

	assert.True(t, IsUUID(a))
	assert.NotEqual(t, a, b)
	assert.False(t, IsUUID("not-a-uuid"))
}
