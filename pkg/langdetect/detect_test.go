package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gotws/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  string
		expected string
	}{
		{name: "markdown extension", path: "docs/README.md", content: "# Title\n", expected: "Markdown"},
		{name: "markdown uppercase extension", path: "NOTES.MD", content: "text\n", expected: "Markdown"},
		{name: "go source", path: "cmd/main.go", content: "package main\n", expected: "Go"},
		{name: "shell shebang without extension", path: "bin/run", content: "#!/bin/bash\necho hi\n", expected: "Shell"},
		{name: "dockerfile by name", path: "Dockerfile", content: "FROM alpine\n", expected: "Dockerfile"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, langdetect.Detect(testCase.path, []byte(testCase.content)))
		})
	}
}

func TestIsMarkdown(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsMarkdown("Markdown"))
	assert.True(t, langdetect.IsMarkdown("gfm"))
	assert.False(t, langdetect.IsMarkdown("Go"))
	assert.False(t, langdetect.IsMarkdown(""))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		path            string
		content         []byte
		includeVendored bool
		expected        langdetect.SkipReason
	}{
		{name: "plain text", path: "notes.txt", content: []byte("hello  \n"), expected: langdetect.SkipNone},
		{name: "binary", path: "image.dat", content: []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}, expected: langdetect.SkipBinary},
		{name: "binary even when vendored allowed", path: "a.bin", content: []byte{0x00, 0x00}, includeVendored: true, expected: langdetect.SkipBinary},
		{name: "vendored", path: "vendor/github.com/pkg/errors/errors.go", content: []byte("package errors\n"), expected: langdetect.SkipVendored},
		{name: "node modules", path: "web/node_modules/left-pad/index.js", content: []byte("module.exports = 1\n"), expected: langdetect.SkipVendored},
		{name: "vendored included", path: "vendor/a/a.go", content: []byte("package a\n"), includeVendored: true, expected: langdetect.SkipNone},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, langdetect.Classify(testCase.path, testCase.content, testCase.includeVendored))
		})
	}
}
