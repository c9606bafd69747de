package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var stylesheetSeeds = []string{
	"",
	".a{color:red}",
	".a, #b > c + d ~ e[href^=\"x\"]:hover::before { margin: 0 auto !important; }",
	"@media screen and (max-width: 600px) { .a { transition: opacity 1s } }",
	"@import url(\"a.css\");",
	"@font-face { font-family: X; src: url(x.woff) }",
	".g { background: linear-gradient(to right, rgba(0,0,0,.5), #fff); }",
	"/* c */ .a { /* d */ color: red; /* e */ }",
	".a { width: calc(100% - 2 * 10px) }",
	"a{}b{}c{}",
	".a { content: \"}\" }",
	".a { color: red",
	"@media { @supports (display: grid) { .a { display: grid } } }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range stylesheetSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.css файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".css" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
