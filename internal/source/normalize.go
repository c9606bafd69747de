package source

import (
	"bytes"

	"golang.org/x/text/unicode/norm"
)

// LoadOptions control normalisation applied by FileSet.AddNormalized.
type LoadOptions struct {
	// NFC rewrites the content into Unicode normalization form C.
	NFC bool
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// normalizer rewrites content and reports whether anything changed.
type normalizer struct {
	flag FileFlags
	fn   func([]byte) ([]byte, bool)
}

func (o LoadOptions) pipeline() []normalizer {
	steps := []normalizer{
		{FileHadBOM, stripBOM},
		{FileNormalizedCRLF, foldCRLF},
	}
	if o.NFC {
		steps = append(steps, normalizer{FileNormalizedNFC, composeNFC})
	}
	return steps
}

func stripBOM(content []byte) ([]byte, bool) {
	if rest, ok := bytes.CutPrefix(content, bom); ok {
		return rest, true
	}
	return content, false
}

// foldCRLF заменяет \r\n на \n, одиночные \r остаются.
func foldCRLF(content []byte) ([]byte, bool) {
	crlf := []byte("\r\n")
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte("\n")), true
}

// composeNFC leaves already normal (e.g. ASCII) content untouched.
func composeNFC(content []byte) ([]byte, bool) {
	if norm.NFC.IsNormal(content) {
		return content, false
	}
	return norm.NFC.Bytes(content), true
}
