package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type (
	// FileID identifies a stylesheet within a FileSet.
	FileID uint32
	// FileFlags record what happened to a stylesheet while it was loaded.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File is one loaded stylesheet.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags

	// lineStarts[i] is the byte offset where line i+1 begins.
	lineStarts []uint32
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32 // bytes
}

func (p LineCol) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

func indexLines(content []byte) []uint32 {
	starts := make([]uint32, 1, len(content)/32+1)
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, uint32(i+1)) // #nosec G115 -- content length checked by Add
		}
	}
	return starts
}

// LineCount is the number of lines; a trailing newline opens an empty one.
func (f *File) LineCount() int { return len(f.lineStarts) }

// Position converts a byte offset into a line and column. Offsets past the
// end clamp to the end of content.
func (f *File) Position(off uint32) LineCol {
	size, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	off = min(off, size)
	// индекс последней строки, начинающейся не позже off
	i, found := slices.BinarySearch(f.lineStarts, off)
	if !found {
		i--
	}
	line, err := safecast.Conv[uint32](i + 1)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	return LineCol{Line: line, Col: off - f.lineStarts[i] + 1}
}

// GetLine возвращает строку с заданным номером (1-based) без перевода
// строки. Несуществующая строка даёт пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[lineNum-1]
	end := uint32(len(f.Content)) // #nosec G115 -- content length checked by Add
	if int(lineNum) < len(f.lineStarts) {
		end = f.lineStarts[lineNum] - 1
	}
	return string(f.Content[start:end])
}

// Text returns the content covered by r.
func (f *File) Text(r Region) string {
	end := min(int(r.End), len(f.Content))
	start := min(int(r.Start), end)
	return string(f.Content[start:end])
}
