package source

import "fmt"

// Region is a half-open byte range [Start, End) of one file.
type Region struct {
	File       FileID
	Start, End uint32
}

func (r Region) Len() uint32 { return r.End - r.Start }

func (r Region) String() string { return fmt.Sprintf("#%d[%d:%d]", r.File, r.Start, r.End) }

// Union extends r to include other. Regions of different files stay apart.
func (r Region) Union(other Region) Region {
	if r.File != other.File {
		return r
	}
	return Region{File: r.File, Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}
