package io

import (
	"io"
)

// Comparison summarizes two profile files line by line.
type Comparison struct {
	Original    int // ballots in the first file
	Manipulated int // ballots in the second file
	Changed     int // voter positions whose ballots differ
}

// Compare reads two profile files and counts differing lines. Lines present
// in only one file count as changed.
func Compare(original, manipulated io.Reader) (Comparison, error) {
	a, err := readLines(original)
	if err != nil {
		return Comparison{}, err
	}
	b, err := readLines(manipulated)
	if err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{Original: len(a), Manipulated: len(b)}
	shared := min(len(a), len(b))
	for i := range shared {
		if a[i] != b[i] {
			cmp.Changed++
		}
	}
	cmp.Changed += max(len(a), len(b)) - shared
	return cmp, nil
}

// CompareFiles runs [Compare] on two paths.
func CompareFiles(originalPath, manipulatedPath string) (Comparison, error) {
	a, err := open(originalPath)
	if err != nil {
		return Comparison{}, err
	}
	defer a.Close()
	b, err := open(manipulatedPath)
	if err != nil {
		return Comparison{}, err
	}
	defer b.Close()
	return Compare(a, b)
}
