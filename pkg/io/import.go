package io

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/coalition/pkg/ballot"
	"github.com/matzehuels/coalition/pkg/errors"
)

// DefaultHeaderLines is the header length of the reference election files.
const DefaultHeaderLines = 23

// ReadOptions configures [ReadBallots].
type ReadOptions struct {
	// HeaderLines is the number of leading lines to skip. Negative values
	// are treated as zero.
	HeaderLines int
	// Candidates, when positive, rejects ballots naming ids outside
	// [1, Candidates] or naming a candidate twice.
	Candidates int
}

// ReadBallots decodes a count-weighted ballot file from r into a profile.
//
// ReadBallots returns an INVALID_FORMAT error naming the line for a
// malformed record, and an INVALID_BALLOT error for a ballot that fails
// validation. It does not close r.
func ReadBallots(r io.Reader, opts ReadOptions) (ballot.Profile, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var p ballot.Profile
	line := 0
	for sc.Scan() {
		line++
		if line <= opts.HeaderLines {
			continue
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		countText, votes, ok := strings.Cut(text, ":")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: missing ':' in %q", line, text)
		}
		count, err := strconv.Atoi(strings.TrimSpace(countText))
		if err != nil || count < 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: bad voter count %q", line, countText)
		}
		b, err := ballot.ParseBallot(strings.TrimSpace(votes))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBallot, err, "line %d", line)
		}
		if opts.Candidates > 0 {
			if err := b.Validate(opts.Candidates); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidBallot, err, "line %d", line)
			}
		}
		for range count {
			p = append(p, b.Clone())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read ballots")
	}
	return p, nil
}

// ImportBallots reads the ballot file at path. See [ReadBallots].
func ImportBallots(path string, opts ReadOptions) (ballot.Profile, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBallots(f, opts)
}

// ReadProfile decodes a profile file written by [WriteProfile].
func ReadProfile(r io.Reader) (ballot.Profile, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	p := make(ballot.Profile, len(lines))
	for i, text := range lines {
		b, err := ballot.ParseBallot(text)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBallot, err, "line %d", i+1)
		}
		p[i] = b
	}
	return p, nil
}

// ImportProfile reads the profile file at path. See [ReadProfile].
func ImportProfile(path string) (ballot.Profile, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadProfile(f)
}

func readLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), " \t\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read lines")
	}
	return lines, nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	return f, nil
}
