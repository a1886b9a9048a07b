// Package resource loads the newline-delimited decoy string and label files.
//
// Strings and labels are filtered differently: decoy strings are trimmed of
// surrounding whitespace, labels are kept verbatim. Blank lines are dropped
// from both. A file that cannot be read, or that has no entries left after
// filtering, is a configuration error wrapping [jobsec.ErrConfig].
package resource

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/calvinalkan/jobsec/internal/fs"
	"github.com/calvinalkan/jobsec/pkg/jobsec"
)

// maxLineSize bounds a single resource line.
const maxLineSize = 1 << 20

// LoadStrings loads decoy strings from path, trimming each line.
func LoadStrings(fsys fs.FS, path string) ([]string, error) {
	lines, err := readLines(fsys, path, strings.TrimSpace)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %w in %s", jobsec.ErrConfig, jobsec.ErrNoStrings, path)
	}

	return lines, nil
}

// LoadLabels loads labels from path. Lines are not trimmed.
//
// Whitespace-only lines are dropped and a trailing \r is stripped, so a
// label file with such lines or CRLF endings cycles differently than a
// loader that only skips empty lines.
func LoadLabels(fsys fs.FS, path string) ([]string, error) {
	lines, err := readLines(fsys, path, func(line string) string {
		if strings.TrimSpace(line) == "" {
			return ""
		}

		return line
	})
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %w in %s", jobsec.ErrConfig, jobsec.ErrNoLabels, path)
	}

	return lines, nil
}

// LoadPools loads both resources. The strings file is read first.
func LoadPools(fsys fs.FS, stringsPath, labelsPath string) (jobsec.Pools, error) {
	strs, err := LoadStrings(fsys, stringsPath)
	if err != nil {
		return jobsec.Pools{}, err
	}

	labels, err := LoadLabels(fsys, labelsPath)
	if err != nil {
		return jobsec.Pools{}, err
	}

	return jobsec.Pools{Strings: strs, Labels: labels}, nil
}

// readLines returns every line of path passed through filter, skipping the
// ones filter turns into "". Line endings (\n or \r\n) are stripped.
func readLines(fsys fs.FS, path string, filter func(string) string) ([]string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open %s: %w", jobsec.ErrConfig, path, err)
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := filter(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: unable to read %s: %w", jobsec.ErrConfig, path, err)
	}

	return lines, nil
}
