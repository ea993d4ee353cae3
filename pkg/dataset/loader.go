package dataset

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dd0wney/neurograph/pkg/graph"
)

// ErrMalformedData is returned when a sequence file cannot be parsed.
var ErrMalformedData = fmt.Errorf("malformed sequence file")

// LoadSequenceFile parses one subject's recording: a header line
// followed by whitespace-separated rows of
//
//	vertex1 vertex2 timestep weight
//
// with 1-based vertex and timestep indices. The first weight seen for
// an unordered pair at a timestep wins; later duplicates are ignored.
// The subject name is the file stem up to the first underscore.
func LoadSequenceFile(path string, label Label, n, t int) (*Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sequence file: %w", err)
	}
	defer f.Close()

	weights := make([][][]float64, t)
	seen := make([][][]bool, t)
	for i := range weights {
		weights[i] = make([][]float64, n)
		seen[i] = make([][]bool, n)
		for u := range weights[i] {
			weights[i][u] = make([]float64, n)
			seen[i][u] = make([]bool, n)
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if line == 1 {
			continue // header
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: %s:%d: %d fields, want 4", ErrMalformedData, path, line, len(fields))
		}

		u, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: vertex %q", ErrMalformedData, path, line, fields[0])
		}
		v, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: vertex %q", ErrMalformedData, path, line, fields[1])
		}
		ts, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: timestep %q", ErrMalformedData, path, line, fields[2])
		}
		w, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: weight %q", ErrMalformedData, path, line, fields[3])
		}

		if u < 1 || u > n || v < 1 || v > n {
			return nil, fmt.Errorf("%w: %s:%d: vertex pair (%d,%d) outside [1,%d]", ErrMalformedData, path, line, u, v, n)
		}
		if ts < 1 || ts > t {
			return nil, fmt.Errorf("%w: %s:%d: timestep %d outside [1,%d]", ErrMalformedData, path, line, ts, t)
		}

		// Seen pairs are tracked separately so a recorded zero weight
		// still counts as the first weight for the pair.
		if seen[ts-1][u-1][v-1] {
			continue // keep the first weight recorded for the pair
		}
		seen[ts-1][u-1][v-1] = true
		seen[ts-1][v-1][u-1] = true

		m := weights[ts-1]
		m[u-1][v-1] = w
		m[v-1][u-1] = w
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read sequence file %s: %w", path, err)
	}

	graphs := make([]*graph.Graph, t)
	for i := range weights {
		g, err := graph.NewN(n, weights[i])
		if err != nil {
			return nil, fmt.Errorf("%s timestep %d: %w", path, i+1, err)
		}
		graphs[i] = g
	}

	return &Sequence{
		Subject: subjectName(path),
		Label:   label,
		Graphs:  graphs,
	}, nil
}

// subjectName extracts the subject identifier from a file name like
// 017_rest.txt -> "017".
func subjectName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.Index(stem, "_"); i > 0 {
		return stem[:i]
	}
	return stem
}

// LoadDir loads every regular file in dir as one sequence with the
// given label, in sorted file-name order.
func LoadDir(dir string, label Label, n, t int) ([]*Sequence, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	seqs := make([]*Sequence, 0, len(names))
	for _, name := range names {
		seq, err := LoadSequenceFile(filepath.Join(dir, name), label, n, t)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
	}
	return seqs, nil
}

// LoadDirs loads one directory per class label and assembles the full
// dataset.
func LoadDirs(labels LabelPair, dirs map[Label]string, n, t int) (*Dataset, error) {
	var seqs []*Sequence
	for _, label := range labels {
		dir, ok := dirs[label]
		if !ok {
			return nil, fmt.Errorf("%w: no directory configured for label %q", ErrInconsistentShape, label)
		}
		loaded, err := LoadDir(dir, label, n, t)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, loaded...)
	}
	return New(labels, seqs)
}
