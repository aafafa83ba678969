package graph

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ScottSallinen/hopdist/utils"
	"github.com/rs/zerolog/log"
)

var ErrMalformedEdge = errors.New("malformed edge line")

const SCAN_BUFFER_SIZE = 1 << 16

// LoadEdgeList reads the edge list named by options.Name.
func LoadEdgeList(options Options) (*Graph, error) {
	file, err := os.Open(options.Name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	watch := utils.Watch{}
	watch.Start()
	g, err := ReadEdgeList(file, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", options.Name, err)
	}
	log.Info().Msg("Loaded " + options.Name + " in (ms) " + utils.V(watch.Stop().Milliseconds()))
	return g, nil
}

// ReadEdgeList parses "src dst" lines. Extra fields (weights, timestamps) are ignored;
// blank lines and lines starting with '#' or '%' are skipped.
func ReadEdgeList(r io.Reader, options Options) (*Graph, error) {
	b := NewBuilder(options)
	lines := utils.NewFastFileLines(SCAN_BUFFER_SIZE)
	fields := make([]string, 4)
	lineNum := 0
	for line := lines.Scan(r); line != nil; line = lines.Scan(r) {
		lineNum++
		if len(line) > 0 && (line[0] == '#' || line[0] == '%') {
			continue
		}
		n := utils.FastFields(fields, line)
		if n == 0 {
			continue
		}
		if n < 2 {
			return nil, fmt.Errorf("%w: line %d: expected src and dst", ErrMalformedEdge, lineNum)
		}
		src, okSrc := utils.ToIntStr(fields[0])
		dst, okDst := utils.ToIntStr(fields[1])
		if !okSrc || !okDst {
			return nil, fmt.Errorf("%w: line %d: %q %q", ErrMalformedEdge, lineNum, fields[0], fields[1])
		}
		b.AddEdge(RawType(src), RawType(dst))
	}
	if err := lines.Err(); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
