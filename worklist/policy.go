package worklist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Items move between workers in chunks of this many.
const CHUNK_SIZE = 256

var ErrUnknownPolicy = errors.New("unknown worklist policy")

// Policy selects the scheduling order for ForEach.
type Policy uint8

const (
	// Per-worker chunked queue; chunks are consumed oldest first.
	ChunkFIFO Policy = iota
	// Per-worker chunked stack; the most recent chunk is consumed first.
	ChunkLIFO
	// Rounds: items pushed while processing a round form the next round.
	BulkSynchronous
)

var policyNames = [...]string{
	ChunkFIFO:       "chunk-fifo",
	ChunkLIFO:       "chunk-lifo",
	BulkSynchronous: "bulk-synchronous",
}

func (p Policy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "policy(" + strconv.Itoa(int(p)) + ")"
}

func ParsePolicy(s string) (Policy, error) {
	for i, name := range policyNames {
		if strings.EqualFold(s, name) {
			return Policy(i), nil
		}
	}
	return ChunkFIFO, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Set and Type make a *Policy usable as a command line flag value.
func (p *Policy) Set(s string) error { return p.UnmarshalText([]byte(s)) }
func (p *Policy) Type() string      { return "policy" }
