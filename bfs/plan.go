package bfs

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/ScottSallinen/hopdist/worklist"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Edges per tile when a plan does not say otherwise.
const DEFAULT_EDGE_TILE_SIZE = 256

type Algorithm uint8

const (
	AsynchronousTile Algorithm = iota
	Asynchronous
	SynchronousTile
	Synchronous
)

var algorithmNames = [...]string{
	AsynchronousTile: "AsynchronousTile",
	Asynchronous:     "Asynchronous",
	SynchronousTile:  "SynchronousTile",
	Synchronous:      "Synchronous",
}

func (a Algorithm) Valid() bool { return int(a) < len(algorithmNames) }

func (a Algorithm) String() string {
	if a.Valid() {
		return algorithmNames[a]
	}
	return "Algorithm(" + strconv.Itoa(int(a)) + ")"
}

func ParseAlgorithm(s string) (Algorithm, error) {
	for i, name := range algorithmNames {
		if strings.EqualFold(s, name) {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedAlgorithm, s)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnrecognizedAlgorithm, a)
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	v, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Set and Type make a *Algorithm usable as a command line flag value.
func (a *Algorithm) Set(s string) error { return a.UnmarshalText([]byte(s)) }
func (a *Algorithm) Type() string      { return "algorithm" }

// Plan selects how a traversal is executed. It is built once and not modified during a run.
type Plan struct {
	Algorithm    Algorithm       `yaml:"algorithm"`
	EdgeTileSize uint64          `yaml:"edge_tile_size" validate:"gte=1"`
	Threads      int             `yaml:"threads" validate:"gte=0,lte=4096"` // 0 means runtime.NumCPU().
	Policy       worklist.Policy `yaml:"policy" validate:"lte=2"`           // Worklist for the asynchronous family.
	TrackWork    bool            `yaml:"track_work"`                        // Count bad and empty work.
}

func DefaultPlan() Plan {
	return Plan{Algorithm: SynchronousTile, EdgeTileSize: DEFAULT_EDGE_TILE_SIZE, Policy: worklist.ChunkFIFO}
}

func NewPlan(algorithm Algorithm, edgeTileSize uint64) Plan {
	p := DefaultPlan()
	p.Algorithm = algorithm
	p.EdgeTileSize = edgeTileSize
	return p
}

func (p Plan) threads() int {
	if p.Threads <= 0 {
		return runtime.NumCPU()
	}
	return p.Threads
}

var planValidate = validator.New()

// Validate reports ErrUnrecognizedAlgorithm for an unknown algorithm and
// ErrInvalidArgument for any other out of range field.
func (p Plan) Validate() error {
	if !p.Algorithm.Valid() {
		return fmt.Errorf("%w: %d", ErrUnrecognizedAlgorithm, p.Algorithm)
	}
	if err := planValidate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: plan field %s fails %s=%s", ErrInvalidArgument, verrs[0].Field(), verrs[0].Tag(), verrs[0].Param())
		}
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// LoadPlan reads a YAML plan file. Fields missing from the file keep their DefaultPlan values.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, err
	}
	return ParsePlan(data)
}

func ParsePlan(data []byte) (Plan, error) {
	p := DefaultPlan()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Plan{}, fmt.Errorf("%w: plan: %w", ErrInvalidArgument, err)
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}
