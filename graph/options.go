package graph

import (
	"runtime"

	"github.com/spf13/pflag"
)

type Options struct {
	Name             string // Name of the input graph.
	NumThreads       uint32 // Number of threads to use for parallelism.
	DebugLevel       uint8  // 0 info, 1 debug, 2 and above trace.
	Undirected       bool   // Add a mirrored edge for every input edge.
	Transpose        bool   // Reverse src and dst of every input edge.
	CheckCorrectness bool   // Validate the labeling and print statistics after the run.
	OracleCompare    bool   // Compare against an independent BFS after the run.
	WriteVertexProps bool   // Save vertex labels to disk at the end.
	NoColour         bool   // Remove the colouring from the log output.
	Profile          bool   // Write a CPU profile of the traversal.
	PprofAddr        string // If set, serve pprof on this address.
	MetricsAddr      string // If set, serve prometheus metrics on this address.
}

func DefaultOptions() Options {
	return Options{NumThreads: uint32(runtime.NumCPU())}
}

// BindFlags registers the graph options on fs, writing parsed values into o.
// Declare your own flags on the same set before or after calling this.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.Name, "graph", "g", o.Name, "Graph file (edge list: one \"src dst\" pair per line, '#' or '%' comments).")
	fs.Uint32VarP(&o.NumThreads, "threads", "t", o.NumThreads, "Thread count for the traversal.")
	fs.Uint8Var(&o.DebugLevel, "debug", o.DebugLevel, "Extra debug output. Level 0 for info, 1 for debug, 2 for trace.")
	fs.BoolVarP(&o.Undirected, "undirected", "u", o.Undirected, "Interpret the input graph as undirected (add a mirrored edge for each edge).")
	fs.BoolVar(&o.Transpose, "transpose", o.Transpose, "Interpret the input edges in reverse (flip src and dst).")
	fs.BoolVarP(&o.CheckCorrectness, "check", "c", o.CheckCorrectness, "Validate the labeling after execution and print statistics.")
	fs.BoolVarP(&o.OracleCompare, "oracle", "o", o.OracleCompare, "Compare to an independently computed BFS upon finishing.")
	fs.BoolVarP(&o.WriteVertexProps, "props", "p", o.WriteVertexProps, "Save vertex labels to disk at the end.")
	fs.BoolVar(&o.NoColour, "nc", o.NoColour, "Removes the colouring from the log output.")
	fs.BoolVar(&o.Profile, "profile", o.Profile, "Profile the traversal and create a pprof file.")
	fs.StringVar(&o.PprofAddr, "pprof", o.PprofAddr, "If set, will serve pprof on the given address:port. E.g. \"0.0.0.0:6060\".")
	fs.StringVar(&o.MetricsAddr, "metrics", o.MetricsAddr, "If set, will serve prometheus metrics on the given address:port.")
}
