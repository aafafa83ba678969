package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ScottSallinen/hopdist/bfs"
	"github.com/ScottSallinen/hopdist/cmd/common"
	"github.com/ScottSallinen/hopdist/graph"
	"github.com/ScottSallinen/hopdist/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errNoGraph = errors.New("a graph file is required (-g)")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("lp-bfs failed")
	}
}

func newRootCmd() *cobra.Command {
	options := graph.DefaultOptions()
	flagPlan := bfs.DefaultPlan()
	var planFile string
	var rawSource uint32
	var runs int

	cmd := &cobra.Command{
		Use:           "lp-bfs",
		Short:         "Compute hop distances from a source vertex of an edge list graph.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			utils.SetLoggerConsole(options.NoColour)
			utils.SetLevel(int(options.DebugLevel))
			if options.Name == "" {
				return errNoGraph
			}
			if runs < 1 {
				return fmt.Errorf("%w: runs must be at least 1, got %d", bfs.ErrInvalidArgument, runs)
			}
			plan, err := resolvePlan(cmd.Flags(), planFile, flagPlan, options.NumThreads)
			if err != nil {
				return err
			}
			return run(cmd.OutOrStdout(), options, plan, graph.RawType(rawSource), runs)
		},
	}

	fs := cmd.Flags()
	options.BindFlags(fs)
	fs.VarP(&flagPlan.Algorithm, "algorithm", "a", "Traversal algorithm: AsynchronousTile, Asynchronous, SynchronousTile or Synchronous.")
	fs.Uint64Var(&flagPlan.EdgeTileSize, "tile", flagPlan.EdgeTileSize, "Edges per tile for the tiled algorithms.")
	fs.Var(&flagPlan.Policy, "policy", "Worklist for the asynchronous algorithms: chunk-fifo, chunk-lifo or bulk-synchronous.")
	fs.BoolVar(&flagPlan.TrackWork, "track-work", flagPlan.TrackWork, "Count bad and empty work items (asynchronous algorithms).")
	fs.StringVar(&planFile, "plan", "", "YAML plan file. Plan flags given explicitly override its values.")
	fs.Uint32VarP(&rawSource, "source", "s", 0, "Raw id of the source vertex, as it appears in the input.")
	fs.IntVar(&runs, "runs", 1, "Number of traversals to run; each one resets the labels.")
	return cmd
}

// resolvePlan starts from the plan file when one is given, then applies the plan flags the user set.
func resolvePlan(fs *pflag.FlagSet, planFile string, flagPlan bfs.Plan, threads uint32) (bfs.Plan, error) {
	plan := flagPlan
	if planFile != "" {
		loaded, err := bfs.LoadPlan(planFile)
		if err != nil {
			return bfs.Plan{}, err
		}
		plan = loaded
		if fs.Changed("algorithm") {
			plan.Algorithm = flagPlan.Algorithm
		}
		if fs.Changed("tile") {
			plan.EdgeTileSize = flagPlan.EdgeTileSize
		}
		if fs.Changed("policy") {
			plan.Policy = flagPlan.Policy
		}
		if fs.Changed("track-work") {
			plan.TrackWork = flagPlan.TrackWork
		}
	}
	if fs.Changed("threads") || plan.Threads == 0 {
		plan.Threads = int(threads)
	}
	return plan, plan.Validate()
}

func run(out io.Writer, options graph.Options, plan bfs.Plan, rawSource graph.RawType, runs int) error {
	if options.PprofAddr != "" {
		common.ServePprof(options.PprofAddr)
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := bfs.NewMetrics(reg)
	if options.MetricsAddr != "" {
		common.ServeMetrics(options.MetricsAddr, reg)
	}

	g, err := graph.LoadEdgeList(options)
	if err != nil {
		return err
	}
	g.ComputeGraphStats()
	utils.MemoryStats()

	source, ok := g.VertexIndex(rawSource)
	if !ok {
		return fmt.Errorf("%w: source %s does not appear in %s", bfs.ErrInvalidArgument, rawSource, options.Name)
	}
	graphName := common.ExtractGraphName(options.Name)

	var stopProfile func()
	if options.Profile {
		stopProfile = common.StartProfile(graphName + "-" + plan.Algorithm.String() + ".pprof")
	}
	times := make([]float64, 0, runs)
	for r := 0; r < runs; r++ {
		report, err := bfs.Run(g, source, plan, bfs.WithMetrics(metrics))
		if err != nil {
			if stopProfile != nil {
				stopProfile()
			}
			return err
		}
		times = append(times, float64(report.Elapsed.Microseconds())/1000.0)
		log.Info().Msg(plan.Algorithm.String() + " run " + strconv.Itoa(r) + " (ms) " + utils.F("%.3f", times[r]) + " rounds " + utils.V(report.Rounds))
	}
	if stopProfile != nil {
		stopProfile()
	}
	if runs > 1 {
		log.Info().Msg("Runs " + strconv.Itoa(runs) + " median (ms) " + utils.F("%.3f", utils.Median(times)) + " p95 (ms) " + utils.F("%.3f", utils.Percentile(times, 95)) + " max (ms) " + utils.F("%.3f", utils.MaxSlice(times)))
	}

	if options.CheckCorrectness {
		if err := bfs.ValidateLabeling(g); err != nil {
			return err
		}
		stats, err := bfs.ComputeStatistics(g)
		if err != nil {
			return err
		}
		stats.Log()
		if err := stats.Print(out); err != nil {
			return err
		}
	}
	if options.OracleCompare {
		if err := g.CompareToOracle(source); err != nil {
			return err
		}
		log.Info().Msg("Oracle agrees")
	}
	if options.WriteVertexProps {
		common.WriteVertexProps(g, graphName, plan.Algorithm.String())
	}
	return nil
}
