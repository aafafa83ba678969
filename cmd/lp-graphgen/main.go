package main

import (
	"io"

	"github.com/ScottSallinen/hopdist/cmd/common"
	"github.com/ScottSallinen/hopdist/graph"
	"github.com/ScottSallinen/hopdist/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("lp-graphgen failed")
	}
}

func newRootCmd() *cobra.Command {
	spec := graph.GeneratorSpec{Kind: "random", N: 1000, M: 8000, Seed: 1}
	var output string
	var noColour bool

	cmd := &cobra.Command{
		Use:           "lp-graphgen",
		Short:         "Write a synthetic edge list (path, star, grid, random or powerlaw).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			utils.SetLoggerConsole(noColour)
			edges, err := graph.Generate(spec)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f := utils.CreateFile(output)
				defer f.Close()
				w = f
			}
			if err := common.WriteEdgeList(w, edges); err != nil {
				return err
			}
			log.Info().Msg("Generated " + spec.Kind + " with " + utils.V(len(edges)) + " edges")
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&spec.Kind, "kind", "k", spec.Kind, "Generator: path, star, grid, random or powerlaw.")
	fs.Uint32VarP(&spec.N, "vertices", "n", spec.N, "Vertices (leaves for star, rows for grid).")
	fs.Uint64VarP(&spec.M, "edges", "m", spec.M, "Edges for random, columns for grid, links per vertex for powerlaw.")
	fs.Int64Var(&spec.Seed, "seed", spec.Seed, "Random seed.")
	fs.BoolVar(&spec.Shuffle, "shuffle", spec.Shuffle, "Shuffle the edge order.")
	fs.StringVarP(&output, "output", "o", "", "Output file; stdout when empty.")
	fs.BoolVar(&noColour, "nc", false, "Removes the colouring from the log output.")
	return cmd
}
