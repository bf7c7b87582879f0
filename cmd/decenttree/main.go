// Package main provides the decenttree CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/caseysm/decenttree/decenttreeio"
	"github.com/caseysm/decenttree/registry"

	// Blank-imported so each algorithm family self-registers against
	// registry before any command runs, per registry's self-registration
	// scheme (see registry/doc.go and registry/registry_test.go).
	_ "github.com/caseysm/decenttree/nj"
	_ "github.com/caseysm/decenttree/rapidnj"
	_ "github.com/caseysm/decenttree/stitchup"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "decenttree",
		Short: "Build a phylogenetic tree from a pairwise distance matrix",
		Long: `decenttree constructs a phylogenetic tree from a pairwise distance
matrix over N taxa, selecting among a registry of named agglomeration
algorithms (UPGMA, NJ family, RapidNJ/Auction, STITCHUP/NTCJ), and
emits the result as Newick.`,
	}

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build a tree from a distance file and write it to a Newick file",
		RunE:  runBuild,
	}
	buildCmd.Flags().String("in", "", "input distance file (required)")
	buildCmd.Flags().String("out", "", "output Newick file (default: stdout)")
	buildCmd.Flags().String("algorithm", "NJ", "algorithm name (see list-algorithms)")
	buildCmd.Flags().Int("precision", registry.DefaultPrecision, "branch length fractional digits")
	buildCmd.Flags().Int("threads", registry.DefaultThreads, "worker thread count (0 = runtime default)")
	buildCmd.Flags().Bool("rooted", false, "split the terminal trifurcation into a bifurcating root")
	buildCmd.Flags().Bool("subtree-only", false, "omit the root's enclosing parentheses and trailing \";\"")
	buildCmd.Flags().Bool("gzip", false, "gzip-compress the output file")
	buildCmd.Flags().Int("verbose", 0, "progress-logging verbosity")
	_ = buildCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(buildCmd)

	listCmd := &cobra.Command{
		Use:   "list-algorithms",
		Short: "List the registered algorithm names and descriptions",
		RunE:  runListAlgorithms,
	}
	rootCmd.AddCommand(listCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runListAlgorithms(cmd *cobra.Command, args []string) error {
	for _, info := range registry.List() {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", info.Name, info.Description)
	}

	return nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")
	algorithm, _ := cmd.Flags().GetString("algorithm")
	precision, _ := cmd.Flags().GetInt("precision")
	threads, _ := cmd.Flags().GetInt("threads")
	rooted, _ := cmd.Flags().GetBool("rooted")
	subtreeOnly, _ := cmd.Flags().GetBool("subtree-only")
	gzipped, _ := cmd.Flags().GetBool("gzip")
	verbose, _ := cmd.Flags().GetInt("verbose")

	names, distances, err := decenttreeio.ReadDistanceFile(inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inPath, err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	newick, err := registry.Build(ctx, algorithm, names, distances,
		registry.WithPrecision(precision),
		registry.WithThreads(threads),
		registry.WithVerbosity(verbose),
		registry.WithZippedOutput(gzipped),
		registry.WithRooted(rooted),
		registry.WithSubtreeOnly(subtreeOnly),
	)
	if err != nil {
		return fmt.Errorf("building %s tree: %w", algorithm, err)
	}

	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), newick)

		return nil
	}

	if err := decenttreeio.WriteNewickFile(outPath, newick, gzipped); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	return nil
}
