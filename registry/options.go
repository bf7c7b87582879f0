package registry

// buildConfig holds the resolved values of spec.md §6's options map
// (precision, threads, verbosity, zipped_output, rooted, subtree_only).
// Grounded on matrix/options.go's functional-options idiom: a
// Go map[string]any bag exists only to let a caller construct
// unrecognized keys, which the Go type system already forbids once the
// bag is replaced with typed With* constructors — the unknown-option
// rejection spec.md asks for is therefore structural here rather than
// a runtime check (documented in DESIGN.md).
type buildConfig struct {
	precision    int
	threads      int
	verbosity    int
	zippedOutput bool
	rooted       bool
	subtreeOnly  bool
}

const (
	// DefaultPrecision is spec.md §6's default fractional-digit count.
	DefaultPrecision = 6
	// DefaultThreads (0) means "runtime default" (spec.md §5).
	DefaultThreads = 0
)

func defaultConfig() *buildConfig {
	return &buildConfig{
		precision: DefaultPrecision,
		threads:   DefaultThreads,
	}
}

// BuildOption configures a single Build call.
type BuildOption func(*buildConfig)

// WithPrecision sets the fractional-digit count used when rendering
// branch lengths (spec.md §6; must be >= 1, validated by Build).
func WithPrecision(precision int) BuildOption {
	return func(c *buildConfig) { c.precision = precision }
}

// WithThreads sets the worker-pool size the nj row-minimum scan uses;
// 0 requests the runtime default (spec.md §5). Row merges run
// sequentially whatever the value.
func WithThreads(threads int) BuildOption {
	return func(c *buildConfig) { c.threads = threads }
}

// WithVerbosity sets the progress-logging level (spec.md §6); when > 0,
// Build logs build-start, build-finished and build-failed events via
// zerolog. No per-join events are logged.
func WithVerbosity(verbosity int) BuildOption {
	return func(c *buildConfig) { c.verbosity = verbosity }
}

// WithZippedOutput records that the caller intends to gzip-compress the
// Newick output when writing it to a file. Build itself returns an
// in-memory string, so this flag has no effect on Build's return value;
// it exists so callers (decenttreeio's file writer, cmd/decenttree) can
// carry the same option vocabulary spec.md §6 defines end to end
// instead of inventing a second flag name at the I/O boundary.
func WithZippedOutput(zipped bool) BuildOption {
	return func(c *buildConfig) { c.zippedOutput = zipped }
}

// WithRooted requests a bifurcating root rather than the default
// unrooted terminal trifurcation (spec.md's Open Question #1, resolved
// per-build via this option rather than globally).
func WithRooted(rooted bool) BuildOption {
	return func(c *buildConfig) { c.rooted = rooted }
}

// WithSubtreeOnly requests clustertree.Tree.NewickSubtree instead of
// Newick: the root's enclosing parentheses and trailing ";" are
// omitted, matching original_source/stitchup.cpp's
// writeSubtree(..., noBrackets=true) top-level call.
func WithSubtreeOnly(subtreeOnly bool) BuildOption {
	return func(c *buildConfig) { c.subtreeOnly = subtreeOnly }
}
