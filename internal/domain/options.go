package domain

// CommonOptions contains shared options for CLI driven packaging runs.
type CommonOptions struct {
	Verbose  bool
	DryRun   bool
	Progress bool
}
