package config

import (
	"flag"
)

// parses CLI flags for the reembed command
func ParseReembedFlags(args []string) (Flags, error) {
	fs := flag.NewFlagSet("reembed", flag.ContinueOnError)
	interviewID := fs.String("interview", "", "only re-embed submissions of this interview")
	dryRun := fs.Bool("dry-run", false, "list the submissions that would be re-embedded without writing")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}

	return Flags{InterviewID: *interviewID, DryRun: *dryRun}, nil
}
