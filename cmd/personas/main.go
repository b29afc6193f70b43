// Command personas prints synthetic user personas for trying out the wizard.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"paraphrase-be/pkg/persona"

	"github.com/spf13/cobra"
)

type options struct {
	count       int
	gender      string
	stage       string
	personality string
	seed        uint64
	asJSON      bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "personas",
		Short: "Generate synthetic personas",
		Long: `personas prints a batch of internally consistent personas. Pinning any of
--gender, --stage or --personality prints a single constrained persona instead.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(out, opts, cmd.Flags().Changed("seed"))
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.count, "count", "n", persona.DefaultBatchSize, "number of personas in a batch")
	f.StringVar(&opts.gender, "gender", "", "pin gender (male, female)")
	f.StringVar(&opts.stage, "stage", "", "pin life stage (e.g. young_professional)")
	f.StringVar(&opts.personality, "personality", "", "pin personality (e.g. analytical)")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for reproducible output")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON instead of cards")

	return cmd
}

func run(out io.Writer, opts *options, seeded bool) error {
	seed := opts.seed
	if !seeded {
		seed = uint64(time.Now().UnixNano())
	}
	gen := persona.NewGenerator(persona.DefaultTables(), persona.NewSource(seed))

	var batch []persona.Persona
	if opts.gender != "" || opts.stage != "" || opts.personality != "" {
		c, err := constraints(opts)
		if err != nil {
			return err
		}
		batch = []persona.Persona{gen.GenerateWithConstraints(c)}
	} else {
		if opts.count < 1 || opts.count > 50 {
			return fmt.Errorf("--count must be between 1 and 50, got %d", opts.count)
		}
		batch = gen.GenerateBatch(opts.count)
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	}
	for _, p := range batch {
		renderCard(out, p)
	}
	return nil
}

func constraints(opts *options) (persona.Constraints, error) {
	var c persona.Constraints
	var err error
	if opts.gender != "" {
		if c.Gender, err = persona.ParseGender(opts.gender); err != nil {
			return c, err
		}
	}
	if opts.stage != "" {
		if c.LifeStage, err = persona.ParseLifeStage(opts.stage); err != nil {
			return c, err
		}
	}
	if opts.personality != "" {
		if c.Personality, err = persona.ParsePersonality(opts.personality); err != nil {
			return c, err
		}
	}
	return c, nil
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
