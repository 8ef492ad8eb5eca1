package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"countries/internal/country/seed"
)

var (
	seedFile     string
	seedFormat   string
	skipExisting bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert country records from a JSON or YAML file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		format := seed.FormatFor(seedFile)
		if seedFormat != "" {
			format = seed.Format(seedFormat)
		}
		countries, err := seed.Decode(f, format)
		if err != nil {
			return fmt.Errorf("%s: %w", seedFile, err)
		}

		ctx := cmd.Context()
		h, log, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer h.Close(ctx)

		res, err := seed.Insert(ctx, h.Store, countries, skipExisting)
		log.Info("seed finished",
			"backend", h.Backend,
			"inserted", res.Inserted,
			"skipped", len(res.Skipped),
		)
		for _, name := range res.Skipped {
			log.Debug("record exists", "name", name)
		}
		return err
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path to the records file")
	seedCmd.Flags().StringVar(&seedFormat, "format", "", "Force json or yaml instead of detecting by extension")
	seedCmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Skip records whose name is already stored")
	_ = seedCmd.MarkFlagRequired("file")
}
