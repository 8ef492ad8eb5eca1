package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every stored record in name order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		h, _, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer h.Close(ctx)

		countries, err := h.Store.FindAll(ctx)
		if err != nil {
			return err
		}
		docs := make([]map[string]any, 0, len(countries))
		for _, c := range countries {
			docs = append(docs, c.ToMap())
		}

		switch listOutput {
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(docs)
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(docs)
		case "names":
			for _, c := range countries {
				fmt.Println(c.Name)
			}
			return nil
		default:
			return fmt.Errorf("unknown output %q", listOutput)
		}
	},
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "names", "Output format: names, json or yaml")
}
