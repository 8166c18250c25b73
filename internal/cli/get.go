package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newGetCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Print a stored configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args[0], path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "path expression to extract (e.g. servers.0.host)")
	return cmd
}

func runGet(cmd *cobra.Command, name, path string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Load(name)
	if err != nil {
		return err
	}

	if path != "" {
		result := gjson.Get(rec.Payload, path)
		if !result.Exists() {
			return fmt.Errorf("path %q not found in configuration %q", path, name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.String())
		return nil
	}

	if flags.jsonMode {
		return printRecord(cmd, rec, true)
	}
	fmt.Fprintln(cmd.OutOrStdout(), rec.Payload)
	return nil
}
