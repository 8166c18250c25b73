package cli

import (
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/mesh-intelligence/attune/pkg/config"
)

func newPatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patch <name> <path> <value>",
		Short: "Set one path inside a stored configuration",
		Long:  "Update a single path inside a stored configuration. The value is parsed as\nJSON when possible and treated as a string otherwise.",
		Args:  cobra.ExactArgs(3),
		RunE:  runPatch,
	}
}

func runPatch(cmd *cobra.Command, args []string) error {
	name, path, rawValue := args[0], args[1], args[2]

	// "8080" becomes a number and "true" a boolean; anything that is not
	// valid JSON is stored as a plain string.
	var value any
	if parsed, err := config.DecodeJSON([]byte(rawValue)); err == nil {
		value = parsed
	} else {
		value = rawValue
	}

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Load(name)
	if err != nil {
		return err
	}

	updated, err := sjson.Set(rec.Payload, path, value)
	if err != nil {
		return err
	}

	saved, err := s.Save(name, rec.Context, updated)
	if err != nil {
		return err
	}
	return printRecord(cmd, saved, false)
}
