package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/attune/pkg/config"
)

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> [json]",
		Short: "Store a configuration under a name",
		Long:  "Store a JSON configuration under a name. The JSON is given as an argument\nor read from standard input, and is shape-checked before storing.",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runSet,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	var text []byte
	if len(args) == 2 {
		text = []byte(args[1])
	} else {
		var err error
		text, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	// Decode and re-encode so stored payloads are canonical and validated.
	value, err := config.DecodeJSON(text)
	if err != nil {
		return err
	}
	encoded, err := config.EncodeJSON(value)
	if err != nil {
		return err
	}

	s, v, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Save(args[0], resolveContextName(v), string(encoded))
	if err != nil {
		return err
	}
	return printRecord(cmd, rec, false)
}
