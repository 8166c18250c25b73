package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/attune/internal/store"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored configurations",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List()
	if err != nil {
		return err
	}

	if flags.jsonMode {
		out := make([]recordJSON, 0, len(records))
		for _, rec := range records {
			out = append(out, toRecordJSON(rec))
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCONTEXT\tUPDATED")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", rec.Name, rec.Context, rec.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

// recordJSON is the JSON output shape for stored configuration records.
type recordJSON struct {
	ConfigID  string          `json:"config_id"`
	Name      string          `json:"name"`
	Context   string          `json:"context"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

func toRecordJSON(rec store.Record) recordJSON {
	return recordJSON{
		ConfigID:  rec.ConfigID,
		Name:      rec.Name,
		Context:   rec.Context,
		Payload:   json.RawMessage(rec.Payload),
		CreatedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// printRecord reports the outcome of a mutating command. With asJSON (or the
// global --json flag) the full record is printed; otherwise a short summary.
func printRecord(cmd *cobra.Command, rec store.Record, asJSON bool) error {
	if asJSON || flags.jsonMode {
		data, err := json.MarshalIndent(toRecordJSON(rec), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (context: %s)\n", rec.Name, rec.Context)
	return nil
}
