package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <candidate>",
	Short: "Remove all chunks for a candidate",
	Long: `Remove every indexed chunk belonging to the named candidate. The
candidate name is the source filename without its extension, as shown by
'cvrag list'.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteWhere(ctx, "candidate", name); err != nil {
		return fmt.Errorf("failed to delete candidate %q: %w", name, err)
	}

	fmt.Printf("Deleted all chunks for: %s\n", name)
	return nil
}
