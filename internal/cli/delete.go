package cli

import (
	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// deleteCmd removes an object.
var deleteCmd = &cobra.Command{
	Use:   "delete <type> <dn>",
	Short: "Delete an object",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			if err := client.DeleteObject(args[0], args[1]); err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"deleted": args[1]})
			} else {
				okLabel.Printf("✓ Deleted %s\n", args[1])
			}
			return nil
		})
	},
}

// deleteTabCmd removes a tab, with its fields, from an object.
var deleteTabCmd = &cobra.Command{
	Use:   "delete-tab <type> <dn> <tab>",
	Short: "Delete a tab, with its fields, from an object",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			dn, err := client.DeleteTab(args[0], args[1], args[2])
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"dn": dn, "tab": args[2]})
			} else {
				okLabel.Printf("✓ Removed tab %s from %s\n", args[2], dn)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(deleteTabCmd)
}
