package cli

import (
	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// updateCmd updates an existing object.
var updateCmd = &cobra.Command{
	Use:   "update <type> <dn>",
	Short: "Update an existing object",
	Long: `Update fields of an existing object from a YAML values file and/or
--set flags. Values are a two-level mapping: tab, then field, then value.

Example:
  fdcli update user uid=jdoe,ou=people,dc=example,dc=com --set user.cn="John X. Doe"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		setPairs, _ := cmd.Flags().GetStringArray("set")

		values, err := gatherValues(file, setPairs)
		if err != nil {
			return err
		}

		return withClient(func(client *directory.Client) error {
			dn, err := client.UpdateObject(args[0], args[1], values)
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"dn": dn})
			} else {
				okLabel.Printf("✓ Updated %s\n", dn)
			}
			return nil
		})
	},
}

func init() {
	updateCmd.Flags().StringP("file", "f", "", "YAML file with tab/field values")
	updateCmd.Flags().StringArray("set", nil, "Set a field: tab.field=value (repeatable)")

	rootCmd.AddCommand(updateCmd)
}
