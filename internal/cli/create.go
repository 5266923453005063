package cli

import (
	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// createCmd creates a new object, optionally from a template.
var createCmd = &cobra.Command{
	Use:   "create <type>",
	Short: "Create a new object",
	Long: `Create a new object from a YAML values file and/or --set flags.
The values are a two-level mapping: tab, then field, then value.

Example values file:
  user:
    uid: jdoe
    cn: John Doe
    sn: Doe

Example:
  fdcli create user -f jdoe.yaml
  fdcli create user --set user.uid=jdoe --set user.sn=Doe
  fdcli create user -f jdoe.yaml --template cn=template,ou=templates,dc=example,dc=com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		setPairs, _ := cmd.Flags().GetStringArray("set")
		templateDN, _ := cmd.Flags().GetString("template")

		values, err := gatherValues(file, setPairs)
		if err != nil {
			return err
		}

		return withClient(func(client *directory.Client) error {
			dn, err := client.CreateObject(args[0], values, templateDN)
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"dn": dn})
			} else {
				okLabel.Printf("✓ Created %s\n", dn)
			}
			return nil
		})
	},
}

func init() {
	createCmd.Flags().StringP("file", "f", "", "YAML file with tab/field values")
	createCmd.Flags().StringArray("set", nil, "Set a field: tab.field=value (repeatable)")
	createCmd.Flags().String("template", "", "DN of a template to instantiate")

	rootCmd.AddCommand(createCmd)
}
