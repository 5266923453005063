package cli

import (
	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// getCmd fetches a single object by DN.
var getCmd = &cobra.Command{
	Use:   "get <type> <dn>",
	Short: "Get a single object by DN",
	Long: `Get the attributes of one object. The DN is reinterpreted as a
search: its first RDN becomes an equality filter and the remainder the
search base, so the DN must be well formed.

Example:
  fdcli get user uid=jdoe,ou=people,dc=example,dc=com --attr uid --attr mail`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		attrNames, _ := cmd.Flags().GetStringArray("attr")
		attrs := attributesFromFlags(attrNames)

		return withClient(func(client *directory.Client) error {
			object, err := client.GetObject(args[0], args[1], attrs)
			if err != nil {
				return err
			}
			printJSON(object)
			return nil
		})
	},
}

// fieldsCmd shows the fields of an object type as sections, either the
// creation defaults or the stored values of a concrete object.
var fieldsCmd = &cobra.Command{
	Use:   "fields <type> [dn]",
	Short: "Show fields of an object type, organized as sections",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dn := ""
		if len(args) == 2 {
			dn = args[1]
		}
		tab, _ := cmd.Flags().GetString("tab")

		return withClient(func(client *directory.Client) error {
			fields, err := client.GetFields(args[0], dn, tab)
			if err != nil {
				return err
			}
			printJSON(fields)
			return nil
		})
	},
}

// templateCmd shows a creation template.
var templateCmd = &cobra.Command{
	Use:   "template <type> <template-dn>",
	Short: "Show a creation template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			tmpl, err := client.GetTemplate(args[0], args[1])
			if err != nil {
				return err
			}
			printJSON(tmpl)
			return nil
		})
	},
}

func init() {
	getCmd.Flags().StringArray("attr", nil, "Attribute to fetch (repeatable)")
	fieldsCmd.Flags().String("tab", "", "Tab to show (main by default)")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(templateCmd)
}
