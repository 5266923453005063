package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// listCmd lists objects of a type, keyed by DN.
var listCmd = &cobra.Command{
	Use:   "list <type>",
	Short: "List objects of a type",
	Long: `List objects of a type, optionally scoped by OU and LDAP filter.

Attribute selection:
  --attr uid              one attribute; values are printed next to DNs
  --attr uid --attr cn    several attributes, each fetched as single values
  (no --attr)             DNs only

Example:
  fdcli list user --ou ou=people,dc=example,dc=com --attr uid --attr mail`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	ou, _ := cmd.Flags().GetString("ou")
	filter, _ := cmd.Flags().GetString("filter")
	attrNames, _ := cmd.Flags().GetStringArray("attr")

	attrs := attributesFromFlags(attrNames)

	return withClient(func(client *directory.Client) error {
		objects, err := client.ListObjects(args[0], attrs, ou, filter)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(objects)
			return nil
		}
		for dn, entry := range objects {
			switch v := entry.(type) {
			case map[string]any:
				parts := make([]string, 0, len(v))
				for k, val := range v {
					parts = append(parts, fmt.Sprintf("%s=%v", k, val))
				}
				fmt.Printf("%s\t%s\n", dn, strings.Join(parts, " "))
			default:
				fmt.Printf("%s\t%v\n", dn, v)
			}
		}
		return nil
	})
}

// attributesFromFlags maps --attr flags onto the client's closed attribute
// variant: none, one bare attribute, or a single-value spec per name.
func attributesFromFlags(names []string) directory.Attributes {
	switch len(names) {
	case 0:
		return directory.Attributes{}
	case 1:
		return directory.SingleAttribute(names[0])
	default:
		spec := map[string]directory.AttributeMode{}
		for _, n := range names {
			spec[n] = directory.ModeSingle
		}
		return directory.AttributeSpec(spec)
	}
}

func init() {
	listCmd.Flags().String("ou", "", "OU to search in (directory root if unset)")
	listCmd.Flags().String("filter", "", "LDAP filter to limit results")
	listCmd.Flags().StringArray("attr", nil, "Attribute to fetch (repeatable)")

	rootCmd.AddCommand(listCmd)
}
