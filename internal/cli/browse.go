package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// typesCmd lists the object types known to the server.
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List object types known to the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			objectTypes, err := client.ListObjectTypes()
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(objectTypes)
			} else {
				for name, display := range objectTypes {
					fmt.Printf("%s\t%s\n", name, display)
				}
			}
			return nil
		})
	},
}

// infoCmd shows the server's metadata for one object type.
var infoCmd = &cobra.Command{
	Use:   "info <type>",
	Short: "Show metadata for an object type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			info, err := client.ObjectTypeInfo(args[0])
			if err != nil {
				return err
			}
			printJSON(info)
			return nil
		})
	},
}

// tabsCmd lists the tabs of an object type, with active flags for a
// concrete object when a DN is given.
var tabsCmd = &cobra.Command{
	Use:   "tabs <type> [dn]",
	Short: "List tabs of an object type",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dn := ""
		if len(args) == 2 {
			dn = args[1]
		}
		return withClient(func(client *directory.Client) error {
			tabs, err := client.ListTabs(args[0], dn)
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(tabs)
			} else {
				for tab, meta := range tabs {
					active := " "
					if meta.Active {
						active = "*"
					}
					fmt.Printf("%s %s\t%s\n", active, tab, meta.Name)
				}
			}
			return nil
		})
	},
}

// countCmd counts objects of a type. A count of -1 means the server
// declined to count this type.
var countCmd = &cobra.Command{
	Use:   "count <type>",
	Short: "Count objects of a type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ou, _ := cmd.Flags().GetString("ou")
		filter, _ := cmd.Flags().GetString("filter")
		return withClient(func(client *directory.Client) error {
			n, err := client.Count(args[0], ou, filter)
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]int{"count": n})
			} else {
				fmt.Println(n)
			}
			return nil
		})
	},
}

func init() {
	countCmd.Args = cobra.ExactArgs(1)
	countCmd.Flags().String("ou", "", "OU to scope the count to")
	countCmd.Flags().String("filter", "", "LDAP filter to limit the count")

	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(tabsCmd)
	rootCmd.AddCommand(countCmd)
}
