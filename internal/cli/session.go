package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// whoamiCmd prints the session identifier of a freshly opened session,
// which doubles as a liveness check of the stored credentials.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the server-side session identifier",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			sid, err := client.SessionID()
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"session_id": sid, "user": GetConfig().User})
			} else {
				fmt.Printf("User: %s\nSession: %s\n", GetConfig().User, sid)
			}
			return nil
		})
	},
}

// baseCmd prints the directory root configured for the session's database.
var baseCmd = &cobra.Command{
	Use:   "base",
	Short: "Show the directory root of the selected database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			base, err := client.Base()
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"base": base})
			} else {
				fmt.Println(base)
			}
			return nil
		})
	},
}

// databasesCmd lists the databases the server manages. These are the valid
// values for the database configuration setting.
var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List directory databases managed by the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			dbs, err := client.ListDatabases()
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(dbs)
			} else {
				for id, name := range dbs {
					fmt.Printf("%s\t%s\n", id, name)
				}
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(baseCmd)
	rootCmd.AddCommand(databasesCmd)
}
