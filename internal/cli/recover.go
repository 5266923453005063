package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// recoverTokenCmd generates a password recovery token for a user.
var recoverTokenCmd = &cobra.Command{
	Use:   "recover-token <email>",
	Short: "Generate a password recovery token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			token, err := client.RecoveryToken(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"token": token})
			} else {
				fmt.Println(token)
			}
			return nil
		})
	},
}

// setPasswordCmd sets a user's password using a recovery token.
var setPasswordCmd = &cobra.Command{
	Use:   "set-password <uid>",
	Short: "Set a user's password using a recovery token",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("passwd")
		token, _ := cmd.Flags().GetString("token")
		if password == "" || token == "" {
			return fmt.Errorf("both --passwd and --token are required")
		}

		return withClient(func(client *directory.Client) error {
			if err := client.SetPassword(args[0], password, token); err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]string{"uid": args[0], "status": "password changed"})
			} else {
				okLabel.Printf("✓ Password changed for %s\n", args[0])
			}
			return nil
		})
	},
}

func init() {
	setPasswordCmd.Args = cobra.ExactArgs(1)
	setPasswordCmd.Flags().String("passwd", "", "The new password")
	setPasswordCmd.Flags().String("token", "", "Recovery token from recover-token")

	rootCmd.AddCommand(recoverTokenCmd)
	rootCmd.AddCommand(setPasswordCmd)
}
