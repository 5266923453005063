package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// lockCmd locks a user account.
var lockCmd = &cobra.Command{
	Use:   "lock <dn>",
	Short: "Lock a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			if err := client.LockUser(args[0]); err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]any{"dn": args[0], "locked": true})
			} else {
				okLabel.Printf("✓ Locked %s\n", args[0])
			}
			return nil
		})
	},
}

// unlockCmd unlocks a user account.
var unlockCmd = &cobra.Command{
	Use:   "unlock <dn>",
	Short: "Unlock a user account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			if err := client.UnlockUser(args[0]); err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]any{"dn": args[0], "locked": false})
			} else {
				okLabel.Printf("✓ Unlocked %s\n", args[0])
			}
			return nil
		})
	},
}

// lockedCmd reports the lock state of a user account.
var lockedCmd = &cobra.Command{
	Use:   "locked <dn>",
	Short: "Show whether a user account is locked",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *directory.Client) error {
			locked, err := client.UserIsLocked(args[0])
			if err != nil {
				return err
			}
			if jsonOutput {
				printJSON(map[string]any{"dn": args[0], "locked": locked})
			} else {
				state := "unlocked"
				if locked {
					state = "locked"
				}
				fmt.Printf("%s is %s\n", args[0], state)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(lockCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(lockedCmd)
}
