// ABOUTME: Commands that change existing wins
// ABOUTME: Edit, delete, restore, trash listing and purge
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/quietwins/internal/wins"
)

var (
	editText string
	editDate string
	editTags []string

	trashJSONOutput bool
	purgeOlderThan  int
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change a win's text, date or tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWinID(args[0])
		if err != nil {
			return err
		}

		params := wins.UpdateParams{Text: editText, Date: editDate}
		if cmd.Flags().Changed("tag") {
			params.Tags = append([]string{}, editTags...)
		}
		if params.Text == "" && params.Date == "" && params.Tags == nil {
			return fmt.Errorf("nothing to change: use --text, --date or --tag")
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		entry, err := svc.Update(cmd.Context(), id, params)
		if err != nil {
			return err
		}

		fmt.Println(successColor.Sprintf("Win %d updated", entry.ID))
		fmt.Printf("  %s  %s\n", entry.Date, entry.Text)
		fmt.Printf("  Tags: %s\n", entry.Tags)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Move a win to the trash",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWinID(args[0])
		if err != nil {
			return err
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := svc.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Win %d moved to trash. Restore with: quietwins restore %d\n", id, id)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Bring a win back from the trash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseWinID(args[0])
		if err != nil {
			return err
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := svc.Restore(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Println(successColor.Sprintf("Win %d restored", id))
		return nil
	},
}

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "List deleted wins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		deleted, err := svc.Deleted(cmd.Context())
		if err != nil {
			return err
		}
		if trashJSONOutput {
			return printJSON(deleted)
		}

		if len(deleted) == 0 {
			fmt.Println("Trash is empty.")
			return nil
		}
		fmt.Println("ID\tDeleted\t\t\tText")
		fmt.Println("--\t-------\t\t\t----")
		for _, e := range deleted {
			deletedAt := time.Unix(e.DeletedAt, 0).Format("2006-01-02 15:04:05")
			fmt.Printf("%d\t%s\t%s\n", e.ID, deletedAt, e.Text)
		}
		return nil
	},
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Permanently remove old deleted wins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		hours := appConfig.RetentionHours
		if cmd.Flags().Changed("older-than") {
			hours = purgeOlderThan
		}
		if hours < 0 {
			return fmt.Errorf("--older-than must not be negative")
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		n, err := svc.Purge(cmd.Context(), hours)
		if err != nil {
			return err
		}
		fmt.Printf("Purged %d wins deleted more than %d hours ago\n", n, hours)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editText, "text", "", "New text")
	editCmd.Flags().StringVarP(&editDate, "date", "d", "", "New date")
	editCmd.Flags().StringArrayVarP(&editTags, "tag", "t", []string{}, "Replacement tags (repeatable)")
	rootCmd.AddCommand(editCmd)

	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(restoreCmd)

	trashCmd.Flags().BoolVar(&trashJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(trashCmd)

	purgeCmd.Flags().IntVar(&purgeOlderThan, "older-than", 0, "Hours since deletion (default retention_hours)")
	rootCmd.AddCommand(purgeCmd)
}
