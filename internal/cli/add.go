// ABOUTME: Add command for logging new wins
// ABOUTME: Handles text input, tag and date flags and tag spelling hints
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/quietwins/internal/wins"
)

var (
	tags    []string
	addDate string
)

var addCmd = &cobra.Command{
	Use:     "add [text]",
	Aliases: []string{"a"},
	Short:   "Log a win",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		ctx := cmd.Context()
		hints, err := svc.TagHints(ctx, tags)
		if err != nil {
			return err
		}

		entry, err := svc.Add(ctx, wins.AddParams{
			Date: addDate,
			Text: strings.Join(args, " "),
			Tags: tags,
		})
		if err != nil {
			return fmt.Errorf("failed to add win: %w", err)
		}

		fmt.Println(successColor.Sprintf("Win logged (ID: %d)", entry.ID))
		fmt.Printf("  %s  %s\n", entry.Date, entry.Text)
		fmt.Printf("  Tags: %s\n", entry.Tags)

		names := make([]string, 0, len(hints))
		for t := range hints {
			names = append(names, t)
		}
		sort.Strings(names)
		for _, t := range names {
			fmt.Println(hintColor.Sprintf("  Tag %q is new. Did you mean %q?", t, hints[t]))
		}

		return nil
	},
}

func init() {
	addCmd.Flags().StringArrayVarP(&tags, "tag", "t", []string{}, "Add tags to the win")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Date of the win (default today)")
	rootCmd.AddCommand(addCmd)
}
