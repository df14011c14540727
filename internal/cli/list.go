// ABOUTME: List and chains commands for browsing wins
// ABOUTME: Supports table and JSON output and chain grouping
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/quietwins/internal/chains"
	"github.com/harper/quietwins/internal/db"
)

var (
	listLimit      int
	listJSONOutput bool
	listChains     bool

	chainsJSONOutput bool
)

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printWinRow(prefix string, e db.Entry) {
	fmt.Printf("%s%d\t%s\t%s\t%s\n", prefix, e.ID, e.Date, dimColor.Sprint(e.Tags), e.Text)
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent wins",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		ctx := cmd.Context()

		if listChains {
			grouped, err := svc.Chained(ctx)
			if err != nil {
				return err
			}
			if listLimit > 0 && len(grouped) > listLimit {
				grouped = grouped[:listLimit]
			}
			if listJSONOutput {
				return printJSON(grouped)
			}

			fmt.Println("Chain\tID\tDate\tTags\tText")
			fmt.Println("-----\t--\t----\t----\t----")
			for _, c := range grouped {
				marker := "-"
				if id, ok := c.Chain(); ok {
					marker = chainColor.Sprintf("#%d", id+1)
				}
				printWinRow(marker+"\t", c.Entry)
			}
			return nil
		}

		entries, err := svc.Active(ctx, listLimit)
		if err != nil {
			return err
		}
		if listJSONOutput {
			return printJSON(entries)
		}

		fmt.Println("ID\tDate\tTags\tText")
		fmt.Println("--\t----\t----\t----")
		for _, e := range entries {
			printWinRow("", e)
		}
		return nil
	},
}

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "Show groups of related wins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		grouped, err := svc.Chained(cmd.Context())
		if err != nil {
			return err
		}
		groups := chains.Chains(grouped)

		if chainsJSONOutput {
			if groups == nil {
				groups = [][]db.Entry{}
			}
			return printJSON(groups)
		}

		if len(groups) == 0 {
			fmt.Println("No chains yet.")
			return nil
		}
		for i, group := range groups {
			key := chains.Key(group[0].Text, group[0].Tags)
			fmt.Println(chainColor.Sprintf("Chain #%d: %s (%d wins)", i+1, key, len(group)))
			for _, e := range group {
				printWinRow("  ", e)
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Number of wins to show (0 for all)")
	listCmd.Flags().BoolVar(&listJSONOutput, "json", false, "Output as JSON")
	listCmd.Flags().BoolVar(&listChains, "chains", false, "Group wins into chains")
	rootCmd.AddCommand(listCmd)

	chainsCmd.Flags().BoolVar(&chainsJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(chainsCmd)
}
