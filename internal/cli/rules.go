// ABOUTME: Rules commands for the keyword tag dictionary
// ABOUTME: Lists active rules and adds user rules to the rules file
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/quietwins/internal/tagging"
)

var (
	ruleKeywords []string
	ruleTags     []string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage keyword tagging rules",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active tagging rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules, err := tagging.LoadRulesOrDefault(appConfig.RulesPath)
		if err != nil {
			return err
		}

		source := "built-in defaults"
		if _, err := os.Stat(appConfig.RulesPath); err == nil {
			source = appConfig.RulesPath
		}
		fmt.Printf("%d rules from %s\n", len(rules), source)
		for _, r := range rules {
			fmt.Printf("  %s -> %s\n", strings.Join(r.Keywords, ", "), strings.Join(r.Tags, ", "))
		}
		return nil
	},
}

var rulesAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a keyword rule",
	Long:  `Add a rule that tags wins containing any of the keywords. The first rule added copies the built-in dictionary to the rules file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keywords := tagging.ParseUserTags(ruleKeywords...)
		newTags := tagging.ParseUserTags(ruleTags...)
		if len(keywords) == 0 || len(newTags) == 0 {
			return errors.New("a rule needs at least one --keyword and one --tag")
		}

		rules, err := tagging.LoadRulesOrDefault(appConfig.RulesPath)
		if err != nil {
			return err
		}
		rules = append(rules, tagging.Rule{Keywords: keywords, Tags: newTags})

		if err := tagging.SaveRules(appConfig.RulesPath, rules); err != nil {
			return fmt.Errorf("failed to save rules: %w", err)
		}

		fmt.Println(successColor.Sprintf("Rule added: %s -> %s", strings.Join(keywords, ", "), strings.Join(newTags, ", ")))
		fmt.Printf("Rules file: %s\n", appConfig.RulesPath)
		return nil
	},
}

func init() {
	rulesAddCmd.Flags().StringArrayVarP(&ruleKeywords, "keyword", "k", []string{}, "Keyword that triggers the rule (repeatable)")
	rulesAddCmd.Flags().StringArrayVarP(&ruleTags, "tag", "t", []string{}, "Tag applied when the rule fires (repeatable)")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesAddCmd)
	rootCmd.AddCommand(rulesCmd)
}
