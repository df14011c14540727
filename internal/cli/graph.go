// ABOUTME: Graph and classify commands
// ABOUTME: Prints the tag co-occurrence graph as text, JSON or Graphviz dot
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/quietwins/internal/graph"
	"github.com/harper/quietwins/internal/tagging"
)

var (
	graphJSONOutput bool
	graphDotOutput  bool
	graphTag        string

	classifyJSONOutput bool
)

func writeDot(sb *strings.Builder, g graph.TagGraph) {
	sb.WriteString("graph tags {\n")
	for _, n := range g.Nodes {
		sb.WriteString(fmt.Sprintf("  %q;\n", n))
	}
	for _, e := range g.Edges {
		sb.WriteString(fmt.Sprintf("  %q -- %q;\n", e.Source, e.Target))
	}
	sb.WriteString("}\n")
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Show which tags appear together",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if graphJSONOutput && graphDotOutput {
			return fmt.Errorf("--json and --dot are mutually exclusive")
		}

		svc, closeDB, err := openService()
		if err != nil {
			return err
		}
		defer closeDB()

		g, err := svc.Graph(cmd.Context())
		if err != nil {
			return err
		}

		if graphTag != "" {
			tag := tagging.NormalizeTag(graphTag)
			neighbors := g.Neighbors(tag)
			if graphJSONOutput {
				if neighbors == nil {
					neighbors = []string{}
				}
				return printJSON(neighbors)
			}
			if len(neighbors) == 0 {
				fmt.Printf("No tags appear with %q.\n", tag)
				return nil
			}
			fmt.Printf("Tags seen with %q (%d): %s\n", tag, len(neighbors), strings.Join(neighbors, ", "))
			return nil
		}

		switch {
		case graphJSONOutput:
			return printJSON(g)
		case graphDotOutput:
			var sb strings.Builder
			writeDot(&sb, g)
			fmt.Print(sb.String())
			return nil
		}

		fmt.Printf("Tags (%d): %s\n", len(g.Nodes), strings.Join(g.Nodes, ", "))
		fmt.Printf("Links (%d):\n", len(g.Edges))
		for _, e := range g.Edges {
			fmt.Printf("  %s -- %s\n", e.Source, e.Target)
		}
		return nil
	},
}

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Show the tags a text would get, without saving it",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := newClassifier()
		if err != nil {
			return err
		}

		result := classifier.Classify(cmd.Context(), strings.Join(args, " ")).Sorted()
		if classifyJSONOutput {
			return printJSON(result)
		}
		fmt.Println(strings.Join(result, ", "))
		return nil
	},
}

func init() {
	graphCmd.Flags().BoolVar(&graphJSONOutput, "json", false, "Output as JSON")
	graphCmd.Flags().BoolVar(&graphDotOutput, "dot", false, "Output as Graphviz dot")
	graphCmd.Flags().StringVar(&graphTag, "tag", "", "Only show tags that appear with this tag")
	rootCmd.AddCommand(graphCmd)

	classifyCmd.Flags().BoolVar(&classifyJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(classifyCmd)
}
