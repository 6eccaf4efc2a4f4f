package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/peixotorms/component-index/internal/catalog"
	"github.com/peixotorms/component-index/internal/tools"
	"github.com/peixotorms/component-index/internal/tui"
)

func listCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list [framework]",
		Short: "List frameworks, or the components of one framework",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runTool(cmd, "list_frameworks", struct{}{})
			}
			return runTool(cmd, "list_components", tools.ListComponentsInput{
				Framework: args[0],
				Category:  category,
			})
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "only list this category")
	return cmd
}

func searchCmd() *cobra.Command {
	var framework string
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search component paths by keyword",
		Long: fmt.Sprintf(`Search component paths. Every term must appear in the path relative to the
component directory, ignoring case. At most %d results are shown.`, catalog.MaxResults),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, "search_components", tools.SearchComponentsInput{
				Query:     strings.Join(args, " "),
				Framework: framework,
			})
		},
	}
	cmd.Flags().StringVarP(&framework, "framework", "f", catalog.AllFrameworks, "restrict the search to one framework")
	return cmd
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <framework> <category> <component> <variant>",
		Short: "Print one component",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, "get_component", tools.GetComponentInput{
				Framework: args[0],
				Category:  args[1],
				Component: args[2],
				Variant:   args[3],
			})
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <path>",
		Short: "Print a file by its path relative to the component directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, "get_component_by_path", tools.GetComponentByPathInput{Path: args[0]})
		},
	}
}

// runTool executes a registered tool and prints its Markdown result, styled
// when stdout is a terminal.
func runTool(cmd *cobra.Command, name string, input any) error {
	env, err := load()
	if err != nil {
		return err
	}
	data, err := json.Marshal(input)
	if err != nil {
		return err
	}
	text, err := env.registry.Execute(cmd.Context(), name, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, tui.RenderMarkdown(os.Stdout, text))
	return nil
}
