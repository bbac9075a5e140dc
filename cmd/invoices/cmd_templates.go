package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-extractor/internal/template"
	"github.com/joseph-ayodele/invoice-extractor/internal/template/defaults"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and validate template documents",
}

var templatesListCmd = &cobra.Command{
	Use:   "list [document]",
	Short: "List the templates in a document (or the built-in library)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := resolveRepository(args)
		if err != nil {
			return err
		}
		for _, t := range repo.Templates() {
			rt, ok := t.(*template.RegexTemplate)
			if !ok {
				fmt.Printf("%s\n", t.Name())
				continue
			}
			fmt.Printf("%s\n  keywords: %s\n  fields:   %s\n",
				rt.Name(),
				strings.Join(rt.Keywords(), ", "),
				strings.Join(fieldNames(rt), ", "))
		}
		return nil
	},
}

var templatesValidateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Check that a template document parses and every pattern compiles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := template.LoadRepository(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d template(s))\n", args[0], repo.Len())
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesValidateCmd)
}

func resolveRepository(args []string) (*template.Repository, error) {
	if len(args) == 0 {
		return defaults.Repository()
	}
	return template.LoadRepository(args[0])
}

func fieldNames(rt *template.RegexTemplate) []string {
	fields := rt.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
