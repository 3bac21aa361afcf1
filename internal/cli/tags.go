package cli

import (
	"errors"
	"fmt"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/tagging"
)

func tagsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage the tag vocabulary",
		Long: `Manage the tag vocabulary shared by workflows and assistants.
Renames and deletes apply to every entity holding the tag.`,
	}
	cmd.AddCommand(
		tagsListCmd(a),
		tagsCreateCmd(a),
		tagsRenameCmd(a),
		tagsDeleteCmd(a),
		tagsUsageCmd(a),
		tagsSuggestCmd(a),
	)
	return cmd
}

func tagsListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags in registry order with their usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			tags := sess.Console.Tags()
			if len(tags) == 0 {
				note(cmd, "No tags yet. Use %s to add one", highlight.Sprint("flowdeck tags create <name>"))
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TAG\tUSAGE")
			for _, t := range tags {
				fmt.Fprintf(tw, "%s\t%s\n", t, sess.Console.Usage(t))
			}
			tw.Flush()
			return nil
		},
	}
}

func tagsCreateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Register a new tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			if !sess.Console.OnCreateTag(cmd.Context(), args[0]) {
				name := tagging.Normalize(args[0])
				switch {
				case name == "":
					return fmt.Errorf("tag name is empty: %w", domain.ErrValidation)
				case slices.Contains(sess.Console.Tags(), name):
					return fmt.Errorf("tag %q: %w", name, domain.ErrConflict)
				default:
					return fmt.Errorf("tag %q was not created", name)
				}
			}
			ok(cmd, "Created tag %s", highlight.Sprint(args[0]))
			return nil
		},
	}
}

func tagsRenameCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old> <new>",
		Short: "Rename a tag on every workflow and assistant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.Console.OnRenameTag(cmd.Context(), args[0], args[1]); err != nil {
				if errors.Is(err, domain.ErrConflict) {
					note(cmd, "Delete %s first, or pick another name", highlight.Sprint(args[1]))
				}
				return err
			}
			usage := sess.Console.Usage(args[1])
			ok(cmd, "Renamed %s to %s, %s", highlight.Sprint(args[0]), highlight.Sprint(args[1]), usage)
			return nil
		},
	}
}

func tagsDeleteCmd(a *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a tag and remove it from every entity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			usage := sess.Console.Usage(args[0])
			if !yes && !confirm(cmd, fmt.Sprintf("Delete tag %q (%s)?", usage.Tag, usage)) {
				fail(cmd, "Aborted")
				return nil
			}
			if err := sess.Console.OnDeleteTag(cmd.Context(), args[0]); err != nil {
				return err
			}
			ok(cmd, "Deleted tag %s from %d entities", highlight.Sprint(usage.Tag), len(usage.Entities))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func tagsUsageCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "usage <name>",
		Short: "Show which workflows and assistants hold a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[0], sess.Console.Usage(args[0]))
			return nil
		},
	}
}

func tagsSuggestCmd(a *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "suggest [query]",
		Short: "Show the tags the selector would offer for a query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()

			sel := sess.Console.TagSelector(cmd.Context(), nil, nil)
			if len(args) == 1 {
				sel.SetQuery(args[0])
			}
			if all {
				sel.ShowAll()
			}
			for _, s := range sel.Suggestions() {
				fmt.Fprintf(cmd.OutOrStdout(), "  • %s\n", s.Tag)
			}
			if sel.HasMore() {
				note(cmd, "More tags match. Use %s to see them", highlight.Sprint("--all"))
			}
			if sel.CanCreate() {
				note(cmd, "%s does not exist yet. Use %s to create it",
					highlight.Sprint(sel.Query()), highlight.Sprint("flowdeck tags create"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "show every match instead of the recent view")
	return cmd
}
