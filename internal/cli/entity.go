package cli

import (
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/flowdeck/internal/console"
	"github.com/pkordes/flowdeck/internal/domain"
	"github.com/pkordes/flowdeck/internal/tagging"
)

type deskFunc[T tagging.Record[T]] func(*console.Console) *console.Desk[T]

// entityCmd builds the command group for one entity kind. Workflows and
// assistants share every subcommand.
func entityCmd[T tagging.Record[T]](a *App, use, short string, desk deskFunc[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	cmd.AddCommand(
		entityListCmd(a, use, desk),
		entityStatusCmd(a, use, desk, "publish", domain.StatusPublished),
		entityStatusCmd(a, use, desk, "unpublish", domain.StatusDraft),
		entityShareCmd(a, use, desk),
		entityTagCmd(a, use, desk),
		entityDeleteCmd(a, use, desk),
	)
	return cmd
}

type listFlags struct {
	search string
	status string
	tag    string
	sort   string
	asc    bool
	grid   bool
}

func entityListCmd[T tagging.Record[T]](a *App, use string, desk deskFunc[T]) *cobra.Command {
	var fl listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + use + ", filtered and sorted",
		Long: `List ` + use + `.

Examples:
  flowdeck ` + use + ` list --search sync --status published
  flowdeck ` + use + ` list --tag urgent --sort name --asc
  flowdeck ` + use + ` list --grid                # latest version per name`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status := domain.Status(fl.status)
			if status != "" && !status.Valid() {
				return fmt.Errorf("%w: --status must be draft or published", domain.ErrValidation)
			}
			field := domain.SortField(fl.sort)
			if !field.Valid() {
				return fmt.Errorf("%w: --sort must be one of name, created_at, updated_at, version", domain.ErrValidation)
			}

			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			d := desk(sess.Console)
			p := d.Pipeline()

			ctx := cmd.Context()
			if status != "" {
				if err := p.SetStatus(ctx, status); err != nil {
					return err
				}
			}
			if fl.tag != "" {
				if err := p.SetTag(ctx, tagging.Normalize(fl.tag)); err != nil {
					return err
				}
			}
			if fl.search != "" {
				p.SetSearch(fl.search)
			}
			p.SetSort(domain.Sort{Field: field, Desc: !fl.asc})

			if fl.grid {
				printGrid(cmd, d)
				return nil
			}
			printItems(cmd, d.Items())
			return nil
		},
	}
	cmd.Flags().StringVarP(&fl.search, "search", "s", "", "match name or description")
	cmd.Flags().StringVar(&fl.status, "status", "", "draft or published")
	cmd.Flags().StringVarP(&fl.tag, "tag", "t", "", "only entities holding this tag")
	cmd.Flags().StringVar(&fl.sort, "sort", string(domain.SortByCreatedAt), "name, created_at, updated_at or version")
	cmd.Flags().BoolVar(&fl.asc, "asc", false, "sort ascending")
	cmd.Flags().BoolVar(&fl.grid, "grid", false, "group versions of the same name into one row")
	return cmd
}

func printItems[T tagging.Record[T]](cmd *cobra.Command, items []T) {
	if len(items) == 0 {
		note(cmd, "Nothing matches")
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tSTATUS\tOWNER\tTAGS")
	for _, it := range items {
		e := it.Meta()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Name, e.Version, e.Status, e.Owner, strings.Join(e.Tags, ", "))
	}
	tw.Flush()
}

func printGrid[T tagging.Record[T]](cmd *cobra.Command, d *console.Desk[T]) {
	grid := d.Grid()
	families := grid.Families()
	if len(families) == 0 {
		note(cmd, "Nothing matches")
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tOTHER VERSIONS\tSTATUS\tTAGS")
	for _, f := range families {
		cur, _ := grid.Current(f.Name)
		e := cur.Meta()
		others := slices.DeleteFunc(f.Labels(), func(v string) bool { return v == e.Version })
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", f.Name, e.Version, strings.Join(others, ", "), e.Status, strings.Join(e.Tags, ", "))
	}
	tw.Flush()
}

func entityStatusCmd[T tagging.Record[T]](a *App, use string, desk deskFunc[T], verb string, status domain.Status) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <name|id>",
		Short: "Set a " + strings.TrimSuffix(use, "s") + " to " + string(status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			d := desk(sess.Console)

			it, err := d.Resolve(args[0])
			if err != nil {
				return err
			}
			set := d.Unpublish
			if status == domain.StatusPublished {
				set = d.Publish
			}
			res, err := set(cmd.Context(), it.Meta().ID)
			if err != nil {
				return err
			}
			ok(cmd, "%s %s is now %s", highlight.Sprint(res.Meta().Name), res.Meta().Version, res.Meta().Status)
			return nil
		},
	}
}

func entityShareCmd[T tagging.Record[T]](a *App, use string, desk deskFunc[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "share <name|id> <owner>",
		Short: "Transfer a " + strings.TrimSuffix(use, "s") + " to another owner",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner := strings.TrimSpace(args[1])
			if owner == "" {
				return fmt.Errorf("%w: owner is required", domain.ErrValidation)
			}
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			d := desk(sess.Console)

			it, err := d.Resolve(args[0])
			if err != nil {
				return err
			}
			res, err := d.Share(cmd.Context(), it.Meta().ID, owner)
			if err != nil {
				return err
			}
			ok(cmd, "%s now belongs to %s", highlight.Sprint(res.Meta().Name), highlight.Sprint(res.Meta().Owner))
			return nil
		},
	}
}

func entityTagCmd[T tagging.Record[T]](a *App, use string, desk deskFunc[T]) *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "tag <name|id> <tag>...",
		Short: "Add tags to a " + strings.TrimSuffix(use, "s") + ", creating unknown ones",
		Long: `Add tags to a ` + strings.TrimSuffix(use, "s") + `. Tags that do not exist yet are created first.

Examples:
  flowdeck ` + use + ` tag "Nightly sync" urgent billing
  flowdeck ` + use + ` tag "Nightly sync" urgent --remove`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			d := desk(sess.Console)
			ctx := cmd.Context()

			it, err := d.Resolve(args[0])
			if err != nil {
				return err
			}
			sel := sess.Console.TagSelector(ctx, it.Meta().Tags, nil)
			for _, name := range args[1:] {
				name = tagging.Normalize(name)
				held := slices.Contains(sel.Selected(), name)
				switch {
				case name == "":
				case remove && held:
					sel.Toggle(name)
				case remove || held:
				case slices.Contains(sess.Console.Tags(), name):
					sel.Toggle(name)
				default:
					sel.SetQuery(name)
					if !sel.Create() {
						return fmt.Errorf("create tag %q failed", name)
					}
					note(cmd, "Created tag %s", highlight.Sprint(name))
				}
			}
			if slices.Equal(sel.Selected(), it.Meta().Tags) {
				note(cmd, "%s already has those tags", highlight.Sprint(it.Meta().Name))
				return nil
			}

			res, err := d.SetTags(ctx, it.Meta().ID, sel.Selected())
			if err != nil {
				return err
			}
			ok(cmd, "%s tags: %s", highlight.Sprint(res.Meta().Name), tagList(res.Meta().Tags))
			return nil
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "remove the tags instead of adding them")
	return cmd
}

func entityDeleteCmd[T tagging.Record[T]](a *App, use string, desk deskFunc[T]) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <name|id>",
		Short: "Delete a " + strings.TrimSuffix(use, "s"),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.session(cmd)
			if err != nil {
				return err
			}
			defer sess.Close()
			d := desk(sess.Console)

			it, err := d.Resolve(args[0])
			if err != nil {
				return err
			}
			e := it.Meta()
			if !yes && !confirm(cmd, fmt.Sprintf("Delete %s %s?", e.Name, e.Version)) {
				fail(cmd, "Aborted")
				return nil
			}
			if err := d.Delete(cmd.Context(), e.ID); err != nil {
				return err
			}
			ok(cmd, "Deleted %s %s", highlight.Sprint(e.Name), e.Version)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
