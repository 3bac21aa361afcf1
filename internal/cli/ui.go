package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// formatter colors text, or decorates it when color is off.
type formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

func (f formatter) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

func noColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return true
	}
	return color.NoColor
}

var (
	success   = formatter{color: color.New(color.FgGreen)}
	failure   = formatter{color: color.New(color.FgRed)}
	hint      = formatter{color: color.New(color.FgCyan)}
	highlight = formatter{color.New(color.FgYellow), "'", "'"}
	muted     = formatter{color.New(color.Faint), "(", ")"}
)

// ok prints a success line.
func ok(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), success.Sprint("✓")+" "+fmt.Sprintf(format, a...))
}

// note prints an informational line.
func note(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), hint.Sprint("→")+" "+fmt.Sprintf(format, a...))
}

// fail prints a refusal that is not an error, e.g. a declined prompt.
func fail(cmd *cobra.Command, format string, a ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), failure.Sprint("✗")+" "+fmt.Sprintf(format, a...))
}

// spin shows a spinner on stderr until the returned func is called.
// Verbose runs log instead, so the spinner stays off.
func (a *App) spin(cmd *cobra.Command, message string) func() {
	if a.verbose {
		a.log.Debug(message)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + message
	if err := s.Color("cyan"); err != nil {
		a.log.Debug("spinner color unavailable", "error", err)
	}
	s.Start()
	return s.Stop
}

// confirm asks a yes/no question on the command's input. Anything but y or
// yes is a no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprint(cmd.OutOrStdout(), question+" [y/N] ")
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return muted.Sprint("none")
	}
	return strings.Join(tags, ", ")
}
