package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danieljhkim/cleanslate/internal/logging"
)

var (
	// Global flags
	jsonOutput   bool
	outputFormat string
	configFile   string
	verbose      bool

	groupTitleColor   = color.New(color.FgCyan, color.Bold)
	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for cleanslate.
var rootCmd = &cobra.Command{
	Use:     "cleanslate",
	Version: "dev",
	Short:   "Merge newly traced building footprints into existing map data",
	Long: `cleanslate folds newly traced building footprints into the existing
footprints they overlap.

Existing buildings are hidden while you trace, so you trace on a clean slate.
Merge then moves each traced outline onto the existing record it replaces,
keeping that record's identity and tags, and reports the rest for review.`,
	Example: `  cleanslate load area.geojson
  cleanslate merge area.geojson --dry-run
  cleanslate merge area.geojson
  cleanslate undo area.geojson`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := resolveOutputFormat(); err != nil {
			return err
		}
		cfg := logging.ConfigFromEnv()
		if verbose {
			cfg.Level = "debug"
		}
		logging.Configure(cfg)
		return nil
	},
}

// SetVersion sets the version reported by --version and the version command.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// groupedHelp renders help with commands listed under colored group titles.
func groupedHelp(cmd *cobra.Command, args []string) {
	var b strings.Builder

	if cmd.Long != "" {
		b.WriteString(cmd.Long)
		b.WriteString("\n\n")
	} else if cmd.Short != "" {
		b.WriteString(cmd.Short)
		b.WriteString("\n\n")
	}

	b.WriteString(sectionTitleColor.Sprint("Usage:"))
	fmt.Fprintf(&b, "\n  %s\n\n", cmd.UseLine())

	if cmd.Example != "" {
		b.WriteString(sectionTitleColor.Sprint("Examples:"))
		fmt.Fprintf(&b, "\n%s\n\n", cmd.Example)
	}

	listed := make(map[string]bool)
	for _, group := range cmd.Groups() {
		writeCommands(&b, groupTitleColor.Sprint(group.Title), cmd.Commands(), func(c *cobra.Command) bool {
			return c.GroupID == group.ID
		})
		listed[group.ID] = true
	}
	writeCommands(&b, sectionTitleColor.Sprint("Additional Commands:"), cmd.Commands(), func(c *cobra.Command) bool {
		return !listed[c.GroupID]
	})

	if cmd.HasAvailableLocalFlags() || cmd.HasAvailableInheritedFlags() {
		b.WriteString(sectionTitleColor.Sprint("Flags:"))
		b.WriteString("\n")
		b.WriteString(cmd.LocalFlags().FlagUsages())
		b.WriteString(cmd.InheritedFlags().FlagUsages())
		b.WriteString("\n")
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(&b, "Use \"%s [command] --help\" for more information about a command.\n", cmd.CommandPath())
	}

	fmt.Fprint(cmd.OutOrStdout(), b.String())
}

// writeCommands writes the available commands matching keep under title.
// Nothing is written when no command matches.
func writeCommands(b *strings.Builder, title string, cmds []*cobra.Command, keep func(*cobra.Command) bool) {
	var lines []string
	for _, c := range cmds {
		if c.IsAvailableCommand() && keep(c) {
			lines = append(lines, fmt.Sprintf("  %-11s %s", c.Name(), c.Short))
		}
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cleanslate CLI version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
	},
}

func init() {
	rootCmd.SetHelpFunc(groupedHelp)

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format (shorthand for --output json)")
	flags.StringVarP(&outputFormat, "output", "o", formatText, "Output format: text, json or yaml")
	flags.StringVar(&configFile, "config", "", "Config file (default ~/.cleanslate/config.yaml)")
	flags.BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: "workflow", Title: "Workflow:"},
		&cobra.Group{ID: "clean-slate", Title: "Clean Slate:"},
		&cobra.Group{ID: "server", Title: "Server:"},
		&cobra.Group{ID: "cli-tooling", Title: "CLI & Tooling:"},
	)

	addToGroup("workflow", loadCmd, mergeCmd, undoCmd, redoCmd, statusCmd)
	addToGroup("clean-slate", hideCmd, showCmd)
	addToGroup("server", serveCmd)
	addToGroup("cli-tooling", versionCmd)

	// cobra creates help and completion lazily; these place them in the
	// tooling group when it does
	rootCmd.SetHelpCommandGroupID("cli-tooling")
	rootCmd.SetCompletionCommandGroupID("cli-tooling")
}

func addToGroup(groupID string, cmds ...*cobra.Command) {
	for _, c := range cmds {
		c.GroupID = groupID
		rootCmd.AddCommand(c)
	}
}

// Execute executes the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}
