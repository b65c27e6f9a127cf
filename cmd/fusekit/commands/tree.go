package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/marmos91/fusekit/internal/cli/output"
	"github.com/marmos91/fusekit/pkg/config"
)

var treeOutput string

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the configured tree",
	Long: `Display the static tree declared in the configuration file.

This renders the tree as it would be served, without mounting anything.

Examples:
  # Show the configured tree
  fusekit tree

  # Show as JSON
  fusekit tree --output json

  # Show a specific config file's tree
  fusekit tree --config /etc/fusekit/config.yaml`,
	RunE: runTree,
}

func init() {
	treeCmd.Flags().StringVarP(&treeOutput, "output", "o", "table", "Output format (table|json|yaml)")
}

func runTree(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(treeOutput)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.PrintJSON(os.Stdout, cfg.Tree)
	case output.FormatYAML:
		return output.PrintYAML(os.Stdout, cfg.Tree)
	}

	if len(cfg.Tree) == 0 {
		fmt.Println("No tree entries configured.")
		return nil
	}

	table := output.NewTableData("PATH", "SOURCE", "SIZE", "MODE", "OWNER")
	for _, entry := range cfg.Tree {
		table.AddRow(
			entry.Path,
			entrySource(entry),
			entrySize(entry),
			entry.Mode,
			entryOwner(entry),
		)
	}

	return output.PrintTable(os.Stdout, table)
}

func entrySource(entry config.TreeEntry) string {
	if entry.ContentFile != "" {
		return entry.ContentFile
	}
	return "(inline)"
}

func entrySize(entry config.TreeEntry) string {
	if entry.ContentFile != "" {
		info, err := os.Stat(entry.ContentFile)
		if err != nil {
			return "?"
		}
		return strconv.FormatInt(info.Size(), 10)
	}
	return strconv.Itoa(len(entry.Content))
}

func entryOwner(entry config.TreeEntry) string {
	if entry.UID == nil && entry.GID == nil {
		return "(process)"
	}
	uid, gid := "-", "-"
	if entry.UID != nil {
		uid = strconv.FormatUint(uint64(*entry.UID), 10)
	}
	if entry.GID != nil {
		gid = strconv.FormatUint(uint64(*entry.GID), 10)
	}
	return uid + ":" + gid
}
