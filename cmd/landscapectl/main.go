package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/opskit/landscapectl/internal/cli"
	"github.com/opskit/landscapectl/internal/config"
	"github.com/opskit/landscapectl/internal/discovery"
	"github.com/opskit/landscapectl/internal/history"
	"github.com/opskit/landscapectl/internal/landscape"
	"github.com/opskit/landscapectl/internal/models"
	"github.com/opskit/landscapectl/internal/sysinfo"
	"github.com/spf13/cobra"
)

var outputJSON bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient loads configuration, falls back to Consul discovery when no
// direct endpoint is configured, and validates the credential triple
// before anything touches the network.
func newClient() (*landscape.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}

	if cfg.APIURI == "" && cfg.ConsulAddr != "" {
		resolver, err := discovery.New(cfg.ConsulAddr)
		if err != nil {
			return nil, cfg, err
		}
		uri, err := resolver.Endpoint()
		if err != nil {
			return nil, cfg, err
		}
		cfg.APIURI = uri
	}

	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}

	return landscape.New(cfg.APIURI, cfg.AccessKey, cfg.Secret), cfg, nil
}

// exitNotFound prints the distinguished not-found outcome; every other
// error propagates through cobra's error path.
func exitNotFound() {
	fmt.Fprintln(os.Stderr, "Script not found")
	os.Exit(1)
}

var rootCmd = &cobra.Command{
	Use:   "landscapectl",
	Short: "CLI for the Landscape systems-management API",
	Long: `landscapectl is a command-line client for the Landscape REST API.

It signs every request with the account's HMAC credentials and covers the
script inventory, script execution, attachment management, and the
computer inventory.`,
	SilenceUsage: true,
}

var scriptsCmd = &cobra.Command{
	Use:   "scripts",
	Short: "Manage and run scripts",
}

var listScriptsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all scripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		scripts, err := client.Scripts()
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.FormatJSON(scripts)
		}
		return cli.FormatScriptsTable(scripts)
	},
}

var getScriptCmd = &cobra.Command{
	Use:   "get [title]",
	Short: "Show the first script whose title starts with the given prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		script, err := client.Script(args[0])
		if errors.Is(err, landscape.ErrScriptNotFound) {
			exitNotFound()
		}
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.FormatJSON(script)
		}
		return cli.FormatScriptDetail(script)
	},
}

var executeScriptCmd = &cobra.Command{
	Use:   "execute [title] [query]",
	Short: "Run a script on every host matched by the query",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, query := args[0], args[1]

		client, cfg, err := newClient()
		if err != nil {
			return err
		}

		exec, err := client.ExecuteScript(title, query)
		if errors.Is(err, landscape.ErrScriptNotFound) {
			exitNotFound()
		}
		if err != nil {
			return err
		}

		recordHistory(cfg, title, query, exec)

		if outputJSON {
			return cli.FormatJSON(exec)
		}
		return cli.FormatExecution(exec)
	},
}

var attachmentsCmd = &cobra.Command{
	Use:   "attachments [title]",
	Short: "List the attachments of a script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		names, err := client.Attachments(args[0])
		if errors.Is(err, landscape.ErrScriptNotFound) {
			exitNotFound()
		}
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.FormatJSON(names)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var attachCmd = &cobra.Command{
	Use:   "attach [title] [file]",
	Short: "Upload a file as a script attachment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		out, err := client.CreateAttachment(args[0], args[1])
		if errors.Is(err, landscape.ErrScriptNotFound) {
			exitNotFound()
		}
		if err != nil {
			return err
		}

		fmt.Println(out)
		return nil
	},
}

var detachCmd = &cobra.Command{
	Use:   "detach [title] [filename]",
	Short: "Remove an attachment from a script",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		out, err := client.RemoveAttachment(args[0], args[1])
		if errors.Is(err, landscape.ErrScriptNotFound) {
			exitNotFound()
		}
		if err != nil {
			return err
		}

		fmt.Println(out)
		return nil
	},
}

var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "Query the computer inventory",
}

var listHostsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered hosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient()
		if err != nil {
			return err
		}

		computers, err := client.Computers()
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.FormatJSON(computers)
		}
		return cli.FormatComputersTable(computers)
	},
}

var localHostCmd = &cobra.Command{
	Use:   "local",
	Short: "Show the local machine the way the inventory would",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := sysinfo.Collect()
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.FormatJSON(snapshot)
		}
		return cli.FormatSnapshot(snapshot)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent script executions recorded on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Recent(limit)
		if err != nil {
			return err
		}

		if outputJSON {
			return cli.FormatJSON(entries)
		}
		return cli.FormatHistoryTable(entries)
	},
}

// recordHistory is best-effort: the remote execution already happened,
// so a local bookkeeping failure only warns.
func recordHistory(cfg config.Config, title, query string, exec *models.ScriptExecution) {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		log.Printf("History disabled: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(title, query, exec.ID, exec.Summary, exec.Type); err != nil {
		log.Printf("Failed to record execution: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "Output in JSON format")

	historyCmd.Flags().IntP("limit", "l", 20, "Number of history entries to show")

	scriptsCmd.AddCommand(listScriptsCmd)
	scriptsCmd.AddCommand(getScriptCmd)
	scriptsCmd.AddCommand(executeScriptCmd)
	scriptsCmd.AddCommand(attachmentsCmd)
	scriptsCmd.AddCommand(attachCmd)
	scriptsCmd.AddCommand(detachCmd)

	hostsCmd.AddCommand(listHostsCmd)
	hostsCmd.AddCommand(localHostCmd)

	rootCmd.AddCommand(scriptsCmd)
	rootCmd.AddCommand(hostsCmd)
	rootCmd.AddCommand(historyCmd)
}
