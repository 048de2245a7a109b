// Package cli renders API results for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/opskit/landscapectl/internal/history"
	"github.com/opskit/landscapectl/internal/models"
	"github.com/opskit/landscapectl/internal/sysinfo"
)

func FormatJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func FormatScriptsTable(scripts []models.Script) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tOWNER\tCREATOR\tTIME LIMIT\tACCESS GROUP\tATTACHMENTS")

	for _, s := range scripts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%ds\t%s\t%d\n",
			s.ID,
			s.Title,
			s.Username,
			s.Creator.Name,
			s.TimeLimit,
			s.AccessGroup,
			len(s.Attachments),
		)
	}

	return w.Flush()
}

func FormatScriptDetail(script *models.Script) error {
	fmt.Printf("Script: %s (id %d)\n", script.Title, script.ID)
	fmt.Printf("Owner: %s\n", script.Username)
	fmt.Printf("Creator: %s <%s>\n", script.Creator.Name, script.Creator.Email)
	fmt.Printf("Time Limit: %ds\n", script.TimeLimit)
	fmt.Printf("Access Group: %s\n", script.AccessGroup)

	if len(script.Attachments) == 0 {
		fmt.Println("Attachments: none")
		return nil
	}

	fmt.Println("Attachments:")
	for _, name := range script.Attachments {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func FormatExecution(exec *models.ScriptExecution) error {
	fmt.Printf("Activity: %d (%s)\n", exec.ID, exec.Type)
	fmt.Printf("Summary: %s\n", exec.Summary)
	fmt.Printf("Created: %s\n", exec.CreationTime)
	fmt.Printf("Creator: %s\n", exec.Creator.Name)
	if exec.ComputerID != "" {
		fmt.Printf("Computer: %s\n", exec.ComputerID)
	}
	if exec.ParentID != "" {
		fmt.Printf("Parent: %s\n", exec.ParentID)
	}
	return nil
}

func FormatComputersTable(computers []models.Computer) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tHOSTNAME\tTITLE\tDISTRIBUTION\tMEMORY\tSWAP\tREBOOT\tTAGS\tLAST PING")

	for _, c := range computers {
		reboot := ""
		if c.RebootRequiredFlag {
			reboot = "required"
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.ID,
			c.Hostname,
			c.Title,
			c.Distribution,
			formatMegabytes(c.TotalMemory),
			formatMegabytes(c.TotalSwap),
			reboot,
			strings.Join(c.Tags, ","),
			c.LastPingTime,
		)
	}

	return w.Flush()
}

func FormatSnapshot(snapshot *sysinfo.Snapshot) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Hostname:\t%s\n", snapshot.Hostname)
	fmt.Fprintf(w, "Distribution:\t%s\n", snapshot.Distribution)
	fmt.Fprintf(w, "Uptime:\t%s\n", formatUptime(snapshot.UptimeSeconds))
	fmt.Fprintf(w, "CPU Cores:\t%d\n", snapshot.CPUCores)
	fmt.Fprintf(w, "Total Memory:\t%s\n", formatBytes(snapshot.TotalMemory))
	fmt.Fprintf(w, "Total Swap:\t%s\n", formatBytes(snapshot.TotalSwap))

	return w.Flush()
}

func FormatHistoryTable(entries []history.Entry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSCRIPT\tQUERY\tACTIVITY\tSUMMARY")

	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.ScriptTitle,
			e.Query,
			e.ActivityID,
			e.Summary,
		)
	}

	return w.Flush()
}

// The inventory reports memory and swap in megabytes.
func formatMegabytes(mb int) string {
	if mb == 0 {
		return ""
	}
	return fmt.Sprintf("%d MB", mb)
}

func formatBytes(n uint64) string {
	bytes := float64(n)
	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := 0
	for bytes >= 1024 && i < len(units)-1 {
		bytes /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", bytes, units[i])
}

func formatUptime(seconds uint64) string {
	d := time.Duration(seconds) * time.Second
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
