// cmd/tools/tier-check/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"hauler-workers/internal/common/config"
	"hauler-workers/internal/entitlement"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)
	validatePath := validateCmd.String("config", "configs/config.yaml", "Path to config file")

	showCmd := flag.NewFlagSet("show", flag.ContinueOnError)
	showPath := showCmd.String("config", "", "Path to config file (default: built-in table)")
	asJSON := showCmd.Bool("json", false, "Print the table as JSON")

	if len(args) < 1 {
		help(out)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "validate":
		if err := validateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if _, err := loadTable(*validatePath); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: tier table OK\n", *validatePath)
		return nil

	case "show":
		if err := showCmd.Parse(args[1:]); err != nil {
			return err
		}
		table, err := loadTable(*showPath)
		if err != nil {
			return err
		}
		if *asJSON {
			return printJSON(out, table)
		}
		return printTable(out, table)

	default:
		help(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func loadTable(path string) (*entitlement.Table, error) {
	if path == "" {
		return entitlement.Default(), nil
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	return cfg.Entitlements.Table()
}

func printJSON(out io.Writer, table *entitlement.Table) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(table.All())
}

type row struct {
	name  string
	value func(entitlement.Features) string
}

func printTable(out io.Writer, table *entitlement.Table) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "TIER")
	for _, t := range entitlement.Tiers {
		fmt.Fprintf(tw, "\t%s", t.Label())
	}
	fmt.Fprintln(tw)

	rows := []row{
		{"maxServiceAreas", func(f entitlement.Features) string { return f.MaxServiceAreas.String() }},
		{"maxJobRequests", func(f entitlement.Features) string { return f.MaxJobRequests.String() }},
	}
	for _, feature := range entitlement.AllFeatures {
		feature := feature
		rows = append(rows, row{string(feature), func(f entitlement.Features) string {
			v, _ := f.Flag(feature)
			return fmt.Sprintf("%t", v)
		}})
	}

	for _, row := range rows {
		fmt.Fprint(tw, row.name)
		for _, t := range entitlement.Tiers {
			f, err := table.Features(t)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "\t%s", row.value(f))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func help(out io.Writer) {
	fmt.Fprintln(out, "Usage: tier-check <command> [options]")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  validate -config <path>        Check that the configured tier table is complete and monotonic")
	fmt.Fprintln(out, "  show [-config <path>] [-json]  Print the effective tier table")
}
