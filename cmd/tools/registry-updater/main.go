// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"hauler-workers/internal/common/errors"
	"hauler-workers/pkg/registry"
)

const defaultRegistryPath = "configs/activity-registry.json"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	addCmd := flag.NewFlagSet("add", flag.ContinueOnError)
	updateCmd := flag.NewFlagSet("update", flag.ContinueOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)

	addPath := addCmd.String("path", defaultRegistryPath, "Path to registry file")
	id := addCmd.String("id", "", "Activity ID (e.g., check-feature-access)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Check Feature Access)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., entitlement)")
	taskType := addCmd.String("taskType", "", "Zeebe task type (e.g., entitlement.feature.check)")
	version := addCmd.String("version", "1.0.0", "Version")
	status := addCmd.String("status", "planned", "Implementation status (planned, in-progress, completed, verified)")
	errorCodes := addCmd.String("errorCodes", "", "Comma separated error codes")

	updatePath := updateCmd.String("path", defaultRegistryPath, "Path to registry file")
	updateID := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, etc.)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultRegistryPath, "Path to registry file")

	if len(args) < 1 {
		help(out)
		return fmt.Errorf("missing command")
	}

	switch args[0] {
	case "add":
		if err := addCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *id == "" || *displayName == "" || *category == "" || *taskType == "" {
			return fmt.Errorf("id, displayName, category and taskType are required for add")
		}
		activity := registry.Activity{
			ID:                   *id,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			TaskType:             *taskType,
			ImplementationStatus: *status,
			InputSchema:          map[string]string{},
			OutputSchema:         map[string]string{},
			ErrorCodes:           splitCodes(*errorCodes),
			Timeout:              "5s",
		}
		if err := addActivity(*addPath, activity); err != nil {
			return err
		}
		fmt.Fprintf(out, "Added activity: %s\n", *id)

	case "update":
		if err := updateCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *updateID == "" || *field == "" || *value == "" {
			return fmt.Errorf("id, field and value are required for update")
		}
		if err := updateActivity(*updatePath, *updateID, *field, *value); err != nil {
			return err
		}
		fmt.Fprintf(out, "Updated activity %s, field %s to %s\n", *updateID, *field, *value)

	case "validate":
		if err := validateCmd.Parse(args[1:]); err != nil {
			return err
		}
		reg, err := registry.LoadRegistry(*validatePath)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		if err := reg.Validate(errors.KnownCodes()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Registry validation passed. Found %d activities.\n", len(reg.Activities))

	default:
		help(out)
		if args[0] != "help" {
			return fmt.Errorf("unknown command %q", args[0])
		}
	}
	return nil
}

func addActivity(path string, activity registry.Activity) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	if _, exists := reg.Find(activity.ID); exists {
		return fmt.Errorf("activity with ID %s already exists", activity.ID)
	}
	reg.Activities = append(reg.Activities, activity)

	if err := reg.Validate(errors.KnownCodes()); err != nil {
		return err
	}
	return reg.Save(path)
}

func updateActivity(path, id, field, value string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	a, ok := reg.Find(id)
	if !ok {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "category":
		a.Category = value
	case "taskType":
		a.TaskType = value
	case "timeout":
		a.Timeout = value
	case "errorCodes":
		a.ErrorCodes = splitCodes(value)
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := reg.Validate(errors.KnownCodes()); err != nil {
		return err
	}
	return reg.Save(path)
}

func splitCodes(s string) []string {
	codes := []string{}
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

func help(out io.Writer) {
	fmt.Fprint(out, `
Usage: registry-updater <command> [flags]

Commands:
  add      Add a new activity to the registry
  update   Update an existing activity's field
  validate Validate the registry file
  help     Show this help message

Examples:
  registry-updater add -id check-feature-access -displayName "Check Feature Access" -category entitlement -taskType entitlement.feature.check -errorCodes UNKNOWN_TIER,UNKNOWN_FEATURE
  registry-updater update -id check-feature-access -field status -value verified
  registry-updater validate -path configs/activity-registry.json
`)
}
