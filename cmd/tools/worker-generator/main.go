// cmd/tools/worker-generator/main.go
package main

import (
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"hauler-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name         string
	PackageName  string
	TaskType     string
	Description  string
	Timeout      string
	InputFields  []Field
	OutputFields []Field
}

type Field struct {
	Name     string
	JSONName string
	GoType   string
	Schema   string
}

func goType(jsonType string) string {
	switch jsonType {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		return "[]interface{}"
	default:
		return "map[string]interface{}"
	}
}

func fields(schema map[string]string) []Field {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Field, 0, len(names))
	for _, name := range names {
		out = append(out, Field{
			Name:     upperFirst(name),
			JSONName: name,
			GoType:   goType(schema[name]),
			Schema:   schema[name],
		})
	}
	return out
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// durationLiteral renders a registry timeout such as "5s" as Go source.
func durationLiteral(s string) (string, error) {
	if s == "" {
		return "5 * time.Second", nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return "", fmt.Errorf("invalid timeout %q: %w", s, err)
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%d * time.Second", d/time.Second), nil
	}
	return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond), nil
}

func packageName(id string) string {
	return strings.ReplaceAll(id, "-", "")
}

const configTemplate = `// internal/workers/{{ .Dir }}/config.go
package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .Timeout }},
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Dir }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .GoType }} ` + "`json:\"{{ .JSONName }}\"`" + `
{{- end }}
}

type Output struct {
{{- range .OutputFields }}
	{{ .Name }} {{ .GoType }} ` + "`json:\"{{ .JSONName }}\"`" + `
{{- end }}
}
`

const validationTemplate = `// internal/workers/{{ .Dir }}/validation.go
package {{ .PackageName }}

import "hauler-workers/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{ {{- range $i, $f := .InputFields }}{{ if $i }}, {{ end }}"{{ $f.JSONName }}"{{ end -}} },
		Properties: map[string]validation.Property{
{{- range .InputFields }}
			"{{ .JSONName }}": {Type: "{{ .Schema }}"},
{{- end }}
		},
	}
}
`

const handlerTemplate = `// internal/workers/{{ .Dir }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"hauler-workers/internal/common/camunda"
	"hauler-workers/internal/common/logger"
	"hauler-workers/internal/common/observability"
	"hauler-workers/internal/common/validation"
)

const (
	TaskType = "{{ .TaskType }}"
)

type Handler struct {
	config *Config
	logger logger.Logger
	runner *camunda.JobRunner
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config: config,
		logger: log,
		runner: camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context, _ logger.Logger) (interface{}, error) {
		var input Input
		if err := validation.Decode(job.Variables, GetInputSchema(), &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

// Execute {{ .Description }}.
func (h *Handler) Execute(_ context.Context, _ *Input) (*Output, error) {
	return nil, fmt.Errorf("%s is not implemented", TaskType)
}
`

const testTemplate = `// internal/workers/{{ .Dir }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"hauler-workers/internal/common/logger"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(nil, logger.NewTestLogger(t), nil)

	_, err := h.Execute(context.Background(), &Input{})
	assert.Error(t, err)
}
`

func main() {
	activity := flag.String("activity", "", "Activity ID or task type from registry (e.g., check-feature-access)")
	outputDir := flag.String("output", "./internal/workers/", "Output directory for the generated worker")
	registryPath := flag.String("registry", "configs/activity-registry.json", "Path to the activity registry JSON file")
	force := flag.Bool("force", false, "Overwrite existing files")
	flag.Parse()

	if *activity == "" {
		fmt.Println("Error: -activity is required")
		flag.Usage()
		os.Exit(1)
	}

	dir, err := generate(*registryPath, *activity, *outputDir, *force)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated worker in %s\n", dir)
}

func generate(registryPath, key, outputDir string, force bool) (string, error) {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return "", fmt.Errorf("failed to load registry: %w", err)
	}
	a, ok := reg.Find(key)
	if !ok {
		return "", fmt.Errorf("activity %q not found in registry", key)
	}

	timeout, err := durationLiteral(a.Timeout)
	if err != nil {
		return "", fmt.Errorf("activity %s: %w", a.ID, err)
	}

	data := struct {
		WorkerData
		Dir string
	}{
		WorkerData: WorkerData{
			Name:         a.DisplayName,
			PackageName:  packageName(a.ID),
			TaskType:     a.TaskType,
			Description:  lowerFirst(strings.TrimSuffix(a.Description, ".")),
			Timeout:      timeout,
			InputFields:  fields(a.InputSchema),
			OutputFields: fields(a.OutputSchema),
		},
		Dir: a.Category + "/" + a.ID,
	}

	workerDir := filepath.Join(outputDir, a.Category, a.ID)
	if err := os.MkdirAll(workerDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	files := map[string]string{
		"config.go":       configTemplate,
		"models.go":       modelsTemplate,
		"validation.go":   validationTemplate,
		"handler.go":      handlerTemplate,
		"handler_test.go": testTemplate,
	}
	for name, tmplStr := range files {
		path := filepath.Join(workerDir, name)
		if _, err := os.Stat(path); err == nil && !force {
			return "", fmt.Errorf("%s already exists (use -force to overwrite)", path)
		}

		tmpl, err := template.New(name).Parse(tmplStr)
		if err != nil {
			return "", fmt.Errorf("parse template %s: %w", name, err)
		}
		var buf strings.Builder
		if err := tmpl.Execute(&buf, data); err != nil {
			return "", fmt.Errorf("render %s: %w", name, err)
		}
		src, err := format.Source([]byte(buf.String()))
		if err != nil {
			return "", fmt.Errorf("format %s: %w", name, err)
		}
		if err := os.WriteFile(path, src, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	return workerDir, nil
}
