// Command codegen generates the bridge symbol table from the C shim header.
// It scans cshim/trt_bridge.h for exported trtgo_* declarations and emits a
// symbols.go listing every symbol the loader must resolve.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

var declPattern = regexp.MustCompile(`\b(trtgo_[a-z0-9_]+)\s*\(`)

type GeneratorConfig struct {
	Header      string
	PackageName string
	Symbols     []string
}

const symbolsTemplate = `// Code generated by tools/codegen from {{.Header}}; DO NOT EDIT.

package {{.PackageName}}

// symbolNames lists every exported function of the bridge library,
// in declaration order. Load checks each one before registration.
var symbolNames = []string{
{{- range .Symbols}}
	"{{.}}",
{{- end}}
}
`

func main() {
	header := flag.String("header", "cshim/trt_bridge.h", "Path to the bridge header")
	outDir := flag.String("out", "", "Output directory (e.g., tensorrt/internal/api/v10)")
	flag.Parse()

	if *outDir == "" {
		log.Fatal("Output directory is required (-out flag)")
	}

	symbols, err := parseHeader(*header)
	if err != nil {
		log.Fatalf("Failed to parse header: %v", err)
	}
	log.Printf("Found %d bridge symbols", len(symbols))

	config := GeneratorConfig{
		Header:      filepath.ToSlash(*header),
		PackageName: filepath.Base(*outDir),
		Symbols:     symbols,
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	if err := executeTemplate(filepath.Join(*outDir, "symbols.go"), symbolsTemplate, config); err != nil {
		log.Fatalf("Failed to generate symbols.go: %v", err)
	}
	log.Println("Generated symbols.go")
}

func parseHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var symbols []string
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "#") {
			continue
		}
		// Typedefs (e.g. the log callback) are not exported symbols.
		if strings.HasPrefix(line, "typedef") {
			continue
		}
		for _, match := range declPattern.FindAllStringSubmatch(line, -1) {
			name := match[1]
			if !seen[name] {
				seen[name] = true
				symbols = append(symbols, name)
			}
		}
	}
	return symbols, scanner.Err()
}

func executeTemplate(path, tmplStr string, config GeneratorConfig) error {
	tmpl, err := template.New("").Parse(tmplStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, config); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		log.Printf("Warning: failed to format code: %v", err)
		formatted = buf.Bytes()
	}

	if err := os.WriteFile(path, formatted, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
