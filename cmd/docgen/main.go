// Package main provides a documentation generator for the reactive
// library. It generates API documentation from Go source code using
// gomarkdoc and writes it under docs/api/.
package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Package represents a Go package to document.
type Package struct {
	Name     string
	Path     string
	Position int
}

// Packages to document (public-facing), in order.
var packages = []Package{
	{Name: "reactive", Path: "pkg/reactive", Position: 1},
	{Name: "observe", Path: "pkg/observe", Position: 2},
	{Name: "errors", Path: "pkg/errors", Position: 3},
}

func main() {
	// Find repository root (where go.mod is)
	root, err := findRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error finding repo root: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Repository root: %s\n", root)

	// Ensure gomarkdoc is installed
	if err := ensureGomarkdoc(); err != nil {
		fmt.Fprintf(os.Stderr, "Error ensuring gomarkdoc: %v\n", err)
		os.Exit(1)
	}

	apiDir := filepath.Join(root, "docs", "api")
	if err := os.MkdirAll(apiDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating api directory: %v\n", err)
		os.Exit(1)
	}

	// Generate API docs for each package
	for _, pkg := range packages {
		pkgPath := filepath.Join(root, pkg.Path)
		if _, err := os.Stat(pkgPath); os.IsNotExist(err) {
			fmt.Printf("Skipping %s (not found)\n", pkg.Name)
			continue
		}

		fmt.Printf("Generating docs for %s...\n", pkg.Name)
		if err := generatePackageDocs(root, pkg, apiDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating docs for %s: %v\n", pkg.Name, err)
			os.Exit(1)
		}
	}

	fmt.Println("\nDocumentation generated successfully!")
}

func findRepoRoot() (string, error) {
	// Start from current directory
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// Walk up looking for go.mod
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find go.mod in any parent directory")
		}
		dir = parent
	}
}

func ensureGomarkdoc() error {
	// Check if gomarkdoc is installed
	if _, err := exec.LookPath("gomarkdoc"); err == nil {
		return nil
	}

	fmt.Println("Installing gomarkdoc...")
	cmd := exec.Command("go", "install", "github.com/princjef/gomarkdoc/cmd/gomarkdoc@latest")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func generatePackageDocs(root string, pkg Package, apiDir string) error {
	pkgPath := "./" + pkg.Path

	cmd := exec.Command("gomarkdoc", pkgPath)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Log warning but don't fail - some packages may have complex build constraints
		fmt.Printf("  Warning: skipping %s (gomarkdoc error)\n", pkg.Name)
		return nil
	}

	content := stdout.String()
	if content == "" {
		fmt.Printf("  Warning: no documentation generated for %s\n", pkg.Name)
		return nil
	}

	// Process the markdown content
	content = processMarkdown(pkg, content)

	// Add frontmatter
	frontmatter := fmt.Sprintf(`---
id: %s
title: %s
sidebar_position: %d
---

`, pkg.Name, formatTitle(pkg.Name), pkg.Position)

	finalContent := frontmatter + content

	// Write to file
	outputPath := filepath.Join(apiDir, pkg.Name+".md")
	return os.WriteFile(outputPath, []byte(finalContent), 0644)
}

func formatTitle(name string) string {
	titles := map[string]string{
		"reactive": "Reactive",
		"observe":  "Observe",
		"errors":   "Errors",
	}

	if title, ok := titles[name]; ok {
		return title
	}
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func processMarkdown(pkg Package, content string) string {
	lines := strings.Split(content, "\n")
	var result []string
	skipNext := false
	inIndex := false

	for i, line := range lines {
		// Skip the first header line since we add our own title
		if i == 0 && strings.HasPrefix(line, "# ") {
			continue
		}

		// Skip the Index section (starts with "## Index", ends at next ## heading)
		if line == "## Index" {
			inIndex = true
			continue
		}
		if inIndex {
			// End of index section when we hit another ## heading
			if strings.HasPrefix(line, "## ") {
				inIndex = false
				// Fall through to process this line
			} else {
				continue
			}
		}

		// Skip "import" lines that show the import path
		if strings.HasPrefix(line, "```go") && i+1 < len(lines) && strings.Contains(lines[i+1], "import") {
			skipNext = true
		}
		if skipNext && line == "```" {
			skipNext = false
			continue
		}
		if skipNext {
			continue
		}

		// Convert <details><summary>Example</summary> to **Example:**
		if strings.HasPrefix(line, "<details><summary>") && strings.HasSuffix(line, "</summary>") {
			// Extract the summary text
			summary := line[len("<details><summary>") : len(line)-len("</summary>")]
			result = append(result, "")
			result = append(result, fmt.Sprintf("**%s:**", summary))
			result = append(result, "")
			continue
		}

		// Skip </details>, <p>, and </p> tags from gomarkdoc
		if line == "</details>" || line == "<p>" || line == "</p>" {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
