// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hollowco/wherepipe/internal/command"
)

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type TemplateData struct {
	ID      string
	IDUpper string
	Short   string
	Usage   string
	Aliases []string
	Flags   []Flag
	Date    string
	Version string
}

const markdownTemplate = `# wherepipe {{ .ID }}

{{ .Short }}

## Usage

    {{ .Usage }}
{{ if .Aliases }}
Aliases: {{ range $i, $a := .Aliases }}{{ if $i }}, {{ end }}` + "`{{ $a }}`" + `{{ end }}
{{ end }}
{{- if .Flags }}
## Flags

| Flag | Description | Default |
| ---- | ----------- | ------- |
{{- range .Flags }}
| ` + "`{{ .Syntax }}`" + ` | {{ .Description }} | {{ .Default }} |
{{- end }}
{{ end }}
_{{ .IDUpper }} reference generated {{ .Date }} for version {{ .Version }}._
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs-dir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	app, err := command.InitApp(context.Background(), []string{"wherepipe"})
	if err != nil {
		panic(err)
	}

	folder := filepath.Join(docs, "commands")
	if err := os.MkdirAll(folder, 0755); err != nil {
		panic(err)
	}

	for _, sub := range app.Commands {
		path := filepath.Join(folder, sub.Name+".md")
		fmt.Println("Generating", path)

		file, err := os.Create(path)
		if err != nil {
			panic(err)
		}
		if err := render(file, templateData(sub, getVersion())); err != nil {
			panic(err)
		}
		file.Close()
	}
}

// templateData collects what the page template needs from a subcommand.
func templateData(sub *cli.Command, version string) TemplateData {
	data := TemplateData{
		ID:      sub.Name,
		IDUpper: strings.ToUpper(sub.Name),
		Short:   sub.Usage,
		Usage:   sub.UsageText,
		Aliases: sub.Aliases,
		Date:    time.Now().Format("January 2, 2006"),
		Version: version,
	}

	for _, f := range sub.Flags {
		names := f.Names()
		syntax := make([]string, len(names))
		for i, n := range names {
			if len(n) == 1 {
				syntax[i] = "-" + n
			} else {
				syntax[i] = "--" + n
			}
		}

		flag := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
		if df, ok := f.(cli.DocGenerationFlag); ok {
			flag.Description = df.GetUsage()
			if df.TakesValue() {
				flag.Default = df.GetValue()
			}
		}
		data.Flags = append(data.Flags, flag)
	}

	return data
}

func render(w io.Writer, data TemplateData) error {
	tmpl, err := template.New("page").Parse(markdownTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
