package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/appform-io/formkit/pkg/compiler"
	"github.com/appform-io/formkit/pkg/export"
	"github.com/appform-io/formkit/pkg/formdef"
	"github.com/appform-io/formkit/pkg/question"
	"github.com/appform-io/formkit/pkg/render"
	renderhtml "github.com/appform-io/formkit/pkg/render/html"
	"github.com/appform-io/formkit/pkg/render/tui"
)

func main() {
	mode := flag.String("mode", "validate", "one of: validate, export, render, run")
	source := flag.String("definition", "form.json", "form definition path or URL")
	rendererName := flag.String("renderer", "html", "renderer to use in render mode")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*source)
	if src == nil {
		log.Fatalf("invalid definition source: %q", *source)
	}

	doc, err := formdef.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load definition: %v", err)
	}
	def, err := formdef.ParseDocument(doc)
	if err != nil {
		log.Fatalf("Failed to parse definition: %v", err)
	}

	registry := question.DefaultRegistry()

	switch *mode {
	case "validate":
		issues := compiler.ValidateDefinition(def, registry)
		if len(issues) == 0 {
			fmt.Println("Definition is valid.")
			return
		}
		for _, issue := range issues {
			fmt.Fprintln(os.Stderr, issue.String())
		}
		os.Exit(1)
	case "export":
		data, err := export.MarshalSchema(def, registry)
		if err != nil {
			log.Fatalf("Failed to export schema: %v", err)
		}
		emit(*output, data)
	case "render":
		form, err := compiler.Compile(def, registry)
		if err != nil {
			log.Fatalf("Failed to compile form: %v", err)
		}
		renderers := render.NewRegistry()
		htmlRenderer, err := renderhtml.New()
		if err != nil {
			log.Fatalf("Failed to build renderer: %v", err)
		}
		renderers.MustRegister(htmlRenderer)
		renderer, err := renderers.Get(*rendererName)
		if err != nil {
			log.Fatalf("Unknown renderer %q (have: %s)", *rendererName, strings.Join(renderers.Names(), ", "))
		}
		markup, err := renderer.Render(ctx, form)
		if err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
		emit(*output, markup)
	case "run":
		form, err := compiler.Compile(def, registry)
		if err != nil {
			log.Fatalf("Failed to compile form: %v", err)
		}
		runner, err := tui.NewRunner(form)
		if err != nil {
			log.Fatalf("Failed to build runner: %v", err)
		}
		values, err := runner.Run(ctx)
		if err != nil {
			log.Fatalf("Session failed: %v", err)
		}
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode answers: %v", err)
		}
		emit(*output, data)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func emit(path string, data []byte) {
	if path == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Written to %s\n", path)
}

func parseSource(raw string) formdef.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return formdef.SourceFromURL(path)
	}
	return formdef.SourceFromFile(path)
}
