package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	booklet "github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/yamlutil"
	flag "github.com/spf13/pflag"
)

// Plan output formats.
const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// planDoc is the machine-readable form of both plans.
type planDoc struct {
	Source string     `json:"source" yaml:"source"`
	Pages  []string   `json:"pages" yaml:"pages"`
	Web    []sheetDoc `json:"web" yaml:"web"`
	Print  []sheetDoc `json:"print" yaml:"print"`
}

// sheetDoc describes one output sheet.
type sheetDoc struct {
	File  string   `json:"file" yaml:"file"`
	Kind  string   `json:"kind" yaml:"kind"`
	Pages []string `json:"pages" yaml:"pages"`
}

// runPlanCmd prints both sheet plans without running any tool.
func runPlanCmd(args []string, env *Environment) int {
	flags, positional, err := parsePlanFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if err := runPlan(positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runPlan loads the page set, imposes it and writes the plans in the
// requested format.
func runPlan(positional []string, flags *planFlags, env *Environment) error {
	format := strings.ToLower(flags.format)
	switch format {
	case formatText, formatYAML, formatJSON:
	default:
		return fmt.Errorf("%w: %q (must be text, yaml or json)", ErrInvalidFormat, flags.format)
	}

	params, err := resolveParams(positional, &flags.build)
	if err != nil {
		return err
	}

	builder, err := newBuilder(params, flags.build.common.quiet, env)
	if err != nil {
		return err
	}
	defer func() { _ = builder.Close() }()

	plans, pages, err := builder.Plan(params.srcDir)
	if err != nil {
		return fmt.Errorf("%w%s", err, hintFor(err, params.marker()))
	}

	doc := newPlanDoc(params.srcDir, plans, pages)
	switch format {
	case formatJSON:
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case formatYAML:
		data, err := yamlutil.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(data)
		return err
	}
	printPlanText(env.Stdout, doc)
	return nil
}

// newPlanDoc names every page and sheet of plans.
func newPlanDoc(src string, plans *booklet.Plans, pages []booklet.Page) planDoc {
	doc := planDoc{
		Source: src,
		Pages:  make([]string, len(pages)),
		Web:    sheetDocs(plans.Reader, pages),
		Print:  sheetDocs(plans.Signature, pages),
	}
	for i, p := range pages {
		doc.Pages[i] = p.Name
	}
	return doc
}

func sheetDocs(plan booklet.SheetPlan, pages []booklet.Page) []sheetDoc {
	docs := make([]sheetDoc, len(plan.Sheets))
	for i, s := range plan.Sheets {
		names := make([]string, len(s.Pages))
		for j, idx := range s.Pages {
			names[j] = pages[idx].Name
		}
		docs[i] = sheetDoc{File: s.FileName(), Kind: s.Kind.String(), Pages: names}
	}
	return docs
}

// printPlanText prints one line per sheet, grouped by target.
func printPlanText(w io.Writer, doc planDoc) {
	fmt.Fprintf(w, "%d pages in %s\n", len(doc.Pages), doc.Source)
	for _, group := range []struct {
		title  string
		sheets []sheetDoc
	}{
		{"web (reading order)", doc.Web},
		{"print (saddle stitch)", doc.Print},
	} {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s:\n", group.title)
		for _, s := range group.sheets {
			fmt.Fprintf(w, "  %s  %-6s  %s\n", s.File, s.Kind, strings.Join(s.Pages, " + "))
		}
	}
}
