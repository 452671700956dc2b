package main

import (
	"flag"
	"fmt"
	"os"

	gojson "github.com/goccy/go-json"

	schemac "github.com/schemac/schemac"
	"github.com/schemac/schemac/modelyaml"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "compile":
		compileCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `schemac CLI

Usage:
  schemac compile -f models.yaml [-name Model] [-o out.json] [-compact]
  schemac check   -f models.yaml -name Model instance.json

compile emits the JSON Schema document for a model declared in YAML.
check validates a JSON instance against the model's validator set and
reports every violation.`)
}

func compileCmd(args []string) {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	var file, name, out string
	var compact bool
	fs.StringVar(&file, "f", "", "YAML model definition file")
	fs.StringVar(&name, "name", "", "model name (defaults to the first document)")
	fs.StringVar(&out, "o", "", "output file (defaults to stdout)")
	fs.BoolVar(&compact, "compact", false, "emit compact JSON")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}

	m := loadModel(file, name)
	var (
		doc []byte
		err error
	)
	if compact {
		doc, err = m.JSON()
	} else {
		doc, err = m.JSONIndent()
	}
	if err != nil {
		fatalf("serialize: %v", err)
	}
	doc = append(doc, '\n')
	if out == "" {
		_, _ = os.Stdout.Write(doc)
		return
	}
	if err := os.WriteFile(out, doc, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var file, name string
	fs.StringVar(&file, "f", "", "YAML model definition file")
	fs.StringVar(&name, "name", "", "model name (defaults to the first document)")
	_ = fs.Parse(args)
	if file == "" || fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	m := loadModel(file, name)
	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fatalf("reading instance: %v", err)
	}
	instance, err := schemac.ParseInstance(raw)
	if err != nil {
		fatalf("parsing instance: %v", err)
	}
	issues := m.Validate(instance)
	if len(issues) == 0 {
		fmt.Println("valid")
		return
	}
	for _, it := range issues {
		line := map[string]any{"path": it.Path, "code": it.Code, "message": it.Message}
		if len(it.Params) > 0 {
			line["params"] = it.Params
		}
		b, err := gojson.Marshal(line)
		if err != nil {
			fatalf("serialize issue: %v", err)
		}
		fmt.Println(string(b))
	}
	os.Exit(1)
}

func loadModel(file, name string) *schemac.Model {
	data, err := os.ReadFile(file)
	if err != nil {
		fatalf("reading definitions: %v", err)
	}
	models, err := modelyaml.ImportAll(data, schemac.DefaultConfig())
	if err != nil {
		fatalf("compiling definitions: %v", err)
	}
	if len(models) == 0 {
		fatalf("no model documents in %s", file)
	}
	if name == "" {
		return models[0]
	}
	for _, m := range models {
		if m.Name() == name {
			return m
		}
	}
	fatalf("model %q not found in %s", name, file)
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "schemac: "+format+"\n", a...)
	os.Exit(1)
}
