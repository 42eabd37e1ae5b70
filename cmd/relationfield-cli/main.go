package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/goliatone/go-relationfield/components/relationsearch"
	"github.com/goliatone/go-relationfield/pkg/editors"
	"github.com/goliatone/go-relationfield/pkg/lookup"
	"github.com/goliatone/go-relationfield/pkg/relation"
	"github.com/goliatone/go-relationfield/pkg/schema"
	"github.com/goliatone/go-relationfield/pkg/tui"
)

func main() {
	schemaPath := flag.String("schema", "fields.yaml", "YAML field document path")
	fieldName := flag.String("field", "", "field to edit (defaults to the first relation field)")
	value := flag.String("value", "", "initial value: a single id or comma-separated ids")
	records := flag.String("records", "", "demo records as id:name pairs, comma separated; serves an in-process lookup endpoint")
	flag.Parse()

	ctx := context.Background()

	doc, err := schema.LoadDocumentFile(*schemaPath)
	if err != nil {
		log.Fatalf("load schema: %v", err)
	}

	field, ok := pickField(doc, *fieldName)
	if !ok {
		log.Fatalf("no relation field found in %s", *schemaPath)
	}

	if *records != "" {
		endpoint, closeServer := serveDemoRecords(*records)
		defer closeServer()
		field.Metadata = schema.FlattenLookupConfig(schema.LookupConfig{URL: endpoint})
	}

	registry := editors.NewRegistry()
	built, err := registry.Build(field)
	if err != nil {
		log.Fatalf("build editor: %v", err)
	}
	editor, ok := built.(*relation.Editor)
	if !ok {
		log.Fatalf("field %q did not resolve to the relation editor", field.Name)
	}

	if err := editor.PreBuild(); err != nil {
		log.Fatalf("prebuild: %v", err)
	}
	if *value != "" {
		if err := editor.SetValue(ctx, parseValue(*value, field.Multiple), true); err != nil {
			log.Fatalf("set value: %v", err)
		}
	}
	if err := editor.AfterInputReady(); err != nil {
		log.Fatalf("setup: %v", err)
	}

	picker := tui.NewPicker(nil)
	chosen, err := picker.Pick(ctx, editor)
	if err != nil {
		log.Fatalf("pick: %v", err)
	}

	payload, err := json.Marshal(chosen)
	if err != nil {
		log.Fatalf("encode value: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
}

func pickField(doc schema.Document, name string) (schema.Field, bool) {
	if name != "" {
		return doc.Field(name)
	}
	for _, field := range doc.Fields {
		if field.IsRelation() {
			return field, true
		}
	}
	return schema.Field{}, false
}

func parseValue(raw string, multiple bool) any {
	if !multiple {
		return raw
	}
	parts := strings.Split(raw, ",")
	out := make([]any, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func serveDemoRecords(raw string) (string, func()) {
	source := relationsearch.NewMapSource()
	for _, pair := range strings.Split(raw, ",") {
		id, name, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || id == "" {
			continue
		}
		source.Put(lookup.Record{ID: id, Name: name})
	}

	mux := http.NewServeMux()
	if _, err := relationsearch.RegisterRoutes(mux, "/", source, relationsearch.WithRoutePath("/")); err != nil {
		log.Fatalf("register demo routes: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("demo server: %v", err)
		}
	}()

	return "http://" + listener.Addr().String() + "/", func() { _ = server.Close() }
}
