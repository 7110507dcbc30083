// Command generate-form-model writes each bundled form, with option sources
// and widgets resolved, as indented JSON so front-ends can consume the same
// definitions the Go session validates against.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-intake/pkg/forms"
	"github.com/goliatone/go-intake/pkg/widgets"
)

func main() {
	outputDir := flag.String("output", "build/forms", "directory for the serialized form models")
	flag.Parse()

	store, err := forms.LoadFS(forms.EmbeddedFS(), forms.ResolveOptions(), widgets.NewRegistry())
	if err != nil {
		log.Fatalf("load forms: %v", err)
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}

	for _, id := range store.IDs() {
		form, _ := store.Form(id)
		payload, err := json.MarshalIndent(form, "", "  ")
		if err != nil {
			log.Fatalf("marshal %s: %v", id, err)
		}
		path := filepath.Join(*outputDir, id+".json")
		if err := os.WriteFile(path, payload, 0o644); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}
