// Package main generates docs/config_schema.json for the greeter config file.
package main

import (
	"os"
	"path/filepath"

	"github.com/yeisme/greeter/pkg/utils/schema"
)

//go:generate go run github.com/yeisme/greeter/cmd/schema
func main() {
	docsDir := filepath.Join("..", "..", "docs")
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		panic(err)
	}

	configSchemaFile, err := os.Create(filepath.Join(docsDir, "config_schema.json"))
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = configSchemaFile.Close()
	}()

	if err := schema.GenConfigSchema(configSchemaFile); err != nil {
		panic(err)
	}
}
