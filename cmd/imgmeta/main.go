// cmd/imgmeta/main.go
package main

import (
	"github.com/pixmeta/image-metadata-analyzer/internal/logger"
	"github.com/pixmeta/image-metadata-analyzer/pkg/cli"
)

func main() {
	// Initialize logger
	logger.Init()

	// Execute CLI
	cli.Execute()
}
