// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/topo/internal/adapters/logger"
	_ "go.trai.ch/topo/internal/adapters/manifest"
	// Register app nodes.
	_ "go.trai.ch/topo/internal/app"
)
