// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sob/internal/adapters/cas"
	_ "go.trai.ch/sob/internal/adapters/config"
	_ "go.trai.ch/sob/internal/adapters/console"
	_ "go.trai.ch/sob/internal/adapters/fs"
	_ "go.trai.ch/sob/internal/adapters/logger"
	_ "go.trai.ch/sob/internal/adapters/shell"
	_ "go.trai.ch/sob/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/sob/internal/app"
	_ "go.trai.ch/sob/internal/engine/orchestrator"
)
