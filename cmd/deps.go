package main

import (
	"github.com/embedkit/boardagent"
	"github.com/embedkit/boardagent/internal/providers/serialport"
	"github.com/embedkit/boardagent/internal/settings"
)

// buildSynchronizer wires the default collaborators: filesystem serial
// provider, sqlite-backed settings store, no deploy guard (the CLI never
// deploys while handling a selection command).
func buildSynchronizer() (*boardagent.Synchronizer, *settings.Store) {
	store := settings.NewStore("")
	provider := serialport.New(boardagent.EnvString(boardagent.EnvDeviceGlobs, ""))
	return boardagent.NewSynchronizer(provider, store, nil), store
}
