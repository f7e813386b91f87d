// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/app/services/ledger/handlers/v1/chaingrp"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log         *zap.SugaredLogger
	State       *state.State
	MineTimeout time.Duration
	Evts        *events.Events
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	cgh := chaingrp.Handlers{
		Log:         cfg.Log,
		State:       cfg.State,
		MineTimeout: cfg.MineTimeout,
		Evts:        cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", cgh.Events)
	app.Handle(http.MethodGet, version, "/blocks/list", cgh.Blocks)
	app.Handle(http.MethodGet, version, "/blocks/list/:index", cgh.QueryBlock)
	app.Handle(http.MethodGet, version, "/utxo/list", cgh.UTXO)
	app.Handle(http.MethodGet, version, "/balances/list", cgh.Balances)
	app.Handle(http.MethodGet, version, "/balances/list/:address", cgh.Balances)
	app.Handle(http.MethodPost, version, "/blocks/mine", cgh.Mine)
}
