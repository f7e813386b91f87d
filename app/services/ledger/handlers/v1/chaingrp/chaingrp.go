// Package chaingrp maintains the group of handlers for chain access.
package chaingrp

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of chain endpoints.
type Handlers struct {
	Log         *zap.SugaredLogger
	State       *state.State
	MineTimeout time.Duration
	WS          websocket.Upgrader
	Evts        *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Subscribe before the handshake completes so no event sent after the
	// client is connected can be missed.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Blocks returns every block in the chain.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toBlocks(h.State.Blocks()), http.StatusOK)
}

// QueryBlock returns the block at the index in the path.
func (h Handlers) QueryBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.ParseUint(web.Param(r, "index"), 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block index: %w", err), http.StatusBadRequest)
	}

	blk, err := h.State.QueryBlock(index)
	if err != nil {
		if errors.Is(err, state.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("query block[%d]: %w", index, err)
	}

	return web.Respond(ctx, w, toBlock(blk), http.StatusOK)
}

// UTXO returns the current set of unspent outputs.
func (h Handlers) UTXO(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toUTXOs(h.State.UnspentOutputs()), http.StatusOK)
}

// Balances returns the unspent value held by every address, or by the
// address in the path.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	address := web.Param(r, "address")

	var bals []balance
	for addr, value := range h.State.Balances(address) {
		bals = append(bals, balance{Address: addr, Balance: value})
	}

	slices.SortFunc(bals, func(a, b balance) int {
		return cmp.Compare(a.Address, b.Address)
	})

	resp := balances{
		LatestBlock: h.State.LatestBlock().Hash.String(),
		Balances:    bals,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine builds the next block from the provided transactions, performs the
// proof of work and adds the block to the chain.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var nb newBlock
	if err := web.Decode(r, &nb); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	trans := toDBTrans(nb)

	h.Log.Infow("mine block", "traceid", web.GetTraceID(ctx), "trans", len(trans))

	ctx, cancel := context.WithTimeout(ctx, h.MineTimeout)
	defer cancel()

	blk, err := h.State.MineNextBlock(ctx, trans)
	if err != nil {
		switch {
		case state.IsBlockValidationErr(err):
			return errs.NewTrusted(err, http.StatusBadRequest)
		case errors.Is(err, context.DeadlineExceeded):
			return errs.NewTrusted(errors.New("mining timed out"), http.StatusServiceUnavailable)
		case errors.Is(err, context.Canceled):
			return errs.NewTrusted(errors.New("mining cancelled by the client"), http.StatusServiceUnavailable)
		case errors.Is(err, database.ErrMiningExhausted):
			return errs.NewTrusted(err, http.StatusServiceUnavailable)
		}
		return fmt.Errorf("mine block: %w", err)
	}

	return web.Respond(ctx, w, toBlock(blk), http.StatusCreated)
}
