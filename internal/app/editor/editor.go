// Package editor couples a plugin's parameters with its web editor page.
package editor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bnema/plugview/internal/app/messaging"
	"github.com/bnema/plugview/internal/application/nativeview"
	"github.com/bnema/plugview/internal/logging"
)

// Message names understood by the editor page protocol.
const (
	MsgOnLoad       = "onLoad"
	MsgSetParameter = "setParameter"
	MsgGetState     = "getState"
	MsgClose        = "close"
	MsgState        = "state"
)

const stateTopic = "parameters"

// State is the snapshot pushed to the page.
type State struct {
	Parameters []Parameter `json:"parameters"`
}

type setParameterParams struct {
	ID    string   `json:"id"`
	Value *float64 `json:"value"`
}

// Options configures an Editor.
type Options struct {
	// DedupeState suppresses pushing a snapshot identical to the last one.
	DedupeState bool
	// OnClose runs when the page asks to close the editor.
	OnClose func()
}

// Editor answers the page's requests from a ParameterStore.
type Editor struct {
	store  ParameterStore
	router *messaging.Router
	dedup  *messaging.StateDeduplicator
	opts   Options
	logger zerolog.Logger
}

func New(ctx context.Context, store ParameterStore, opts Options) *Editor {
	ctx = logging.WithComponent(ctx, "editor")

	e := &Editor{
		store:  store,
		router: messaging.NewRouter(ctx, nil),
		dedup:  messaging.NewStateDeduplicator(),
		opts:   opts,
		logger: *logging.FromContext(ctx),
	}

	e.mustRegister(MsgOnLoad, e.handleOnLoad)
	e.mustRegister(MsgSetParameter, e.handleSetParameter)
	e.mustRegister(MsgGetState, e.handleGetState)
	e.mustRegister(MsgClose, e.handleClose)
	return e
}

func (e *Editor) mustRegister(name string, fn messaging.HandlerFunc) {
	if err := e.router.Register(name, fn); err != nil {
		panic(fmt.Sprintf("editor: register %s: %v", name, err))
	}
}

// Configure wires the editor into a view configuration.
func (e *Editor) Configure(cfg *nativeview.WebViewConfiguration) {
	cfg.OnMessageReceived = e.router.HandleMessage
	cfg.OnLoad = e.pageLoaded
}

// Bind sets the view replies and state pushes are sent to.
func (e *Editor) Bind(view messaging.Sender) {
	e.router.SetSender(view)
}

// Router exposes the message router for additional handlers.
func (e *Editor) Router() *messaging.Router {
	return e.router
}

// State returns the current parameter snapshot.
func (e *Editor) State() State {
	return State{Parameters: e.store.Parameters()}
}

// PushState sends the current state to the page unless it is identical to
// the previous push and deduplication is on.
func (e *Editor) PushState() error {
	state := e.State()
	if e.opts.DedupeState {
		data, err := json.Marshal(state)
		if err != nil {
			return fmt.Errorf("marshal state: %w", err)
		}
		if !e.dedup.ShouldSend(stateTopic, data) {
			e.logger.Trace().Msg("state unchanged, not pushed")
			return nil
		}
	}
	return e.router.Send(MsgState, state)
}

// SetParameter changes a value from the host side (automation, presets)
// and pushes the new state.
func (e *Editor) SetParameter(id string, v float64) error {
	if _, err := e.store.Set(id, v); err != nil {
		return err
	}
	return e.PushState()
}

// pageLoaded runs for every completed navigation. The page starts with no
// state, so the next push must not be deduplicated away.
func (e *Editor) pageLoaded(exec nativeview.ExecuteJavascript) {
	e.dedup.ResetAll()
	exec(fmt.Sprintf("window.plugviewParameterCount = %d;", len(e.store.Parameters())))
	e.logger.Debug().Msg("editor page loaded")
}

func (e *Editor) handleOnLoad(context.Context, json.RawMessage) (any, error) {
	return nil, e.PushState()
}

func (e *Editor) handleSetParameter(_ context.Context, raw json.RawMessage) (any, error) {
	var params setParameterParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("decode setParameter params: %w", err)
	}
	if params.ID == "" || params.Value == nil {
		return nil, fmt.Errorf("setParameter requires id and value")
	}

	p, err := e.store.Set(params.ID, *params.Value)
	if err != nil {
		return nil, err
	}
	e.logger.Debug().Str("id", p.ID).Float64("value", p.Value).Msg("parameter set from page")
	return nil, e.PushState()
}

func (e *Editor) handleGetState(context.Context, json.RawMessage) (any, error) {
	return e.State(), nil
}

func (e *Editor) handleClose(context.Context, json.RawMessage) (any, error) {
	if e.opts.OnClose != nil {
		e.opts.OnClose()
	}
	return nil, nil
}
