package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []string
	err  error
}

func (s *recordingSender) SendMessage(text string) error {
	s.sent = append(s.sent, text)
	return s.err
}

func TestRouterDispatchReplies(t *testing.T) {
	sender := &recordingSender{}
	r := NewRouter(context.Background(), sender)

	require.NoError(t, r.Register("getState", HandlerFunc(func(_ context.Context, params json.RawMessage) (any, error) {
		return map[string]float64{"gain": 0.5}, nil
	})))

	require.NoError(t, r.Dispatch(context.Background(), `{"message":"getState"}`))
	require.Len(t, sender.sent, 1)
	assert.JSONEq(t, `{"message":"getState","result":{"gain":0.5}}`, sender.sent[0])
}

func TestRouterPassesParams(t *testing.T) {
	r := NewRouter(context.Background(), &recordingSender{})

	var got struct {
		ID    string  `json:"id"`
		Value float64 `json:"value"`
	}
	require.NoError(t, r.Register("setParameter", HandlerFunc(func(_ context.Context, params json.RawMessage) (any, error) {
		return nil, json.Unmarshal(params, &got)
	})))

	require.NoError(t, r.Dispatch(context.Background(), `{"message":"setParameter","params":{"id":"gain","value":0.25}}`))
	assert.Equal(t, "gain", got.ID)
	assert.Equal(t, 0.25, got.Value)
}

func TestRouterNilResultSendsNothing(t *testing.T) {
	sender := &recordingSender{}
	r := NewRouter(context.Background(), sender)
	require.NoError(t, r.Register("ping", HandlerFunc(func(context.Context, json.RawMessage) (any, error) {
		return nil, nil
	})))

	require.NoError(t, r.Dispatch(context.Background(), `{"message":"ping"}`))
	assert.Empty(t, sender.sent)
}

func TestRouterHandlerErrorIsReported(t *testing.T) {
	sender := &recordingSender{}
	r := NewRouter(context.Background(), sender)
	require.NoError(t, r.Register("fail", HandlerFunc(func(context.Context, json.RawMessage) (any, error) {
		return nil, errors.New("out of range")
	})))

	require.NoError(t, r.Dispatch(context.Background(), `{"message":"fail"}`))
	require.Len(t, sender.sent, 1)
	assert.JSONEq(t, `{"message":"fail","error":"out of range"}`, sender.sent[0])
}

func TestRouterRejectsBadInput(t *testing.T) {
	r := NewRouter(context.Background(), &recordingSender{})

	assert.ErrorIs(t, r.Dispatch(context.Background(), `not json`), ErrMalformedEnvelope)
	assert.ErrorIs(t, r.Dispatch(context.Background(), `{"params":{}}`), ErrMalformedEnvelope)
	assert.ErrorIs(t, r.Dispatch(context.Background(), `{"message":"nope"}`), ErrUnknownMessage)

	// HandleMessage only logs.
	r.HandleMessage("not json")
}

func TestRouterRegisterValidation(t *testing.T) {
	r := NewRouter(context.Background(), nil)
	assert.Error(t, r.Register("", HandlerFunc(nil)))
	assert.Error(t, r.Register("x", nil))
	assert.Zero(t, r.Len())
}

func TestRouterSendWithoutSender(t *testing.T) {
	r := NewRouter(context.Background(), nil)
	assert.Error(t, r.Send("state", 1))

	sender := &recordingSender{}
	r.SetSender(sender)
	require.NoError(t, r.Send("state", 1))
	assert.JSONEq(t, `{"message":"state","result":1}`, sender.sent[0])
}
