package crossattack

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/mahdiidarabi/cross-attack-cost/pkg/numeric"
)

// Estimate pairs the results of both attack models for one parameter set.
type Estimate struct {
	Name     string          `json:"name,omitempty"`
	Backend  numeric.Backend `json:"backend"`
	Params   Params          `json:"params"`
	Original Result          `json:"original"`
	Revised  Result          `json:"revised"`
}

// Client provides a high-level API over a runtime-selected numeric backend.
type Client struct {
	backend      numeric.Backend
	exec         Executor
	log          *zerolog.Logger
	progress     func(model string) ProgressSink
	onDegenerate func(DegenerateEvent)
}

// NewClient creates a client with the default backend running sequentially.
func NewClient() *Client {
	nop := zerolog.Nop()
	return &Client{
		backend: numeric.DefaultBackend,
		exec:    Sequential{},
		log:     &nop,
	}
}

// WithBackend sets the numeric backend.
func (c *Client) WithBackend(backend numeric.Backend) *Client {
	c.backend = backend
	return c
}

// WithExecutor sets the executor the threshold units run on.
func (c *Client) WithExecutor(exec Executor) *Client {
	c.exec = exec
	return c
}

// WithLogger sets the logger.
func (c *Client) WithLogger(log *zerolog.Logger) *Client {
	c.log = log
	return c
}

// WithProgress sets a factory creating one progress sink per search.
func (c *Client) WithProgress(progress func(model string) ProgressSink) *Client {
	c.progress = progress
	return c
}

// WithDegenerateHandler sets the callback for probabilities clamped from 0/0.
func (c *Client) WithDegenerateHandler(fn func(DegenerateEvent)) *Client {
	c.onDegenerate = fn
	return c
}

// Backend returns the configured numeric backend.
func (c *Client) Backend() numeric.Backend {
	return c.backend
}

func (c *Client) options(model string) Options {
	opts := Options{Logger: c.log, OnDegenerate: c.onDegenerate}
	if c.progress != nil {
		opts.Progress = c.progress(model)
	}
	return opts
}

// Original estimates the original attack.
func (c *Client) Original(params Params) (Result, error) {
	return c.search(params, ModelOriginal)
}

// Revised estimates the revised attack.
func (c *Client) Revised(params Params) (Result, error) {
	return c.search(params, ModelRevised)
}

// Estimate runs both models, original first.
func (c *Client) Estimate(params Params) (*Estimate, error) {
	original, err := c.Original(params)
	if err != nil {
		return nil, err
	}
	revised, err := c.Revised(params)
	if err != nil {
		return nil, err
	}
	return &Estimate{
		Backend:  c.backend,
		Params:   params,
		Original: original,
		Revised:  revised,
	}, nil
}

func (c *Client) search(params Params, model string) (Result, error) {
	opts := c.options(model)
	switch c.backend {
	case numeric.BackendF64:
		return searchModel[numeric.F64](c.exec, params, model, opts)
	case numeric.BackendBig32:
		return searchModel[numeric.Big32](c.exec, params, model, opts)
	case numeric.BackendBig64:
		return searchModel[numeric.Big64](c.exec, params, model, opts)
	case numeric.BackendBig113:
		return searchModel[numeric.Big113](c.exec, params, model, opts)
	}
	return Result{}, errors.Errorf("unsupported numeric backend %q", c.backend)
}

func searchModel[T any, PT numeric.Float[T]](exec Executor, params Params, model string, opts Options) (Result, error) {
	switch model {
	case ModelOriginal:
		return EstimateAttack[T, PT](exec, params, opts)
	case ModelRevised:
		return EstimateAttackNew[T, PT](exec, params, opts)
	}
	return Result{}, errors.Errorf("unknown attack model %q", model)
}
