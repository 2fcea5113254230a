// Package dispatch exposes the job operations as a fixed catalogue of named,
// schema-validated tools and wraps every outcome in a uniform response
// envelope. An invocation always yields a response; internal failures are
// flagged, never propagated as transport errors.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/JJBon/synth-data-service/internal/backend"
	"github.com/JJBon/synth-data-service/internal/domain"
	"github.com/JJBon/synth-data-service/internal/logger"
)

// Content is one block of a tool response.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the uniform response envelope of a tool invocation. Success
// and failure are distinguished by IsError, not by the transport.
type CallResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
}

// entry is a catalogue registration plus its compiled argument schema.
type entry struct {
	registration
	schema *jsonschema.Schema
}

// Dispatcher validates and routes tool invocations to a backend.
type Dispatcher struct {
	backend backend.Backend
	ordered []*entry
	byName  map[string]*entry
}

// New builds a Dispatcher over the given backend, compiling every catalogue
// schema once up front.
func New(b backend.Backend) (*Dispatcher, error) {
	d := &Dispatcher{
		backend: b,
		byName:  make(map[string]*entry),
	}

	for _, reg := range catalogue() {
		schema, err := compileSchema(reg.tool.Name, reg.tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("compile schema for %s: %w", reg.tool.Name, err)
		}
		e := &entry{registration: reg, schema: schema}
		d.ordered = append(d.ordered, e)
		d.byName[reg.tool.Name] = e
	}
	return d, nil
}

// ListTools returns the operation catalogue in its fixed order.
func (d *Dispatcher) ListTools() []Tool {
	tools := make([]Tool, len(d.ordered))
	for i, e := range d.ordered {
		tools[i] = e.tool
	}
	return tools
}

// Call looks up the named operation, validates args against its schema, and
// invokes it. Every failure path returns an error-flagged envelope; Call
// itself never returns an error and recovers from handler panics.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]interface{}) (result *CallResult) {
	ctx = logger.SetTool(ctx, name)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.CtxError(ctx, "Tool handler panicked: %v", r)
			result = errorResult(fmt.Sprintf("internal error: %v", r))
		}
	}()

	e, ok := d.byName[name]
	if !ok {
		err := &domain.UnknownOperationError{Name: name}
		logger.CtxWarn(ctx, "%s", err.Error())
		return errorResult(err.Error())
	}

	if args == nil {
		args = map[string]interface{}{}
	}
	if err := e.schema.Validate(normalize(args)); err != nil {
		msg := fmt.Sprintf("invalid arguments for %s: %v", name, err)
		logger.CtxWarn(ctx, "%s", msg)
		return errorResult(msg)
	}

	out, err := e.handle(ctx, d.backend, args)
	if err != nil {
		logger.With(logger.Fields{
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
		}).Warn(ctx, "Tool call failed: %v", err)
		return errorResult(err.Error())
	}

	payload, err := json.Marshal(out)
	if err != nil {
		return errorResult(fmt.Sprintf("encode result: %v", err))
	}

	logger.With(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Tool call succeeded")

	return &CallResult{
		Content: []Content{{Type: "text", Text: string(payload)}},
		IsError: false,
	}
}

func errorResult(msg string) *CallResult {
	return &CallResult{
		Content: []Content{{Type: "text", Text: msg}},
		IsError: true,
	}
}

// compileSchema turns an inline schema document into a compiled validator.
func compileSchema(name string, doc map[string]interface{}) (*jsonschema.Schema, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	url := name + ".schema.json"
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(url)
}

// normalize round-trips args through JSON so in-process callers that pass Go
// ints or typed values validate the same way wire callers do.
func normalize(args map[string]interface{}) interface{} {
	b, err := json.Marshal(args)
	if err != nil {
		return args
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return args
	}
	return v
}
