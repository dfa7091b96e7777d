package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"kanban/internal/core"
)

// apiVersion is stamped into every response envelope.
const apiVersion = "0.1.0"

// response is the envelope every command prints to stdout.
type response struct {
	Success    bool         `json:"success"`
	APIVersion string       `json:"api_version"`
	Data       any          `json:"data,omitempty"`
	Error      *responseErr `json:"error,omitempty"`
}

type responseErr struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// listResponse wraps list results with an explicit count.
type listResponse struct {
	Items any `json:"items"`
	Count int `json:"count"`
}

func newListResponse[T any](items []T) listResponse {
	if items == nil {
		items = []T{}
	}
	return listResponse{Items: items, Count: len(items)}
}

// writeResult prints a success envelope. Output is indented when stdout
// is a terminal and compact when piped.
func writeResult(data any) error {
	return writeEnvelope(response{Success: true, APIVersion: apiVersion, Data: data})
}

// writeError prints a failure envelope and returns a sentinel that
// makes main exit non-zero without double-printing.
func writeError(err error) error {
	env := response{
		Success:    false,
		APIVersion: apiVersion,
		Error: &responseErr{
			Kind:      core.KindOf(err).String(),
			Message:   err.Error(),
			Retryable: core.IsRetryable(err),
		},
	}
	if werr := writeEnvelope(env); werr != nil {
		return werr
	}
	return errReported
}

// errReported marks errors already rendered into an envelope.
var errReported = errors.New("error already reported")

func writeEnvelope(env response) error {
	enc := json.NewEncoder(os.Stdout)
	if term.IsTerminal(int(os.Stdout.Fd())) {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return nil
}

// run wraps a command body so every outcome flows through the envelope.
func run(body func() (any, error)) error {
	data, err := body()
	if err != nil {
		return writeError(err)
	}
	return writeResult(data)
}
