// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
)

// ActionRunner[T] encapsulates the common action pattern for row-emitting
// subcommands. It handles the shared steps (GetMeta, short-circuit checks,
// BuildAttrs, schema dumping, and output emission), with the domain work
// provided by FetchFn.
type ActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	FetchFn      func(context.Context, *cli.Command) ([]T, error)
}

// Run executes the action with the provided context and command.
func (ar *ActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Step 2: Short-circuit checks.
	if ShortCircuitTLDR(ctx, cmd, ar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, ar.SchemaType) {
		return nil
	}

	// Step 3: BuildAttrs + debug.
	attrs := BuildAttrs(cmd, ar.DefaultAttrs...)
	log.Debugf("attrs: %v", attrs)

	// Step 4: Run the domain work.
	results, err := ar.FetchFn(ctx, cmd)
	if err != nil {
		return err
	}

	// Step 5: Emit + return.
	if err := EmitRows(results, attrs, cmd); err != nil {
		return err
	}
	return nil
}

// NewActionRunner creates an ActionRunner with the provided configuration.
// It's a convenience factory that reduces boilerplate in individual command
// files.
func NewActionRunner[T any](
	commandName string,
	schemaType reflect.Type,
	defaultAttrs []string,
	fetchFn func(context.Context, *cli.Command) ([]T, error),
) *ActionRunner[T] {
	return &ActionRunner[T]{
		CommandName:  commandName,
		SchemaType:   schemaType,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
