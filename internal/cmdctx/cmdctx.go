// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Global Facility for Disaster Reduction and Recovery

// Package cmdctx threads the loaded configuration through cobra command
// contexts.
package cmdctx

import (
	"context"

	"github.com/GFDRR/rdls-spreadsheet-template/internal/config"
)

type ctxKey struct{}

// With returns a context carrying cfg.
func With(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// From extracts the configuration from a context.
// Returns nil if none is stored.
func From(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ctxKey{}).(*config.Config)
	return cfg
}
