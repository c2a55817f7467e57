// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides contextual loggers whose output can be redirected
// after they are created.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync/atomic"

	gethlog "github.com/ethereum/go-ethereum/log"
)

// Logger writes key/value pairs.
type Logger = gethlog.Logger

// Verbosity levels, from least to most verbose.
const (
	LvlCrit = iota
	LvlError
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

var root = newSwapHandler(gethlog.NewTerminalHandlerWithLevel(os.Stderr, gethlog.LevelInfo, false))

func init() {
	gethlog.SetDefault(gethlog.NewLogger(root))
}

// WithContext creates a logger carrying the given context pairs.
func WithContext(ctx ...any) Logger {
	return gethlog.NewLogger(root).With(ctx...)
}

// Root returns the root logger.
func Root() Logger {
	return gethlog.NewLogger(root)
}

// SetHandler redirects all loggers, including those already created, to h.
func SetHandler(h slog.Handler) {
	root.inner.Store(&h)
}

// NewTerminalHandler creates a human readable handler filtering at the given verbosity.
func NewTerminalHandler(w io.Writer, verbosity int, useColor bool) slog.Handler {
	return gethlog.NewTerminalHandlerWithLevel(w, gethlog.FromLegacyLevel(verbosity), useColor)
}

func Debug(msg string, ctx ...any) { Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { Root().Error(msg, ctx...) }

// swapHandler forwards records to a replaceable inner handler.
type swapHandler struct {
	inner *atomic.Pointer[slog.Handler]
	attrs []slog.Attr
}

func newSwapHandler(h slog.Handler) *swapHandler {
	p := new(atomic.Pointer[slog.Handler])
	p.Store(&h)
	return &swapHandler{inner: p}
}

func (h *swapHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return (*h.inner.Load()).Enabled(ctx, lvl)
}

func (h *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	inner := *h.inner.Load()
	if len(h.attrs) > 0 {
		inner = inner.WithAttrs(h.attrs)
	}
	return inner.Handle(ctx, r)
}

func (h *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &swapHandler{
		inner: h.inner,
		attrs: append(slices.Clone(h.attrs), attrs...),
	}
}

func (h *swapHandler) WithGroup(string) slog.Handler {
	return h
}
