// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/pixelplatform/staking/api/accounts"
	"github.com/pixelplatform/staking/api/events"
	"github.com/pixelplatform/staking/api/program"
	"github.com/pixelplatform/staking/api/transactions"
	"github.com/pixelplatform/staking/ledger"
	"github.com/pixelplatform/staking/log"
	"github.com/pixelplatform/staking/metrics"
)

var logger = log.WithContext("pkg", "api")

// DefaultEventsLimit is the maximum number of events returned by one query.
const DefaultEventsLimit = 1000

type Options struct {
	AllowedOrigins  string
	EventsLimit     uint64
	EnableMetrics   bool
	EnableReqLogger bool
}

// New return api router
func New(l *ledger.Ledger, opts Options) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	if opts.EventsLimit == 0 {
		opts.EventsLimit = DefaultEventsLimit
	}

	router := mux.NewRouter()

	accounts.New(l).
		Mount(router, "/accounts")
	program.New(l).
		Mount(router)
	transactions.New(l).
		Mount(router, "/transactions")
	if l.Events() != nil {
		events.New(l.Events(), opts.EventsLimit).
			Mount(router, "/events")
	}

	if opts.EnableMetrics {
		router.Path("/metrics").
			Methods(http.MethodGet).
			Name("GET /metrics").
			Handler(metrics.HTTPHandler())
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}
	return handler.ServeHTTP
}
