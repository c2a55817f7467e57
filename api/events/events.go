// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/api/utils"
	"github.com/pixelplatform/staking/eventdb"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{
		db,
		limit,
	}
}

func (e *Events) parseFilter(query url.Values) (*eventdb.Filter, error) {
	filter := &eventdb.Filter{
		Op:    query.Get("op"),
		Order: eventdb.ASC,
	}
	if s := query.Get("asset"); s != "" {
		asset, err := utils.ParseAddress(s, "asset")
		if err != nil {
			return nil, err
		}
		filter.Asset = &asset
	}
	if s := query.Get("owner"); s != "" {
		owner, err := utils.ParseAddress(s, "owner")
		if err != nil {
			return nil, err
		}
		filter.Owner = &owner
	}
	switch order := eventdb.OrderType(query.Get("order")); order {
	case "", eventdb.ASC:
	case eventdb.DESC:
		filter.Order = eventdb.DESC
	default:
		return nil, utils.BadRequest(errors.Errorf("order: unknown value %q", order))
	}

	from, err := utils.ParseUint(query.Get("from"), "from", 0)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseUint(query.Get("to"), "to", 0)
	if err != nil {
		return nil, err
	}
	if query.Has("from") || query.Has("to") {
		if query.Has("from") && query.Has("to") && from > to {
			return nil, utils.BadRequest(errors.New("to must be greater than or equal to from"))
		}
		if !query.Has("to") {
			to = math.MaxInt64
		}
		if from > math.MaxInt64 || to > math.MaxInt64 {
			return nil, utils.BadRequest(fmt.Errorf("range exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
		}
		filter.Range = &eventdb.Range{From: from, To: to}
	}

	offset, err := utils.ParseUint(query.Get("offset"), "offset", 0)
	if err != nil {
		return nil, err
	}
	limit, err := utils.ParseUint(query.Get("limit"), "limit", e.limit)
	if err != nil {
		return nil, err
	}
	if offset > math.MaxInt64 {
		return nil, utils.BadRequest(fmt.Errorf("offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	if limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("limit exceeds the maximum allowed value of %d", e.limit))
	}
	filter.Options = &eventdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req.URL.Query())
	if err != nil {
		return err
	}
	events, err := e.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	out := make([]*Event, 0, len(events))
	for _, ev := range events {
		out = append(out, convertEvent(ev))
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /events").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
