// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	"github.com/pixelplatform/staking/eventdb"
	"github.com/pixelplatform/staking/genesis"
	"github.com/pixelplatform/staking/kv"
	"github.com/pixelplatform/staking/log"
	"github.com/pixelplatform/staking/metrics"
	"github.com/pixelplatform/staking/pixel"
	"github.com/pixelplatform/staking/runtime"
	"github.com/pixelplatform/staking/staking"
	"github.com/pixelplatform/staking/state"
)

const (
	receiptsBucket = kv.Bucket("r")
	metaBucket     = kv.Bucket("m")
)

var (
	genesisKey = []byte("genesis")
	latestKey  = []byte("latest")
	slotKey    = []byte("slot")
	recentKey  = []byte("recent")
)

var (
	logger = log.WithContext("pkg", "ledger")

	metricTxCount    = metrics.LazyLoadCounterVec("ledger_tx_count", []string{"status"})
	metricTxDuration = metrics.LazyLoadHistogram("ledger_tx_duration_ms", metrics.BucketTx)
	metricOpCount    = metrics.LazyLoadCounterVec("staking_op_count", []string{"op"})
	metricRewardPaid = metrics.LazyLoadCounter("staking_reward_paid")
	metricSlot       = metrics.LazyLoadGauge("ledger_slot")
)

// Options tunes a ledger. Zero values select defaults.
type Options struct {
	// Clock returns the unix time in seconds seen by programs.
	Clock        func() uint64
	RecentWindow int
}

// Ledger executes signed transactions against the account store.
type Ledger struct {
	db        kv.Store
	processor *staking.Processor
	events    *eventdb.EventDB
	clock     func() uint64
	genesisID pixel.Bytes32

	locks  *lockTable
	recent *recentHashes

	mu      sync.Mutex // guards the fields below and the commit
	latest  pixel.Bytes32
	slot    uint64
	pending map[solana.Signature]struct{}
}

// New opens the ledger on db, applying the genesis if db is empty.
// events may be nil to skip event recording.
func New(db kv.Store, gene *genesis.Genesis, processor *staking.Processor, events *eventdb.EventDB, opts Options) (*Ledger, error) {
	if opts.Clock == nil {
		opts.Clock = func() uint64 { return uint64(time.Now().Unix()) }
	}
	if opts.RecentWindow <= 0 {
		opts.RecentWindow = DefaultRecentWindow
	}

	l := &Ledger{
		db:        db,
		processor: processor,
		events:    events,
		clock:     opts.Clock,
		genesisID: gene.ID(),
		locks:     newLockTable(),
		recent:    newRecentHashes(opts.RecentWindow),
		pending:   make(map[solana.Signature]struct{}),
	}

	meta := metaBucket.NewGetter(db)
	stored, err := meta.Get(genesisKey)
	if err != nil {
		if !meta.IsNotFound(err) {
			return nil, errors.Wrap(err, "read genesis id")
		}
		if err := l.applyGenesis(gene); err != nil {
			return nil, err
		}
		return l, nil
	}
	if pixel.BytesToBytes32(stored) != gene.ID() {
		return nil, errors.Errorf("genesis mismatch: stored %v, want %v", pixel.BytesToBytes32(stored), gene.ID())
	}
	if err := l.load(meta); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Ledger) applyGenesis(gene *genesis.Genesis) error {
	id, err := gene.Build(l.db)
	if err != nil {
		return errors.Wrap(err, "build genesis")
	}

	batch := l.db.NewBatch()
	putter := metaBucket.NewPutter(batch)
	if err := putter.Put(genesisKey, id[:]); err != nil {
		return err
	}
	if err := l.putHead(putter, id, 0); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write genesis head")
	}
	l.latest = id
	l.recent.add(id)
	logger.Info("genesis applied", "name", gene.Name(), "id", id)
	return nil
}

func (l *Ledger) load(meta kv.Getter) error {
	latest, err := meta.Get(latestKey)
	if err != nil {
		return errors.Wrap(err, "read latest blockhash")
	}
	slot, err := meta.Get(slotKey)
	if err != nil {
		return errors.Wrap(err, "read slot")
	}
	recent, err := meta.Get(recentKey)
	if err != nil {
		return errors.Wrap(err, "read recent blockhashes")
	}
	if err := l.recent.load(recent); err != nil {
		return err
	}
	l.latest = pixel.BytesToBytes32(latest)
	l.slot = binary.BigEndian.Uint64(slot)
	metricSlot().Set(int64(l.slot))
	return nil
}

// putHead writes the head pointers. Must be called before adding hash to the recent window.
func (l *Ledger) putHead(putter kv.Putter, hash pixel.Bytes32, slot uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], slot)
	if err := putter.Put(latestKey, hash[:]); err != nil {
		return err
	}
	if err := putter.Put(slotKey, b[:]); err != nil {
		return err
	}
	return putter.Put(recentKey, l.recent.encode(hash))
}

// GenesisID returns the id of the applied genesis.
func (l *Ledger) GenesisID() pixel.Bytes32 { return l.genesisID }

// Processor returns the staking processor.
func (l *Ledger) Processor() *staking.Processor { return l.processor }

// Events returns the event database, nil if events are not recorded.
func (l *Ledger) Events() *eventdb.EventDB { return l.events }

// Now returns the ledger clock.
func (l *Ledger) Now() uint64 { return l.clock() }

// LatestBlockhash returns the latest blockhash and its slot.
func (l *Ledger) LatestBlockhash() (pixel.Bytes32, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.latest, l.slot
}

// State returns a state view of the committed accounts.
func (l *Ledger) State() *state.State {
	return state.New(l.db)
}

// Account returns the committed account at addr.
func (l *Ledger) Account(addr pixel.Address) (*state.Account, error) {
	return l.State().GetAccount(addr)
}

// Receipt returns the receipt of a committed transaction, nil if not found.
func (l *Ledger) Receipt(txID solana.Signature) (*Receipt, error) {
	getter := receiptsBucket.NewGetter(l.db)
	r, err := loadReceipt(getter, txID)
	if err != nil {
		if getter.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// Execute runs the transaction atomically and commits its effects.
func (l *Ledger) Execute(ctx context.Context, tx *solana.Transaction) (*Receipt, error) {
	start := time.Now()
	receipt, err := l.execute(ctx, tx)

	status := "success"
	switch {
	case err == nil:
	case IsRejection(err):
		status = "rejected"
	case staking.IsStakingError(err) || runtime.IsHostError(err):
		status = "failed"
	default:
		status = "error"
	}
	metricTxCount().AddWithLabel(1, map[string]string{"status": status})
	metricTxDuration().Observe(time.Since(start).Milliseconds())

	if err != nil {
		logger.Debug("transaction not committed", "status", status, "err", err)
		return nil, err
	}
	logger.Debug("transaction committed", "id", receipt.TxID, "slot", receipt.Slot, "events", len(receipt.Events))
	return receipt, nil
}

func (l *Ledger) execute(ctx context.Context, tx *solana.Transaction) (*Receipt, error) {
	if err := verifySignatures(tx); err != nil {
		return nil, err
	}
	msg := &tx.Message
	txID := tx.Signatures[0]

	metas := accountMetas(msg)
	instructions, err := resolveInstructions(msg, metas, l.processor.Program())
	if err != nil {
		return nil, err
	}
	if !l.recent.contains(pixel.Bytes32(msg.RecentBlockhash)) {
		return nil, ErrBlockhashNotFound
	}
	if err := l.reserve(txID); err != nil {
		return nil, err
	}
	defer l.unreserve(txID)

	writable, readonly := lockSets(metas)
	release, err := l.locks.acquire(ctx, writable, readonly)
	if err != nil {
		return nil, errors.Wrap(err, "lock accounts")
	}
	defer release()

	st := state.New(l.db)
	now := l.clock()
	var events []runtime.Event
	for i, ins := range instructions {
		rtx := runtime.NewContext(st, l.processor.Deriver(), ins.accounts, now)
		if err := l.processor.Execute(rtx, ins.data); err != nil {
			return nil, errors.WithMessagef(err, "instruction %d", i)
		}
		events = append(events, rtx.Events()...)
	}

	receipt, err := l.commit(txID, st.Stage(), events, now)
	if err != nil {
		logger.Error("failed to commit transaction", "id", txID, "err", err)
		return nil, err
	}
	l.record(context.WithoutCancel(ctx), receipt)
	return receipt, nil
}

// reserve marks txID as in flight, failing if it is in flight or committed.
func (l *Ledger) reserve(txID solana.Signature) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.pending[txID]; ok {
		return ErrAlreadyProcessed
	}
	ok, err := receiptsBucket.NewGetter(l.db).Has(txID[:])
	if err != nil {
		return errors.Wrap(err, "read receipt")
	}
	if ok {
		return ErrAlreadyProcessed
	}
	l.pending[txID] = struct{}{}
	return nil
}

func (l *Ledger) unreserve(txID solana.Signature) {
	l.mu.Lock()
	delete(l.pending, txID)
	l.mu.Unlock()
}

func (l *Ledger) commit(txID solana.Signature, stage *state.Stage, events []runtime.Event, now uint64) (*Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	receipt := &Receipt{
		TxID:      txID,
		Slot:      l.slot + 1,
		Time:      now,
		Blockhash: pixel.Blake2b(l.latest[:], txID[:]),
		Events:    events,
	}

	batch := l.db.NewBatch()
	if err := stage.Commit(batch); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	if err := saveReceipt(receiptsBucket.NewPutter(batch), receipt); err != nil {
		return nil, errors.Wrap(err, "save receipt")
	}
	if err := l.putHead(metaBucket.NewPutter(batch), receipt.Blockhash, receipt.Slot); err != nil {
		return nil, errors.Wrap(err, "save head")
	}
	if err := batch.Write(); err != nil {
		return nil, errors.Wrap(err, "write batch")
	}

	l.latest = receipt.Blockhash
	l.slot = receipt.Slot
	l.recent.add(receipt.Blockhash)
	metricSlot().Set(int64(receipt.Slot))
	return receipt, nil
}

// record writes the receipt events to the event db and meters them.
// The transaction is already committed, so failures are only logged.
func (l *Ledger) record(ctx context.Context, r *Receipt) {
	for _, ev := range r.Events {
		metricOpCount().AddWithLabel(1, map[string]string{"op": ev.Op})
		if ev.Op == staking.TagClaim.String() || ev.Op == staking.TagUnstake.String() {
			metricRewardPaid().Add(int64(ev.Amount))
		}
	}
	if l.events == nil || len(r.Events) == 0 {
		return
	}
	rows := make([]*eventdb.Event, 0, len(r.Events))
	for i, ev := range r.Events {
		rows = append(rows, &eventdb.Event{
			Slot:   r.Slot,
			Time:   r.Time,
			TxID:   r.TxID,
			Index:  uint32(i),
			Op:     ev.Op,
			Asset:  ev.Asset,
			Owner:  ev.Owner,
			Amount: ev.Amount,
		})
	}
	if err := l.events.Insert(ctx, rows); err != nil {
		logger.Error("failed to record events", "id", r.TxID, "err", err)
	}
}
