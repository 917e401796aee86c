package engine

import (
	"sync"
	"time"

	"github.com/lazypower/soulgatchi/internal/pet"
	"go.uber.org/zap"
)

// Gateway is durable storage for the simulation snapshot. Implementations
// must not fail the caller: Save and Clear log their own errors, and Load
// reports missing or unreadable data as absent.
type Gateway interface {
	Save(snap *pet.Snapshot)
	Load() (*pet.Snapshot, bool)
	Clear()
}

// Journal receives the history of accepted actions and lives. Like Gateway,
// it is best-effort.
type Journal interface {
	RecordActivity(a pet.Activity)
	BeginLife(name, emoji string, at time.Time)
	EndLife(ageHours int, at time.Time)
}

type memoryGateway struct{}

func (memoryGateway) Save(*pet.Snapshot)          {}
func (memoryGateway) Load() (*pet.Snapshot, bool) { return nil, false }
func (memoryGateway) Clear()                      {}

type nopJournal struct{}

func (nopJournal) RecordActivity(pet.Activity)         {}
func (nopJournal) BeginLife(string, string, time.Time) {}
func (nopJournal) EndLife(int, time.Time)              {}

// maxPendingRecords bounds the journal backlog. Snapshots never queue: only
// the newest pending one is kept.
const maxPendingRecords = 1024

// persister hands snapshots and journal records to storage on its own
// goroutine so the simulation never waits on I/O.
type persister struct {
	gateway Gateway
	journal Journal
	log     *zap.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	latest  *pet.Snapshot
	records []func(Journal)
	busy    bool
	closed  bool
	done    chan struct{}
}

func newPersister(gw Gateway, j Journal, log *zap.Logger) *persister {
	p := &persister{
		gateway: gw,
		journal: j,
		log:     log,
		done:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.run()
	return p
}

func (p *persister) save(snap *pet.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.latest = snap
	p.cond.Broadcast()
}

func (p *persister) record(fn func(Journal)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if len(p.records) >= maxPendingRecords {
		p.log.Warn("journal backlog full, dropping record", zap.Int("pending", len(p.records)))
		return
	}
	p.records = append(p.records, fn)
	p.cond.Broadcast()
}

func (p *persister) pendingLocked() bool {
	return p.latest != nil || len(p.records) > 0
}

func (p *persister) run() {
	defer close(p.done)

	p.mu.Lock()
	for {
		for !p.pendingLocked() && !p.closed {
			p.cond.Wait()
		}
		if !p.pendingLocked() {
			p.mu.Unlock()
			return
		}

		snap, records := p.latest, p.records
		p.latest, p.records = nil, nil
		p.busy = true
		p.mu.Unlock()

		for _, fn := range records {
			fn(p.journal)
		}
		if snap != nil {
			p.gateway.Save(snap)
		}

		p.mu.Lock()
		p.busy = false
		p.cond.Broadcast()
	}
}

func (p *persister) flush() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.pendingLocked() || p.busy {
		p.cond.Wait()
	}
}

// close drains the queue and waits for the worker to exit.
func (p *persister) close() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()
	<-p.done
}
