package service_test

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/model"
	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/repository"
	"github.com/shopspring/decimal"
)

// fault describes how the next write to a key misbehaves. The zero value
// lets the write through.
type fault struct {
	noop bool
	err  error
}

// memStore is an in-memory rendition of the three repositories and the
// transaction manager. Writes are logged in the order they were attempted.
type memStore struct {
	accounts    map[string]model.Account
	listings    map[string]model.Listing
	events      []model.PurchaseEvent
	nextEventID int64

	faults             map[string][]fault
	writes             []string
	eventErr           error
	beforeListingWrite func(s *memStore)
	txCalls            int
}

func newMemStore() *memStore {
	return &memStore{
		accounts: map[string]model.Account{},
		listings: map[string]model.Listing{},
		faults:   map[string][]fault{},
	}
}

func balanceKey(id string) string { return "balance:" + id }
func listingKey(id string) string { return "listing:" + id }

func (s *memStore) failNext(key string, faults ...fault) {
	s.faults[key] = append(s.faults[key], faults...)
}

func (s *memStore) takeFault(key string) fault {
	queue := s.faults[key]
	if len(queue) == 0 {
		return fault{}
	}

	s.faults[key] = queue[1:]
	return queue[0]
}

func (s *memStore) balance(id string) decimal.Decimal {
	return s.accounts[id].Balance
}

func (s *memStore) listing(id string) model.Listing {
	return s.listings[id]
}

type snapshot struct {
	accounts    map[string]model.Account
	listings    map[string]model.Listing
	events      []model.PurchaseEvent
	nextEventID int64
}

func (s *memStore) snapshot() snapshot {
	snap := snapshot{
		accounts:    make(map[string]model.Account, len(s.accounts)),
		listings:    make(map[string]model.Listing, len(s.listings)),
		events:      append([]model.PurchaseEvent(nil), s.events...),
		nextEventID: s.nextEventID,
	}

	for id, account := range s.accounts {
		snap.accounts[id] = account
	}

	for id, listing := range s.listings {
		listing.Buyers = append([]model.ListingBuyer(nil), listing.Buyers...)
		snap.listings[id] = listing
	}

	return snap
}

func (s *memStore) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.listings = snap.listings
	s.events = snap.events
	s.nextEventID = snap.nextEventID
}

func (s *memStore) accountRepo() repository.AccountRepository     { return memAccounts{s} }
func (s *memStore) listingRepo() repository.ListingRepository     { return memListings{s} }
func (s *memStore) eventRepo() repository.PurchaseEventRepository { return memEvents{s} }
func (s *memStore) txManager() repository.TxManager               { return memTx{s} }

type memAccounts struct{ s *memStore }

func (m memAccounts) FindByID(_ context.Context, id string) (*model.Account, error) {
	account, ok := m.s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &account, nil
}

func (m memAccounts) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, account := range m.s.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (m memAccounts) FindByIDsForUpdate(_ context.Context, ids []string) ([]model.Account, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	var accounts []model.Account
	for _, id := range sorted {
		if account, ok := m.s.accounts[id]; ok {
			accounts = append(accounts, account)
		}
	}

	return accounts, nil
}

func (m memAccounts) UpdateBalance(ctx context.Context, id string, balance decimal.Decimal) (int64, error) {
	m.s.writes = append(m.s.writes, balanceKey(id)+"="+balance.StringFixed(2))

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f := m.s.takeFault(balanceKey(id))
	if f.err != nil {
		return 0, f.err
	}

	account, ok := m.s.accounts[id]
	if f.noop || !ok {
		return 0, nil
	}

	account.Balance = balance
	m.s.accounts[id] = account

	return 1, nil
}

type memListings struct{ s *memStore }

func (m memListings) FindByID(_ context.Context, id string) (*model.Listing, error) {
	listing, ok := m.s.listings[id]
	if !ok {
		return nil, repository.ErrListingNotFound
	}

	listing.Buyers = append([]model.ListingBuyer(nil), listing.Buyers...)
	return &listing, nil
}

func (m memListings) FindByIDForUpdate(ctx context.Context, id string) (*model.Listing, error) {
	return m.FindByID(ctx, id)
}

func (m memListings) UpdateStockAndSoldAndBuyers(ctx context.Context, id string, patch *model.ListingPatch) (int64, error) {
	m.s.writes = append(m.s.writes, listingKey(id))

	if m.s.beforeListingWrite != nil {
		m.s.beforeListingWrite(m.s)
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	f := m.s.takeFault(listingKey(id))
	if f.err != nil {
		return 0, f.err
	}

	listing, ok := m.s.listings[id]
	if f.noop || !ok || listing.IsSold || listing.Stock < patch.Quantity {
		return 0, nil
	}

	listing.Stock -= patch.Quantity
	if listing.Stock == 0 {
		listing.IsSold = true
	}

	if !slices.Contains(listing.BuyerIDs(), patch.BuyerID) {
		listing.Buyers = append(append([]model.ListingBuyer(nil), listing.Buyers...),
			model.ListingBuyer{ListingID: id, AccountID: patch.BuyerID})
	}

	listing.UpdatedAt = time.Now()
	m.s.listings[id] = listing

	patch.RemainingStock = listing.Stock
	patch.Sold = listing.IsSold

	return 1, nil
}

type memEvents struct{ s *memStore }

func (m memEvents) Create(_ context.Context, event *model.PurchaseEvent) error {
	if m.s.eventErr != nil {
		return m.s.eventErr
	}

	for _, existing := range m.s.events {
		if existing.TransactionRef == event.TransactionRef {
			return repository.ErrPurchaseEventDuplicate
		}
	}

	m.s.nextEventID++
	event.ID = m.s.nextEventID
	m.s.events = append(m.s.events, *event)

	return nil
}

func (m memEvents) FindUnpublished(_ context.Context, limit int) ([]model.PurchaseEvent, error) {
	var events []model.PurchaseEvent
	for _, event := range m.s.events {
		if !event.Published && len(events) < limit {
			events = append(events, event)
		}
	}

	return events, nil
}

func (m memEvents) MarkPublished(_ context.Context, id int64, publishedAt time.Time) error {
	for i := range m.s.events {
		if m.s.events[i].ID == id && !m.s.events[i].Published {
			m.s.events[i].Published = true
			m.s.events[i].PublishedAt = &publishedAt
			return nil
		}
	}

	return repository.ErrNoRowsAffected
}

type memTx struct{ s *memStore }

func (m memTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.s.txCalls++
	snap := m.s.snapshot()

	if err := fn(ctx); err != nil {
		m.s.restore(snap)
		return err
	}

	return nil
}
