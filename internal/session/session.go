package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopease/shopease-backend/internal/cart"
	"github.com/shopease/shopease-backend/internal/checkout"
	"github.com/shopease/shopease-backend/internal/notifications"
	"github.com/shopease/shopease-backend/internal/wishlist"
)

// Session is the explicit per-shopper state object: cart ledger, wishlist
// set, filter inputs, checkout state and the notification feed. Nothing
// session-scoped lives in package globals.
//
// The embedded mutex serializes the shopper's action stream. Services
// take the lock around each logical update; the accessors below do not
// lock on their own.
type Session struct {
	id string
	mu sync.Mutex

	ledger        *cart.Ledger
	wishlist      *wishlist.Set
	feed          *notifications.Feed
	checkoutState checkout.State

	filterMu   sync.Mutex
	searchText string
	category   string

	// Unix nanos; atomic so touching a session never takes the manager's
	// table lock.
	lastActive atomic.Int64
}

func newSession(id string, now time.Time) *Session {
	s := &Session{
		id:            id,
		ledger:        cart.NewLedger(),
		wishlist:      wishlist.NewSet(),
		feed:          notifications.NewFeed(),
		checkoutState: checkout.StateIdle,
		category:      "All",
	}
	s.touch(now)
	return s
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

func (s *Session) ID() string { return s.id }

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

func (s *Session) Ledger() *cart.Ledger { return s.ledger }

func (s *Session) Wishlist() *wishlist.Set { return s.wishlist }

func (s *Session) Feed() *notifications.Feed { return s.feed }

func (s *Session) CheckoutState() checkout.State { return s.checkoutState }

func (s *Session) SetCheckoutState(state checkout.State) { s.checkoutState = state }

// SetFilters stores the session-owned search inputs. Guarded separately
// from the action mutex so filter edits never contend with cart updates.
func (s *Session) SetFilters(searchText, category string) {
	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	s.searchText = searchText
	if category == "" {
		category = "All"
	}
	s.category = category
}

// Filters returns the current search text and category selection.
func (s *Session) Filters() (searchText, category string) {
	s.filterMu.Lock()
	defer s.filterMu.Unlock()
	return s.searchText, s.category
}
