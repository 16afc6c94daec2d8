package wishlist

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/beautique/beautique-backend/pkg/storefront/kvstore"
)

// StorageKey is where the wishlist lives in the backing store.
const StorageKey = "beautique_wishlist"

// Entry is one saved product. Name, price, image and category are snapshots
// from the moment of saving.
type Entry struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image,omitempty"`
	Category  string    `json:"category,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// AddInput describes a product being saved to the wishlist.
type AddInput struct {
	ProductID uint
	Name      string
	Price     float64
	Image     string
	Category  string
}

// Store holds the wishlist. Entries are keyed by product ID, so adding a
// product twice is a no-op. Like the cart, nothing persists until Hydrate
// has loaded the previous session's state.
type Store struct {
	mu          sync.Mutex
	kv          kvstore.Store
	entries     []Entry
	initialized bool
	now         func() time.Time
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{
		kv:  kv,
		now: time.Now,
	}
}

// Hydrate loads the persisted wishlist and enables persistence. Entries
// added before hydration are kept, skipping products already persisted.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}

	pending := s.entries
	s.entries = nil

	if raw, ok := s.kv.Get(StorageKey); ok {
		var loaded []Entry
		if err := json.Unmarshal([]byte(raw), &loaded); err == nil {
			s.entries = loaded
		}
	}

	for _, entry := range pending {
		if !s.hasLocked(entry.ProductID) {
			s.entries = append(s.entries, entry)
		}
	}

	s.initialized = true
	s.persistLocked()
}

// Hydrated reports whether the persisted wishlist has been loaded.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Add saves a product. Returns true if it was newly added, false if the
// product was already on the list.
func (s *Store) Add(input AddInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasLocked(input.ProductID) {
		return false
	}

	s.entries = append(s.entries, s.entryFrom(input))
	s.persistLocked()
	return true
}

// Remove drops a product from the list. Unknown IDs are ignored.
func (s *Store) Remove(productID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	s.persistLocked()
}

// Toggle adds the product if absent, removes it if present. Returns whether
// the product is on the list afterwards.
func (s *Store) Toggle(input AddInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].ProductID == input.ProductID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persistLocked()
			return false
		}
	}

	s.entries = append(s.entries, s.entryFrom(input))
	s.persistLocked()
	return true
}

func (s *Store) entryFrom(input AddInput) Entry {
	return Entry{
		ProductID: input.ProductID,
		Name:      input.Name,
		Price:     input.Price,
		Image:     input.Image,
		Category:  input.Category,
		AddedAt:   s.now(),
	}
}

// Has reports whether the product is on the list.
func (s *Store) Has(productID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasLocked(productID)
}

func (s *Store) hasLocked(productID uint) bool {
	for i := range s.entries {
		if s.entries[i].ProductID == productID {
			return true
		}
	}
	return false
}

// Entries returns a copy of the wishlist in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Count returns the number of saved products.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.persistLocked()
}

func (s *Store) persistLocked() {
	if !s.initialized {
		return
	}

	raw, err := json.Marshal(s.entries)
	if err != nil {
		return
	}
	s.kv.Set(StorageKey, string(raw))
}
