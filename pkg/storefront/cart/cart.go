package cart

import (
	"encoding/json"
	"sync"

	"github.com/beautique/beautique-backend/pkg/storefront/kvstore"
	"github.com/google/uuid"
)

// StorageKey is where the cart lives in the backing store.
const StorageKey = "beautique_cart"

// Line is one cart entry. Name, price and image are snapshots taken when the
// item was added; they are not refreshed if the catalog changes afterwards.
type Line struct {
	ID        string  `json:"id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

// AddInput describes an item being added to the cart.
type AddInput struct {
	ProductID uint
	Name      string
	Price     float64
	Image     string
	Size      string
	Color     string
	Quantity  int
}

// Store holds the shopping cart. All methods are safe for concurrent use.
//
// A new store starts unhydrated: mutations work immediately so the UI is
// never blocked, but nothing is written to the backing store until Hydrate
// has run. Persisting before hydration would race the initial load and could
// wipe a cart saved by a previous session.
type Store struct {
	mu          sync.Mutex
	kv          kvstore.Store
	lines       []Line
	initialized bool
}

func NewStore(kv kvstore.Store) *Store {
	return &Store{
		kv: kv,
	}
}

// Hydrate loads the persisted cart and enables persistence. Existing
// unpersisted lines (added before hydration finished) are kept and appended
// after the loaded ones. A corrupt payload resets to an empty cart.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}

	pending := s.lines
	s.lines = nil

	if raw, ok := s.kv.Get(StorageKey); ok {
		var loaded []Line
		if err := json.Unmarshal([]byte(raw), &loaded); err == nil {
			s.lines = loaded
		}
	}

	for _, line := range pending {
		s.mergeLocked(line)
	}

	s.initialized = true
	s.persistLocked()
}

// Hydrated reports whether the persisted cart has been loaded.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Add puts an item in the cart. Adding the same product in the same size and
// color merges into the existing line by summing quantities; any other
// combination creates a new line. Returns the affected line.
func (s *Store) Add(input AddInput) Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	line := s.mergeLocked(Line{
		ID:        uuid.NewString(),
		ProductID: input.ProductID,
		Name:      input.Name,
		Price:     input.Price,
		Image:     input.Image,
		Size:      input.Size,
		Color:     input.Color,
		Quantity:  quantity,
	})

	s.persistLocked()
	return line
}

func (s *Store) mergeLocked(line Line) Line {
	for i := range s.lines {
		existing := &s.lines[i]
		if existing.ProductID == line.ProductID &&
			existing.Size == line.Size &&
			existing.Color == line.Color {
			existing.Quantity += line.Quantity
			return *existing
		}
	}
	s.lines = append(s.lines, line)
	return line
}

// Remove deletes the line with the given ID. Unknown IDs are ignored.
func (s *Store) Remove(lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			break
		}
	}

	s.persistLocked()
}

// SetQuantity changes a line's quantity. A quantity of zero or less removes
// the line; a cart never holds zero-quantity entries.
func (s *Store) SetQuantity(lineID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		for i := range s.lines {
			if s.lines[i].ID == lineID {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
				break
			}
		}
	} else {
		for i := range s.lines {
			if s.lines[i].ID == lineID {
				s.lines[i].Quantity = quantity
				break
			}
		}
	}

	s.persistLocked()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persistLocked()
}

// Contains reports whether the cart holds a line for the exact product
// variant.
func (s *Store) Contains(productID uint, size, color string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID &&
			s.lines[i].Size == size &&
			s.lines[i].Color == color {
			return true
		}
	}
	return false
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

// Count returns the total number of units across all lines.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal returns the cart total: the sum of line price times quantity.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// persistLocked writes the cart through to the backing store. It is a no-op
// until Hydrate has run.
func (s *Store) persistLocked() {
	if !s.initialized {
		return
	}

	raw, err := json.Marshal(s.lines)
	if err != nil {
		return
	}
	s.kv.Set(StorageKey, string(raw))
}
