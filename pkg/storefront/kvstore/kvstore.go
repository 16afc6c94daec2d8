package kvstore

// Store is a string key-value store with the persistence semantics the
// storefront state containers need. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool)
	// Set stores the value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error
}
