package tracking

import "time"

// SetNowFunc overrides the store's clock in tests.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.now = now
}
