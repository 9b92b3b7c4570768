package wishlist

import "sort"

// Set is a toggle-membership set of product identities, independent of
// the cart. Not safe for concurrent use; the owning session serializes
// access.
type Set struct {
	members map[int64]struct{}
}

// NewSet returns an empty wishlist.
func NewSet() *Set {
	return &Set{members: make(map[int64]struct{})}
}

// Toggle flips membership for the product id and reports whether the
// product is a member afterwards.
func (s *Set) Toggle(productID int64) bool {
	if _, ok := s.members[productID]; ok {
		delete(s.members, productID)
		return false
	}
	s.members[productID] = struct{}{}
	return true
}

// Contains reports membership.
func (s *Set) Contains(productID int64) bool {
	_, ok := s.members[productID]
	return ok
}

// IDs returns the member ids in ascending order for stable rendering.
func (s *Set) IDs() []int64 {
	ids := make([]int64, 0, len(s.members))
	for id := range s.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Len returns the member count.
func (s *Set) Len() int {
	return len(s.members)
}
