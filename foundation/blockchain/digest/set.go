package digest

import "slices"

// Set represents an unordered collection of unique hashes.
type Set map[Hash]struct{}

// NewSet constructs a set holding the specified hashes.
func NewSet(hashes ...Hash) Set {
	s := make(Set, len(hashes))
	for _, h := range hashes {
		s[h] = struct{}{}
	}

	return s
}

// Add places the hash in the set.
func (s Set) Add(h Hash) {
	s[h] = struct{}{}
}

// Extend adds every hash from the other set.
func (s Set) Extend(other Set) {
	for h := range other {
		s[h] = struct{}{}
	}
}

// Contains reports whether the hash is in the set.
func (s Set) Contains(h Hash) bool {
	_, exists := s[h]
	return exists
}

// Len returns the number of hashes in the set.
func (s Set) Len() int {
	return len(s)
}

// Intersects reports whether any hash is present in both sets.
func (s Set) Intersects(other Set) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}

	for h := range small {
		if large.Contains(h) {
			return true
		}
	}

	return false
}

// Missing returns the hashes of this set that the lookup function does
// not know about.
func (s Set) Missing(known func(Hash) bool) Set {
	missing := make(Set)
	for h := range s {
		if !known(h) {
			missing.Add(h)
		}
	}

	return missing
}

// Sorted returns the hashes in byte order.
func (s Set) Sorted() []Hash {
	hashes := make([]Hash, 0, len(s))
	for h := range s {
		hashes = append(hashes, h)
	}

	slices.SortFunc(hashes, Hash.Compare)

	return hashes
}
