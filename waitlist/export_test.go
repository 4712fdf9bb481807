package waitlist

// Entries returns a copy of the claims in heap array order.
func (w *WaitList) Entries() []ClaimEntry {
	entries := make([]ClaimEntry, w.claims.n)
	copy(entries, w.claims.entries[:w.claims.n])

	return entries
}
