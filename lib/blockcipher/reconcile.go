package blockcipher

// reconcile left-pads a minimal-width integer with zero bytes to exactly
// width bytes. ok is false when out is already wider than width.
func reconcile(out []byte, width int) (block []byte, ok bool) {
	if len(out) > width {
		return nil, false
	}
	block = make([]byte, width)
	copy(block[width-len(out):], out)
	return block, true
}
