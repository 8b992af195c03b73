package playback

// Navigation over the playing album's track list. Linear order wraps
// circularly in both directions; shuffle order walks a cached permutation
// of the track indices instead.

// nextIndex returns the track index that follows the playing one.
func (c *Controller) nextIndex() int {
	album := c.playingAlbum()
	if album == nil || len(album.Tracks) == 0 {
		return 0
	}
	n := len(album.Tracks)
	if c.shuffle {
		c.ensurePermutation(n)
		pos := permIndexOf(c.perm, c.playingIdx)
		return c.perm[(pos+1)%n]
	}
	return (c.playingIdx + 1) % n
}

// prevIndex returns the track index that precedes the playing one.
func (c *Controller) prevIndex() int {
	album := c.playingAlbum()
	if album == nil || len(album.Tracks) == 0 {
		return 0
	}
	n := len(album.Tracks)
	if c.shuffle {
		c.ensurePermutation(n)
		pos := permIndexOf(c.perm, c.playingIdx)
		return c.perm[(pos-1+n)%n]
	}
	return (c.playingIdx - 1 + n) % n
}

// ensurePermutation builds the shuffle order on first use after shuffle is
// enabled or a fresh play starts. The cached permutation is reused until one
// of those events invalidates it; it is never regenerated per step.
func (c *Controller) ensurePermutation(n int) {
	if len(c.perm) == n {
		return
	}
	c.perm = make([]int, n)
	for i := range c.perm {
		c.perm[i] = i
	}
	// Fisher-Yates
	for i := n - 1; i > 0; i-- {
		j := c.rng.Intn(i + 1)
		c.perm[i], c.perm[j] = c.perm[j], c.perm[i]
	}
}

// invalidatePermutation drops the cached shuffle order so the next
// navigation step computes a fresh one.
func (c *Controller) invalidatePermutation() {
	c.perm = nil
}

func permIndexOf(perm []int, idx int) int {
	for i, v := range perm {
		if v == idx {
			return i
		}
	}
	return 0
}
