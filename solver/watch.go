package solver

// WatchKind tags one entry of a literal's watch list (spec.md 3, "Watch list").
type WatchKind uint8

const (
	// WatchBinary is a binary clause stored inline: no heap object.
	WatchBinary WatchKind = iota
	// WatchLong is a (clause pointer, blocker) pair for a long clause.
	WatchLong
	// WatchXor is a row of the (optional) XOR matrix.
	WatchXor
)

// Watch is one entry of watches[l]: something to look at when l is
// enqueued, i.e. when ~l, which appears in the watched clause, becomes
// false.
type Watch struct {
	Kind      WatchKind
	Other     Lit     // WatchBinary: the clause's other literal
	Redundant bool    // WatchBinary: learnt flag
	Clause    *Clause // WatchLong: the watched clause
	Blocker   Lit     // WatchLong: a literal known to satisfy the clause fast
	Matrix    int32   // WatchXor: matrix id
	Row       int32   // WatchXor: row id
}

// watchList holds, for every literal, the watch entries triggered when
// that literal is enqueued -- i.e. watches[l] is scanned when l becomes
// true (so that ~l, appearing in some clause, is
// now false).
type watchList struct {
	ws [][]Watch
}

func newWatchList(nbVars int) watchList {
	return watchList{ws: make([][]Watch, nbVars*2)}
}

func (wl *watchList) get(l Lit) []Watch { return wl.ws[l] }

func (wl *watchList) add(l Lit, w Watch) {
	wl.ws[l] = append(wl.ws[l], w)
}

// removeLong removes the WatchLong entry pointing at c from watches[l].
// c is guaranteed present.
func (wl *watchList) removeLong(l Lit, c *Clause) {
	ws := wl.ws[l]
	for i, w := range ws {
		if w.Kind == WatchLong && w.Clause == c {
			last := len(ws) - 1
			ws[i] = ws[last]
			wl.ws[l] = ws[:last]
			return
		}
	}
}

// removeBinary removes one WatchBinary entry pointing at other from
// watches[l]. other is guaranteed present.
func (wl *watchList) removeBinary(l, other Lit) {
	ws := wl.ws[l]
	for i, w := range ws {
		if w.Kind == WatchBinary && w.Other == other {
			last := len(ws) - 1
			ws[i] = ws[last]
			wl.ws[l] = ws[:last]
			return
		}
	}
}

// watchClause attaches c's first two literals (its watches) to the watch
// lists of their negations, per the invariant in spec.md 3: a long clause
// with watches w1, w2 appears in watches[~w1] and watches[~w2].
func (wl *watchList) watchClause(c *Clause) {
	if c.Len() == 2 {
		a, b := c.First(), c.Second()
		wl.add(a.Negation(), Watch{Kind: WatchBinary, Other: b, Redundant: c.Redundant()})
		wl.add(b.Negation(), Watch{Kind: WatchBinary, Other: a, Redundant: c.Redundant()})
		return
	}
	a, b := c.First(), c.Second()
	wl.add(a.Negation(), Watch{Kind: WatchLong, Clause: c, Blocker: b})
	wl.add(b.Negation(), Watch{Kind: WatchLong, Clause: c, Blocker: a})
}

// unwatchClause detaches c's two watches from the watch lists of their
// negations.
func (wl *watchList) unwatchClause(c *Clause) {
	wl.removeLong(c.First().Negation(), c)
	wl.removeLong(c.Second().Negation(), c)
}

// unwatchBinary detaches a binary clause given as (a, b) from both lists.
func (wl *watchList) unwatchBinary(a, b Lit) {
	wl.removeBinary(a.Negation(), b)
	wl.removeBinary(b.Negation(), a)
}
