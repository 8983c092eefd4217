package cache

// lruNode links one key into the recency ring.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList orders keys from most to least recently used. It is a ring
// around a sentinel: root.next is the newest key and root.prev the oldest.
// The zero value is an empty list.
type lruList[K comparable] struct {
	root lruNode[K]
}

func (l *lruList[K]) lazyInit() {
	if l.root.next == nil {
		l.root.next = &l.root
		l.root.prev = &l.root
	}
}

// PushFront inserts key as the newest entry and returns its node.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	l.lazyInit()
	n := &lruNode[K]{key: key}
	l.insertFront(n)
	return n
}

// MoveToFront marks n as the newest entry.
func (l *lruList[K]) MoveToFront(n *lruNode[K]) {
	if n == nil || l.root.next == n {
		return
	}
	l.unlink(n)
	l.insertFront(n)
}

// Remove unlinks n. Removing a node twice is a no-op.
func (l *lruList[K]) Remove(n *lruNode[K]) {
	if n == nil || n.next == nil {
		return
	}
	l.unlink(n)
}

// Oldest returns the least recently used key.
func (l *lruList[K]) Oldest() (K, bool) {
	if l.root.prev == nil || l.root.prev == &l.root {
		var zero K
		return zero, false
	}
	return l.root.prev.key, true
}

// Clear empties the list.
func (l *lruList[K]) Clear() {
	l.root.next, l.root.prev = nil, nil
}

func (l *lruList[K]) insertFront(n *lruNode[K]) {
	n.prev = &l.root
	n.next = l.root.next
	l.root.next.prev = n
	l.root.next = n
}

func (l *lruList[K]) unlink(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}
