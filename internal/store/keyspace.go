// Package store keeps named rings and serialises access to them.
package store

import (
	"errors"
	"slices"
	"sync"

	"github.com/Avik32223/ringd/pkg/ring"
)

var ErrKeyAbsent = errors.New("key absent")

// Keyspace maps keys to rings. A ring is only touched while the keyspace
// lock is held, which is the mutual exclusion ring.Ring leaves to callers.
type Keyspace struct {
	mu    sync.Mutex
	rings map[string]*ring.Ring
}

func New() *Keyspace {
	return &Keyspace{
		rings: make(map[string]*ring.Ring),
	}
}

// Update runs fn on the ring stored under key. With create set a missing key
// gets a new empty ring, otherwise ErrKeyAbsent is returned. A ring that is
// empty once fn returns is destroyed and its key removed.
func (k *Keyspace) Update(key string, create bool, fn func(*ring.Ring) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	r, ok := k.rings[key]
	if !ok {
		if !create {
			return ErrKeyAbsent
		}
		r = ring.New()
	}
	err := fn(r)
	switch {
	case r.Len() == 0:
		r.Destroy()
		delete(k.rings, key)
	case !ok:
		k.rings[key] = r
	}
	return err
}

// View runs fn on the ring stored under key. fn must not mutate it.
func (k *Keyspace) View(key string, fn func(*ring.Ring) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	r, ok := k.rings[key]
	if !ok {
		return ErrKeyAbsent
	}
	return fn(r)
}

// Delete destroys the rings under keys and reports how many existed.
func (k *Keyspace) Delete(keys ...string) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	c := 0
	for _, key := range keys {
		if r, ok := k.rings[key]; ok {
			r.Destroy()
			delete(k.rings, key)
			c++
		}
	}
	return c
}

func (k *Keyspace) Exists(keys ...string) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	c := 0
	for _, key := range keys {
		if _, ok := k.rings[key]; ok {
			c++
		}
	}
	return c
}

// Keys returns the stored keys in sorted order.
func (k *Keyspace) Keys() []string {
	k.mu.Lock()
	defer k.mu.Unlock()

	keys := make([]string, 0, len(k.rings))
	for key := range k.rings {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (k *Keyspace) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.rings)
}
