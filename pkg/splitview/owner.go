package splitview

import (
	"fmt"
	"reflect"
	"sync"
	"weak"
)

// Handle is a non-owning reference from content back to the controller
// presenting it. It never keeps a controller alive.
type Handle struct {
	p weak.Pointer[Controller]
}

// Controller returns the owning controller, or nil once it was closed or collected.
func (h Handle) Controller() *Controller {
	c := h.p.Value()
	if c == nil || c.closed {
		return nil
	}
	return c
}

// Valid reports whether the handle still resolves to a live controller.
func (h Handle) Valid() bool {
	return h.Controller() != nil
}

// owners is the side table answering "which container presents this content".
// It is the only package-level state and may be touched by controllers living
// on different goroutines. Entries whose controller was collected without
// Close are purged by a cleanup registered in New and lazily on lookup.
var owners = struct {
	sync.Mutex
	m map[Content]Handle
}{m: make(map[Content]Handle)}

// comparableContent reports whether content can be tracked by identity.
// Interface fields are checked against the values they hold.
func comparableContent(content Content) bool {
	return content != nil && reflect.ValueOf(content).Comparable()
}

// OwnerOf returns the controller currently presenting content.
func OwnerOf(content Content) (*Controller, bool) {
	if !comparableContent(content) {
		return nil, false
	}
	h, ok := lookupOwner(content)
	if !ok {
		return nil, false
	}
	c := h.Controller()
	return c, c != nil
}

func lookupOwner(content Content) (Handle, bool) {
	owners.Lock()
	defer owners.Unlock()
	h, ok := owners.m[content]
	if ok && h.p.Value() == nil {
		delete(owners.m, content)
		return Handle{}, false
	}
	return h, ok
}

func storeOwner(content Content, h Handle) {
	owners.Lock()
	defer owners.Unlock()
	owners.m[content] = h
}

// dropOwner removes content's entry when it belongs to c.
func dropOwner(content Content, c *Controller) bool {
	owners.Lock()
	defer owners.Unlock()
	h, ok := owners.m[content]
	if !ok || h.p.Value() != c {
		return false
	}
	delete(owners.m, content)
	return true
}

// purgeOwners drops every entry whose controller was collected.
func purgeOwners() {
	owners.Lock()
	defer owners.Unlock()
	for content, h := range owners.m {
		if h.p.Value() == nil {
			delete(owners.m, content)
		}
	}
}

func ownerCount() int {
	owners.Lock()
	defer owners.Unlock()
	return len(owners.m)
}

func (c *Controller) handle() Handle {
	return Handle{p: weak.Make(c)}
}

func (c *Controller) own(items ...Content) {
	h := c.handle()
	for _, it := range items {
		if !comparableContent(it) {
			continue
		}
		storeOwner(it, h)
		if aware, ok := it.(OwnerAware); ok {
			aware.SetSplitHandle(h)
		}
	}
}

func (c *Controller) release(items ...Content) {
	for _, it := range items {
		if !comparableContent(it) || !dropOwner(it, c) {
			continue
		}
		if aware, ok := it.(OwnerAware); ok {
			aware.SetSplitHandle(Handle{})
		}
	}
}

// checkContent validates content passed to a mutator.
func checkContent(content Content) error {
	switch {
	case content == nil:
		return ErrNilContent
	case !comparableContent(content):
		return fmt.Errorf("%w: %T", ErrUncomparableContent, content)
	}
	return nil
}
