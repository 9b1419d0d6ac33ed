// SPDX-License-Identifier: Unlicense OR MIT

package router

import (
	"gioui.org/x/pointerevents/io/event"
)

// Registry holds one Router per window. The zero value is ready to use.
type Registry struct {
	routers map[event.Tag]*Router
}

// Router returns the Router of the window identified by tag, creating it
// if necessary.
func (r *Registry) Router(tag event.Tag) *Router {
	if rt, ok := r.routers[tag]; ok {
		return rt
	}
	if r.routers == nil {
		r.routers = make(map[event.Tag]*Router)
	}
	rt := new(Router)
	r.routers[tag] = rt
	return rt
}

// Lookup returns the Router of the window identified by tag, if any.
func (r *Registry) Lookup(tag event.Tag) (*Router, bool) {
	rt, ok := r.routers[tag]
	return rt, ok
}

// Remove forgets the Router of the window identified by tag.
func (r *Registry) Remove(tag event.Tag) {
	delete(r.routers, tag)
}

// Len returns the number of windows with a Router.
func (r *Registry) Len() int {
	return len(r.routers)
}
