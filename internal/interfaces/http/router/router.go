// Package router mounts the storefront's domain route groups on a gin
// engine, optionally restricted to the services a deployment runs.
package router

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is one domain's contribution to the route table
type RouteRegistrar interface {
	Name() string
	RegisterRoutes(rg *gin.RouterGroup)
}

type Router struct {
	engine     *gin.Engine
	prefix     string
	enabled    map[string]bool // nil mounts everything
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
	mounted    []string
}

type RouterOption func(*Router)

// WithPrefix mounts the domains below prefix instead of at the root
func WithPrefix(prefix string) RouterOption {
	return func(r *Router) {
		if p := strings.Trim(prefix, "/"); p != "" {
			r.prefix = "/" + p
		} else {
			r.prefix = ""
		}
	}
}

// WithDomains limits Setup to the named domains, as selected by SERVICES
func WithDomains(names ...string) RouterOption {
	return func(r *Router) {
		r.enabled = nil
		for _, n := range names {
			if r.enabled == nil {
				r.enabled = make(map[string]bool, len(names))
			}
			r.enabled[n] = true
		}
	}
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use installs middleware on the domain routes only. Health, metrics and
// docs live on the engine and are not affected.
func (r *Router) Use(mw ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, mw...)
	return r
}

func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every enabled registrar. Several registrars may share a
// domain name; the name is reported once.
func (r *Router) Setup() {
	root := r.engine.Group(r.prefix, r.middleware...)
	for _, reg := range r.registrars {
		name := reg.Name()
		if r.enabled != nil && !r.enabled[name] {
			continue
		}
		reg.RegisterRoutes(root)
		if !slices.Contains(r.mounted, name) {
			r.mounted = append(r.mounted, name)
		}
	}
}

// Domains lists what Setup mounted, in registration order
func (r *Router) Domains() []string {
	return slices.Clone(r.mounted)
}

// DomainGroup collects a domain's routes before they are mounted. Sub-groups
// run after the parent's middleware.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	mounts     []func(*gin.RouterGroup)
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

func (dg *DomainGroup) Use(mw ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, mw...)
	return dg
}

func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.mounts = append(dg.mounts, func(g *gin.RouterGroup) { g.Handle(method, path, handlers...) })
	return dg
}

func (dg *DomainGroup) GET(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, path, h...)
}

func (dg *DomainGroup) POST(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, path, h...)
}

func (dg *DomainGroup) PUT(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, path, h...)
}

func (dg *DomainGroup) PATCH(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, path, h...)
}

func (dg *DomainGroup) DELETE(path string, h ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, path, h...)
}

// Group adds a nested group under the same domain name
func (dg *DomainGroup) Group(prefix string) *DomainGroup {
	sub := NewDomainGroup(dg.name, prefix)
	dg.mounts = append(dg.mounts, sub.RegisterRoutes)
	return sub
}

func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group(dg.prefix, dg.middleware...)
	for _, mount := range dg.mounts {
		mount(g)
	}
}
