package router

import (
	"github.com/storefront/platform/internal/domain/identity"
	"github.com/storefront/platform/internal/interfaces/http/handler"
	"github.com/storefront/platform/internal/interfaces/http/middleware"
)

// Handlers carries the HTTP handlers of every domain. A nil handler leaves
// its domain out of the route table.
type Handlers struct {
	Accounting  *handler.AccountingHandler
	Product     *handler.ProductHandler
	Category    *handler.CategoryHandler
	Payment     *handler.PaymentHandler
	Shipping    *handler.ShippingHandler
	I18n        *handler.I18nHandler
	Employee    *handler.EmployeeHandler
	Content     *handler.ContentHandler
	Auth        *handler.AuthHandler
	Performance *handler.PerformanceHandler
	Cart        *handler.CartHandler
}

var (
	roleStaff   = string(identity.RoleStaff)
	roleManager = string(identity.RoleManager)
)

// DomainGroups builds the route groups of every domain. Each group names
// itself in the response envelope through middleware.ServiceName.
func DomainGroups(h Handlers, roles middleware.RoleChecker) []RouteRegistrar {
	staff := middleware.RequireRoles(roles, roleStaff)
	manager := middleware.RequireRoles(roles, roleManager)

	var groups []RouteRegistrar
	add := func(name string, build func(g *DomainGroup)) {
		g := NewDomainGroup(name, "").Use(middleware.ServiceName(name))
		build(g)
		groups = append(groups, g)
	}

	if a := h.Accounting; a != nil {
		add("accounting", func(g *DomainGroup) {
			acct := g.Group("/accounting").Use(staff)
			acct.POST("/accounts", a.CreateAccount)
			acct.GET("/accounts", a.ListAccounts)
			acct.GET("/accounts/:id", a.GetAccount)
			acct.PUT("/accounts/:id", manager, a.UpdateAccount)
			acct.DELETE("/accounts/:id", manager, a.DeleteAccount)
			acct.POST("/journal-entries", a.CreateJournalEntry)
			acct.GET("/journal-entries", a.ListJournalEntries)
			acct.GET("/journal-entries/:id", a.GetJournalEntry)
			acct.POST("/journal-entries/:id/post", manager, a.PostJournalEntry)
			acct.POST("/journal-entries/:id/reverse", manager, a.ReverseJournalEntry)
			acct.DELETE("/journal-entries/:id", manager, a.DeleteJournalEntry)
			acct.GET("/reports/profit-loss", a.ProfitAndLoss)
			acct.GET("/reports/balance-sheet", a.BalanceSheet)
			acct.GET("/reports/trial-balance", a.TrialBalance)
		})
	}

	if h.Product != nil && h.Category != nil {
		p, c := h.Product, h.Category
		add("catalog", func(g *DomainGroup) {
			products := g.Group("/products")
			products.GET("", p.List)
			products.GET("/low-stock", staff, p.LowStock)
			products.GET("/sku/:sku", p.GetBySKU)
			products.GET("/:id", p.Get)
			products.POST("", staff, p.Create)
			products.PUT("/:id", staff, p.Update)
			products.PATCH("/:id/stock", staff, p.AdjustStock)
			products.DELETE("/:id", staff, p.Delete)

			categories := g.Group("/categories")
			categories.GET("", c.List)
			categories.GET("/tree", c.Tree)
			categories.GET("/:id", c.Get)
			categories.GET("/:id/products", c.Products)
			categories.POST("", staff, c.Create)
			categories.PUT("/:id", staff, c.Update)
			categories.DELETE("/:id", staff, c.Delete)
		})
	}

	if p := h.Payment; p != nil {
		add("payments", func(g *DomainGroup) {
			payments := g.Group("/payments")
			payments.POST("", p.CreatePayment)
			payments.GET("", staff, p.ListPayments)
			payments.GET("/stats", manager, p.Stats)
			payments.GET("/order/:orderId", p.ListByOrder)
			payments.GET("/:id", p.GetPayment)
			payments.POST("/:id/process", p.Process)
			payments.POST("/:id/callback", staff, p.Callback)
			payments.GET("/:id/refunds", p.PaymentRefunds)

			refunds := g.Group("/refunds").Use(staff)
			refunds.POST("", p.CreateRefund)
			refunds.GET("", p.ListRefunds)
			refunds.GET("/:id", p.GetRefund)

			methods := g.Group("/payment-methods")
			methods.POST("", p.CreateMethod)
			methods.GET("/customer/:customerId", p.CustomerMethods)
			methods.PATCH("/:id/default", p.SetDefaultMethod)
			methods.DELETE("/:id", p.DeleteMethod)
		})
	}

	if s := h.Shipping; s != nil {
		add("shipping", func(g *DomainGroup) {
			shipments := g.Group("/shipments")
			shipments.GET("/track/:trackingNumber", s.Track)
			shipments.GET("/order/:orderId", s.ListByOrder)
			shipments.GET("/:id", s.Get)
			shipments.GET("/:id/events", s.Events)
			shipments.POST("", staff, s.Create)
			shipments.GET("", staff, s.List)
			shipments.GET("/stats", staff, s.Stats)
			shipments.PUT("/:id", staff, s.Update)
			shipments.PATCH("/:id/status", staff, s.UpdateStatus)
			shipments.POST("/:id/events", staff, s.AddEvent)
		})
	}

	if i := h.I18n; i != nil {
		add("language", func(g *DomainGroup) {
			languages := g.Group("/languages")
			languages.GET("", i.ListLanguages)
			languages.GET("/:code", i.GetLanguage)
			languages.POST("", staff, i.CreateLanguage)
			languages.PUT("/:code", staff, i.UpdateLanguage)
			languages.PATCH("/:code/default", staff, i.SetDefaultLanguage)
			languages.DELETE("/:code", staff, i.DeleteLanguage)

			translations := g.Group("/translations")
			translations.GET("/language/:code", i.Dictionary)
			translations.GET("", i.ListTranslations)
			translations.GET("/:id", i.GetTranslation)
			translations.POST("", staff, i.CreateTranslation)
			translations.POST("/bulk", staff, i.BulkUpsert)
			translations.PUT("/:id", staff, i.UpdateTranslation)
			translations.DELETE("/:id", staff, i.DeleteTranslation)
		})
	}

	if e := h.Employee; e != nil {
		add("employee", func(g *DomainGroup) {
			employees := g.Group("/employees").Use(manager)
			employees.POST("", e.Create)
			employees.GET("", e.List)
			employees.GET("/department/:dept", e.ListByDepartment)
			employees.GET("/:id", e.Get)
			employees.PUT("/:id", e.Update)
			employees.PATCH("/:id/status", e.SetStatus)
			employees.DELETE("/:id", e.Delete)

			payroll := g.Group("/payroll").Use(manager)
			payroll.POST("", e.CreatePayroll)
			payroll.GET("", e.ListPayroll)
			payroll.GET("/stats", e.PayrollStats)
			payroll.GET("/:id", e.GetPayroll)
			payroll.PATCH("/:id/pay", e.MarkPaid)
		})
	}

	if c := h.Content; c != nil {
		add("content", func(g *DomainGroup) {
			items := g.Group("/content")
			items.GET("/slug/:slug", c.GetBySlug)
			items.GET("", staff, c.List)
			items.GET("/:id", staff, c.Get)
			items.GET("/:id/pdf", staff, c.ExportPDF)
			items.POST("", staff, c.Create)
			items.PUT("/:id", staff, c.Update)
			items.POST("/:id/publish", staff, c.Publish)
			items.POST("/:id/archive", staff, c.Archive)
			items.POST("/:id/assets", staff, c.UploadAsset)
			items.DELETE("/:id", staff, c.Delete)
		})
	}

	if a := h.Auth; a != nil {
		add("identity", func(g *DomainGroup) {
			authGroup := g.Group("/auth")
			authGroup.POST("/register", a.Register)
			authGroup.POST("/login", a.Login)
			authGroup.POST("/refresh", a.Refresh)
			authGroup.POST("/logout", a.Logout)
			authGroup.GET("/me", a.Me)
		})
	}

	if p := h.Performance; p != nil {
		add("performance", func(g *DomainGroup) {
			perf := g.Group("/performance").Use(staff)
			perf.POST("/metrics", p.Record)
			perf.GET("/metrics", p.List)
			perf.GET("/summary", p.Summary)
		})
	}

	if c := h.Cart; c != nil {
		add("cart", func(g *DomainGroup) {
			carts := g.Group("/carts")
			carts.GET("/:customerId", c.Get)
			carts.POST("/:customerId/items", c.AddItem)
			carts.PATCH("/:customerId/items/:productId", c.UpdateItem)
			carts.DELETE("/:customerId/items/:productId", c.RemoveItem)
			carts.DELETE("/:customerId", c.Clear)
		})
	}

	return groups
}
