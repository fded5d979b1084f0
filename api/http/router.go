package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crystalices/backend/api/http/handlers"
	"github.com/crystalices/backend/pkg/auth"
	"github.com/crystalices/backend/pkg/security/jwt"
)

// Handlers groups every route handler of the API.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Equipment  *handlers.EquipmentHandler
	Staff      *handlers.StaffHandler
	Inquiry    *handlers.InquiryHandler
	Newsletter *handlers.NewsletterHandler
	Careers    *handlers.CareersHandler
	Health     *handlers.HealthHandler
}

// Middleware holds the guards shared by route groups.
// Metrics, Docs and UploadDir are optional.
type Middleware struct {
	Session   fiber.Handler
	RateLimit fiber.Handler
	Metrics   fiber.Handler
	// Docs serves Swagger UI and doc.json under /swagger.
	Docs      fiber.Handler
	UploadDir string
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, mw Middleware) {
	// Health and readiness endpoints for monitoring
	app.Get("/health", h.Health.Health)
	app.Get("/ready", h.Health.Ready)
	if mw.Metrics != nil {
		app.Get("/metrics", mw.Metrics)
	}
	if mw.Docs != nil {
		app.Get("/swagger/*", mw.Docs)
	}
	if mw.UploadDir != "" {
		app.Static("/uploads", mw.UploadDir)
	}

	limit := mw.RateLimit
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}
	session := mw.Session
	staffOnly := jwt.RequireRoles(auth.RoleStaff, auth.RoleAdmin)
	adminOnly := jwt.RequireRoles(auth.RoleAdmin)

	api := app.Group("/api")

	u := api.Group("/users")
	u.Post("/register", limit, h.Auth.Register)
	u.Post("/login", limit, h.Auth.Login)
	u.Post("/resend-verification", limit, h.Auth.ResendVerification)
	u.Post("/verifyemail", h.Auth.VerifyEmail)
	u.Post("/verifyemail/:token", h.Auth.VerifyEmail)
	u.Get("/verifyemail", h.Auth.VerifyEmail)
	u.Get("/me", session, h.Auth.Me)
	u.Put("/update-profile/:id", session, h.Auth.UpdateProfile)
	u.Put("/update-role/:id", session, adminOnly, h.Auth.UpdateRole)
	u.Get("/all", session, adminOnly, h.Auth.ListUsers)
	u.Delete("/delete/:id", session, adminOnly, h.Auth.DeleteUser)
	// newsletter and careers live under /users for frontend compatibility
	u.Post("/newsletter-subscribe", limit, h.Newsletter.Subscribe)
	u.Get("/newsletter-all", session, staffOnly, h.Newsletter.List)
	u.Post("/careers/apply", limit, h.Careers.Apply)
	u.Get("/applications/all", session, staffOnly, h.Careers.List)

	eq := api.Group("/equipment")
	eq.Get("/all", h.Equipment.List)
	eq.Post("/add", session, adminOnly, h.Equipment.Create)
	eq.Put("/update/:id", session, adminOnly, h.Equipment.Update)
	eq.Delete("/delete/:id", session, adminOnly, h.Equipment.Delete)

	adm := api.Group("/admin", session, adminOnly)
	adm.Get("/staff/all", h.Staff.List)
	adm.Post("/staff/add", h.Staff.Add)
	adm.Delete("/staff/delete/:id", h.Staff.Delete)
	adm.Get("/equipment/all", h.Equipment.List)
	adm.Post("/equipment/add", h.Equipment.Create)
	adm.Put("/equipment/update/:id", h.Equipment.Update)
	adm.Delete("/equipment/delete/:id", h.Equipment.Delete)

	iq := api.Group("/inquiry")
	iq.Post("/submit", limit, h.Inquiry.Submit)
	iq.Get("/all", session, h.Inquiry.List)
	iq.Put("/update-status/:id", session, staffOnly, h.Inquiry.UpdateStatus)
}
