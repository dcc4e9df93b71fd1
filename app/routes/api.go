// Package routes wires repositories, services and controllers into the
// HTTP route table.
package routes

import (
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/huyvng/storedash/app/controllers"
	"github.com/huyvng/storedash/app/jobs"
	"github.com/huyvng/storedash/app/models"
	"github.com/huyvng/storedash/app/repositories"
	"github.com/huyvng/storedash/app/services"
	"github.com/huyvng/storedash/pkg/middleware"
	"github.com/huyvng/storedash/pkg/rbac"
	"github.com/huyvng/storedash/pkg/response"
	"github.com/huyvng/storedash/pkg/router"
	"github.com/huyvng/storedash/pkg/storage"
	"github.com/huyvng/storedash/pkg/ws"
)

// RegisterAPI mounts every API endpoint. All routes except login and the
// health probe require a bearer token; user-management mutations
// additionally require the admin role.
func RegisterAPI(r *router.Router, db *mongo.Database, hub *ws.Hub) {
	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	shippingRepo := repositories.NewShippingRepository(db)
	brandRepo := repositories.NewBrandRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	paymentMethodRepo := repositories.NewPaymentMethodRepository(db)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, storage.Default())
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, jobs.Notifier{})
	shippingService := services.NewShippingService(shippingRepo)
	brandService := services.NewCatalogService(brandRepo)
	categoryService := services.NewCatalogService(categoryRepo)
	paymentMethodService := services.NewCatalogService(paymentMethodRepo)

	authCtl := controllers.NewAuthController(authService)
	userCtl := controllers.NewUserController(userService)
	productCtl := controllers.NewProductController(productService)
	orderCtl := controllers.NewOrderController(orderService)
	shippingCtl := controllers.NewShippingController(shippingService)
	brandCtl := controllers.NewCatalogController(brandService, "Brand", "brands")
	categoryCtl := controllers.NewCatalogController(categoryService, "Category", "categories")
	paymentMethodCtl := controllers.NewCatalogController(paymentMethodService, "Payment method", "methods")

	api := r.Group("/api")
	api.Post("/auth/login", "auth.login", authCtl.Login)
	api.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	protected := api.Group("", middleware.Auth(authService))
	admin := rbac.HasRole(models.RoleAdmin)

	protected.Get("/users", "users.index", userCtl.List)
	protected.Post("/users", "users.store", userCtl.Create, admin)
	protected.Put("/users/{id}", "users.update", userCtl.Update, admin)
	protected.Delete("/users/{id}", "users.destroy", userCtl.Delete, admin)

	protected.Get("/products", "products.index", productCtl.List)
	protected.Post("/products", "products.store", productCtl.Create)
	protected.Put("/products/{id}", "products.update", productCtl.Update)
	protected.Delete("/products/{id}", "products.destroy", productCtl.Delete)

	protected.Get("/orders", "orders.index", orderCtl.List)
	protected.Post("/orders", "orders.store", orderCtl.Create)
	protected.Put("/orders/{id}", "orders.update", orderCtl.Update)
	protected.Delete("/orders/{id}", "orders.destroy", orderCtl.Delete)
	protected.Get("/orders/revenue/total", "orders.revenue.total", orderCtl.RevenueTotal)
	protected.Get("/orders/revenue/daily", "orders.revenue.daily", orderCtl.RevenueDaily)
	protected.Get("/orders/revenue/monthly", "orders.revenue.monthly", orderCtl.RevenueMonthly)

	protected.Get("/brands", "brands.index", brandCtl.List)
	protected.Post("/brands", "brands.store", brandCtl.Create)
	protected.Put("/brands/{id}", "brands.update", brandCtl.Update)
	protected.Delete("/brands/{id}", "brands.destroy", brandCtl.Delete)

	protected.Get("/categories", "categories.index", categoryCtl.List)
	protected.Post("/categories", "categories.store", categoryCtl.Create)
	protected.Put("/categories/{id}", "categories.update", categoryCtl.Update)
	protected.Delete("/categories/{id}", "categories.destroy", categoryCtl.Delete)

	protected.Get("/payment-methods", "payment_methods.index", paymentMethodCtl.List)
	protected.Get("/payment-methods/{id}", "payment_methods.show", paymentMethodCtl.Get)
	protected.Post("/payment-methods", "payment_methods.store", paymentMethodCtl.Create)
	protected.Put("/payment-methods/{id}", "payment_methods.update", paymentMethodCtl.Update)
	protected.Delete("/payment-methods/{id}", "payment_methods.destroy", paymentMethodCtl.Delete)

	protected.Get("/shippings", "shippings.index", shippingCtl.List)
	protected.Get("/shippings/{id}", "shippings.show", shippingCtl.Get)
	protected.Post("/shippings", "shippings.store", shippingCtl.Create)
	protected.Put("/shippings/{id}", "shippings.update", shippingCtl.Update)
	protected.Delete("/shippings/{id}", "shippings.destroy", shippingCtl.Delete)

	protected.Get("/ws/dashboard", "ws.dashboard", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	})
}
