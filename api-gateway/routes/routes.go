package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ironvale/stockledger/api-gateway/config"
	"github.com/ironvale/stockledger/api-gateway/health"
	"github.com/ironvale/stockledger/api-gateway/middleware"
	"github.com/ironvale/stockledger/api-gateway/proxy"
)

// RouteDefinition defines a route mapping
type RouteDefinition struct {
	Prefix       string
	ServiceName  string
	Description  string
	RequireAuth    bool // Requires authentication
	RequireAdmin   bool // Requires admin role on every method
	AdminMutations bool // Requires admin role on write methods only
	RateLimited    bool // Extra per-route rate limit on top of the global one
}

// Routes holds all route definitions
var Routes = []RouteDefinition{
	{
		Prefix:       "/api/movements",
		ServiceName:  "stockledger",
		Description:  "Stock movement ledger (record and browse movements)",
		RequireAuth:  true,
		RequireAdmin: false,
	},
	{
		Prefix:       "/api/stock",
		ServiceName:  "stockledger",
		Description:  "Stock snapshots, projection verify and repair",
		RequireAuth:  true,
		RequireAdmin: false,
	},
	{
		Prefix:         "/api/products",
		ServiceName:    "stockledger",
		Description:    "Product catalog management",
		RequireAuth:    true,
		AdminMutations: true,
	},
	{
		Prefix:       "/api/reports",
		ServiceName:  "stockledger",
		Description:  "Stock and reorder reports",
		RequireAuth:  true,
		RequireAdmin: false,
		RateLimited:  true,
	},
}

// SetupRoutes configures all routes in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager, redisClient *redis.Client) {
	// Create reverse proxy
	reverseProxy := proxy.NewReverseProxy(cfg)

	// Create health checker
	healthChecker := health.NewHealthChecker(cfg)

	// Gateway quick health check (no downstream checks)
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	// Liveness probe (for Kubernetes)
	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "alive",
		})
	})

	// Readiness probe (checks downstream services)
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)

		statusCode := fiber.StatusOK
		if healthStatus.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}

		return c.Status(statusCode).JSON(healthStatus)
	})

	// Detailed service health checks
	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()

		healthStatus := healthChecker.CheckAllServices(ctx)
		return c.JSON(healthStatus)
	})

	// Gateway internals (load balancer and circuit breaker state)
	app.Get("/gateway/stats", func(c *fiber.Ctx) error {
		lbStats := make(map[string]interface{})
		for name, lb := range reverseProxy.GetLoadBalancers() {
			lbStats[name] = lb.GetStats()
		}

		return c.JSON(fiber.Map{
			"load_balancers":   lbStats,
			"circuit_breakers": cbManager.GetAllStats(),
		})
	})

	// API routes overview
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Stock Ledger API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	// Register all service routes
	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy, redisClient)
	}
}

// registerServiceRoutes registers all HTTP methods for a service prefix
func registerServiceRoutes(app *fiber.App, route RouteDefinition, proxyHandler *proxy.ReverseProxy, redisClient *redis.Client) {
	// Create handler function
	handler := func(c *fiber.Ctx) error {
		return proxyHandler.ProxyRequest(c, route.ServiceName)
	}

	// Apply middleware based on route requirements
	var middlewares []fiber.Handler

	if route.RequireAdmin {
		// Admin routes need both auth and admin check
		middlewares = append(middlewares, middleware.AuthMiddleware(), middleware.AdminMiddleware())
	} else if route.RequireAuth {
		// Auth required routes
		middlewares = append(middlewares, middleware.AuthMiddleware())
	}

	if route.AdminMutations {
		// Reads pass with plain auth, writes need the admin role
		adminCheck := middleware.AdminMiddleware()
		middlewares = append(middlewares, func(c *fiber.Ctx) error {
			switch c.Method() {
			case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
				return c.Next()
			}
			return adminCheck(c)
		})
	}

	if route.RateLimited && redisClient != nil {
		middlewares = append(middlewares, middleware.ReportRateLimiter(redisClient))
	}

	// Create a route group for this service
	group := app.Group(route.Prefix, middlewares...)

	// Handle all HTTP methods with wildcard path
	group.All("/*", handler)

	// Also handle the exact prefix path (without /*)
	if len(middlewares) > 0 {
		app.All(route.Prefix, append(middlewares, handler)...)
	} else {
		app.All(route.Prefix, handler)
	}
}
