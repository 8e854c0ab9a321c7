package main

// @title Stock Ledger Service API
// @version 1.0
// @description Stock movement ledger, projection and reorder reporting API with full observability (logging, tracing, metrics)
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://github.com/ironvale/stockledger
// @contact.email support@example.com

// @license.name MIT
// @license.url https://github.com/ironvale/stockledger/blob/main/LICENSE

// @host localhost:8085
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Movements
// @tag.description Stock movement ledger endpoints

// @tag.name Stock
// @tag.description Stock snapshot and projection maintenance endpoints

// @tag.name Products
// @tag.description Product catalog endpoints

// @tag.name Reports
// @tag.description Stock report endpoints

// @tag.name Health
// @tag.description Health check endpoints

// @tag.name Swagger
// @tag.description Swagger documentation endpoints
