package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Stock Ledger Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	// Swagger UI
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// RecordMovement godoc
// @Summary Record a stock movement
// @Description Append an IN or OUT movement to the ledger and project the new stock level
// @Tags Movements
// @Accept json
// @Produce json
// @Param request body object{product_id=int,direction=string,quantity=int,reason=string,reference=string,occurred_at=string} true "Movement data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/movements [post]
func (h *LedgerHandler) RecordMovementDoc() {}

// ListMovements godoc
// @Summary List stock movements
// @Description Get ledger entries, newest first, optionally scoped to one product
// @Tags Movements
// @Produce json
// @Param product_id query int false "Product ID"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /api/movements [get]
func (h *LedgerHandler) ListMovementsDoc() {}

// GetSnapshot godoc
// @Summary Get stock snapshot
// @Description Get the projected stock level for a product
// @Tags Stock
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object{snapshot=object,tier=string}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/stock/{product_id} [get]
func (h *LedgerHandler) GetSnapshotDoc() {}

// VerifyProjection godoc
// @Summary Verify a stock projection
// @Description Replay the product's ledger and compare against the live snapshot
// @Tags Stock
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 409 {object} object{success=bool,error=string}
// @Router /api/stock/{product_id}/verify [post]
func (h *LedgerHandler) VerifyProjectionDoc() {}

// RepairProjection godoc
// @Summary Repair a quarantined projection
// @Description Rebuild the product's snapshot from its full ledger history
// @Tags Stock
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/stock/{product_id}/repair [post]
func (h *LedgerHandler) RepairProjectionDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *LedgerHandler) HealthCheckDoc() {}
