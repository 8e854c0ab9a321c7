//go:build wireinject
// +build wireinject

package report

import (
	"github.com/google/wire"

	catalogdomain "github.com/ironvale/stockledger/internal/catalog/domain"
	"github.com/ironvale/stockledger/internal/ledger/projector"
	"github.com/ironvale/stockledger/internal/report/delivery/http"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	catalog catalogdomain.ProductRepository,
	proj *projector.Projector,
) (*http.ReportHandler, error) {
	wire.Build(
		PolicySet,
		http.NewReportHandler,
	)
	return nil, nil
}
