package ports

import (
	"context"

	"firebreak-route-service/internal/domain"
)

// Port: a boundary for retrieving the equipment catalog from a data source.
// The engine never fetches or persists the catalog itself; it is supplied
// whole per invocation.
type EquipmentRepository interface {
	// Retrieve all equipment available for evaluation.
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
}
