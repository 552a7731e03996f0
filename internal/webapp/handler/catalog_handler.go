package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/contable-ledger/internal/domain/catalog"
)

// CatalogHandler serves the enumerations consumed by the entry editor.
// The catalog is assembled once at startup and never changes.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// Get returns the full catalog
func (h *CatalogHandler) Get(c *gin.Context) {
	RespondOK(c, h.catalog)
}
