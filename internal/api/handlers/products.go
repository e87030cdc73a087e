package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emycrochet/storefront-api/internal/catalog"
)

// Catalog provides a fresh catalog snapshot.
type Catalog interface {
	Fetch(ctx context.Context) (*catalog.Snapshot, error)
}

// ProductResponse is one storefront listing entry.
type ProductResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Size        string   `json:"size,omitempty"`
	Option      string   `json:"option,omitempty"`
	Price       float64  `json:"price"`
	Images      []string `json:"images,omitempty"`
	DelayMin    string   `json:"delay_min,omitempty"`
	DelayMax    string   `json:"delay_max,omitempty"`
	Featured    bool     `json:"featured"`
	Categories  []string `json:"categories,omitempty"`
}

// HandleListProducts handles GET /api/products, serving the active
// catalog entries in sheet order.
func HandleListProducts(cat Catalog, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := cat.Fetch(c.Request.Context())
		if err != nil {
			logger.Error("Catalog fetch failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Catalog unavailable"})
			return
		}

		active := snapshot.Active()
		products := make([]ProductResponse, 0, len(active))
		for _, p := range active {
			products = append(products, ProductResponse{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Size:        p.Size,
				Option:      p.Option,
				Price:       p.Price.InexactFloat64(),
				Images:      p.Images,
				DelayMin:    p.DelayMin,
				DelayMax:    p.DelayMax,
				Featured:    p.Featured,
				Categories:  p.Categories,
			})
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}
