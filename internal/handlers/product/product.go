package product

import (
	"log"
	"net/http"
	"time"

	"beautymart_back_end/internal/cache"
	"beautymart_back_end/internal/database"
	"beautymart_back_end/internal/models"
	"beautymart_back_end/internal/services"
	"beautymart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// GetProduct récupère un produit du catalogue
func GetProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	var p models.Product
	err = session.Query(`
		SELECT product_id, name, brand, description, price, stock, sku, image_urls, tags, is_active, created_at, updated_at
		FROM products WHERE product_id = ?
	`, gocql.UUID(productUUID)).Scan(&p.ID, &p.Name, &p.Brand, &p.Description, &p.Price, &p.Stock,
		&p.SKU, &p.ImageURLs, &p.Tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    p,
	})
}

// CreateProduct ajoute un produit au catalogue (admin)
func CreateProduct(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required"`
		Brand       string   `json:"brand" binding:"required"`
		Description string   `json:"description"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		Stock       int      `json:"stock" binding:"gte=0"`
		SKU         string   `json:"sku"`
		ImageURLs   []string `json:"image_urls"`
		Tags        []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	now := time.Now()
	p := models.Product{
		ID:          gocql.TimeUUID(),
		Name:        input.Name,
		Brand:       input.Brand,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		SKU:         input.SKU,
		ImageURLs:   input.ImageURLs,
		Tags:        input.Tags,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = session.Query(`
		INSERT INTO products (product_id, name, brand, description, price, stock, sku, image_urls, tags, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Brand, p.Description, p.Price, p.Stock, p.SKU, p.ImageURLs, p.Tags,
		p.IsActive, p.CreatedAt, p.UpdatedAt).Exec()

	if err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur création produit"})
		return
	}

	services.IndexProduct(p)
	utils.LogAction(c, utils.ACTION_PRODUCT_CREATE, utils.RESOURCE_PRODUCT, p.ID.String(), nil, p)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    p,
	})
}

// UpdateProduct met à jour un produit (admin)
func UpdateProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID produit invalide"})
		return
	}

	var input struct {
		Name        string   `json:"name" binding:"required"`
		Brand       string   `json:"brand" binding:"required"`
		Description string   `json:"description"`
		Price       float64  `json:"price" binding:"required,gt=0"`
		Stock       int      `json:"stock" binding:"gte=0"`
		SKU         string   `json:"sku"`
		ImageURLs   []string `json:"image_urls"`
		Tags        []string `json:"tags"`
		IsActive    *bool    `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	var old models.Product
	err = session.Query(`
		SELECT product_id, name, brand, description, price, stock, sku, image_urls, tags, is_active, created_at, updated_at
		FROM products WHERE product_id = ?
	`, gocql.UUID(productUUID)).Scan(&old.ID, &old.Name, &old.Brand, &old.Description, &old.Price, &old.Stock,
		&old.SKU, &old.ImageURLs, &old.Tags, &old.IsActive, &old.CreatedAt, &old.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Produit introuvable"})
		return
	}

	isActive := old.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	updated := old
	updated.Name = input.Name
	updated.Brand = input.Brand
	updated.Description = input.Description
	updated.Price = input.Price
	updated.Stock = input.Stock
	updated.SKU = input.SKU
	updated.ImageURLs = input.ImageURLs
	updated.Tags = input.Tags
	updated.IsActive = isActive
	updated.UpdatedAt = time.Now()

	err = session.Query(`
		UPDATE products SET name = ?, brand = ?, description = ?, price = ?, stock = ?, sku = ?, image_urls = ?, tags = ?, is_active = ?, updated_at = ?
		WHERE product_id = ?
	`, updated.Name, updated.Brand, updated.Description, updated.Price, updated.Stock, updated.SKU,
		updated.ImageURLs, updated.Tags, updated.IsActive, updated.UpdatedAt, gocql.UUID(productUUID)).Exec()

	if err != nil {
		log.Printf("❌ Erreur mise à jour produit %s: %v", productUUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur mise à jour produit"})
		return
	}

	cache.InvalidateProductCache(productUUID.String())
	services.IndexProduct(updated)
	utils.LogAction(c, utils.ACTION_PRODUCT_UPDATE, utils.RESOURCE_PRODUCT, productUUID.String(), old, updated)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    updated,
	})
}

// DeleteProduct retire un produit du catalogue (admin, désactivation logique)
func DeleteProduct(c *gin.Context) {
	productUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID produit invalide"})
		return
	}

	session, err := database.GetProductsSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur connexion base de données"})
		return
	}

	err = session.Query(`
		UPDATE products SET is_active = ?, updated_at = ? WHERE product_id = ?
	`, false, time.Now(), gocql.UUID(productUUID)).Exec()

	if err != nil {
		log.Printf("❌ Erreur désactivation produit %s: %v", productUUID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur suppression produit"})
		return
	}

	cache.InvalidateProductCache(productUUID.String())
	utils.LogAction(c, utils.ACTION_PRODUCT_DELETE, utils.RESOURCE_PRODUCT, productUUID.String(), nil, nil)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"message": "Produit désactivé"},
	})
}
