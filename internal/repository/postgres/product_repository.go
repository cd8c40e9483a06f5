package postgres

import (
	"context"
	"fmt"

	"customerAgent/business/recommendation"
	"customerAgent/domain"
	"customerAgent/pkg/logger"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

var _ recommendation.ProductCatalog = (*ProductRepository)(nil)

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

// ListAll returns the whole catalog ordered by product id.
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var products []domain.Product
	if err := r.DB.WithContext(ctx).Order("product_id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// EnsureCatalog inserts the demo catalog when the table is empty.
func (r *ProductRepository) EnsureCatalog(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := DemoCatalog()
	if err := r.DB.WithContext(ctx).Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed product catalog: %w", err)
	}

	logger.Info("Product catalog seeded", "products", len(products))
	return nil
}

// DemoCatalog is the sample catalog loaded into an empty database.
func DemoCatalog() []domain.Product {
	return []domain.Product{
		{ProductName: "Galaxy S22", ProductCategory: "SmartPhone", Price: 799.99, Description: "Latest Samsung smartphone with advanced camera", Tags: "samsung phone android camera"},
		{ProductName: "iPhone 13", ProductCategory: "SmartPhone", Price: 899.99, Description: "Apple's flagship smartphone with improved battery", Tags: "apple phone ios camera"},
		{ProductName: "Google Pixel 6", ProductCategory: "SmartPhone", Price: 699.99, Description: "Google's smartphone with excellent camera capabilities", Tags: "google phone android camera photography"},
		{ProductName: "MacBook Pro", ProductCategory: "Laptop", Price: 1299.99, Description: "Powerful laptop for professionals", Tags: "apple laptop macOS productivity"},
		{ProductName: "Dell XPS 13", ProductCategory: "Laptop", Price: 999.99, Description: "Compact and powerful Windows laptop", Tags: "dell laptop windows productivity"},
		{ProductName: "Lenovo ThinkPad", ProductCategory: "Laptop", Price: 1099.99, Description: "Business laptop with excellent keyboard", Tags: "lenovo laptop windows business"},
		{ProductName: "Premium Yoga Mat", ProductCategory: "Yoga Mat", Price: 45.99, Description: "Non-slip eco-friendly yoga mat", Tags: "yoga fitness exercise mat"},
		{ProductName: "Yoga Block Set", ProductCategory: "Yoga", Price: 19.99, Description: "Set of 2 yoga blocks for support", Tags: "yoga fitness exercise props"},
		{ProductName: "Premium Resistance Bands", ProductCategory: "fitness", Price: 29.99, Description: "Set of 5 resistance bands for strength training", Tags: "fitness strength training bands home workout"},
		{ProductName: "Smart Treadmill", ProductCategory: "fitness", Price: 1499.99, Description: "Connected treadmill with interactive classes", Tags: "fitness cardio treadmill running machine"},
		{ProductName: "Adjustable Dumbbells", ProductCategory: "fitness", Price: 299.99, Description: "Space-saving adjustable weight dumbbells", Tags: "fitness strength weights dumbbells"},
		{ProductName: "Running Shoes", ProductCategory: "fashion", Price: 89.99, Description: "Lightweight running shoes with cushioning", Tags: "shoes running fitness footwear"},
		{ProductName: "Casual Sneakers", ProductCategory: "fashion", Price: 59.99, Description: "Comfortable everyday sneakers", Tags: "shoes casual fashion footwear"},
		{ProductName: "Formal Shoes", ProductCategory: "fashion", Price: 129.99, Description: "Classic leather formal shoes", Tags: "shoes formal dress footwear"},
		{ProductName: "Fitness Tracker Watch", ProductCategory: "fashion", Price: 149.99, Description: "Smart watch with fitness tracking features", Tags: "watch smartwatch fitness tracker"},
		{ProductName: "Designer Jeans", ProductCategory: "fashion", Price: 79.99, Description: "Premium denim jeans", Tags: "jeans pants denim fashion"},
	}
}
