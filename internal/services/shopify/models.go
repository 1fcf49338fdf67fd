package shopify

import (
	"time"
)

// Product represents a raw Shopify product as returned by the Admin API.
type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	BodyHTML    string    `json:"body_html"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"product_type"`
	Handle      string    `json:"handle"`
	Status      string    `json:"status"`
	Tags        string    `json:"tags"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Variant represents a product variant
type Variant struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id"`
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	Sku               string  `json:"sku"`
	Position          int     `json:"position"`
	ImageID           *int64  `json:"image_id"`
	InventoryQuantity int     `json:"inventory_quantity"`
	CompareAtPrice    *string `json:"compare_at_price"`
	Barcode           *string `json:"barcode"`
}

// Image represents a product image
type Image struct {
	ID         int64   `json:"id"`
	ProductID  int64   `json:"product_id"`
	Position   int     `json:"position"`
	Src        string  `json:"src"`
	Alt        *string `json:"alt"`
	VariantIDs []int64 `json:"variant_ids"`
}

// ProductsResponse represents one page of the products API. The
// next-page cursor comes from the Link response header, so it is filled
// in by the client rather than decoded from the body.
type ProductsResponse struct {
	Products     []Product `json:"products"`
	NextPageInfo *string   `json:"-"`
}
