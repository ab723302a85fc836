package model

import "time"

// Barcode ties a scanned code to the store it was seen at.
type Barcode struct {
	Code    string `json:"code"`
	StoreID string `json:"store_id,omitempty"`
}

type Item struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Category        string     `json:"category"`
	Quantity        int        `json:"quantity"`
	Unit            string     `json:"unit"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	StorageLocation string     `json:"storage_location"`
	Price           float64    `json:"price"`
	Barcodes        []Barcode  `json:"barcodes"`
	StoreID         string     `json:"store_id"`
	DatePurchased   *time.Time `json:"date_purchased,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Store struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	ContactNumber string    `json:"contact_number,omitempty"`
	Website       string    `json:"website,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RecipeIngredient struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
}

type RecipeStep struct {
	StepNumber  int    `json:"step_number"`
	Description string `json:"description"`
	Duration    int    `json:"duration,omitempty"`
}

type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Servings    int                `json:"servings"`
	PrepTime    int                `json:"prep_time"`
	CookTime    int                `json:"cook_time"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Steps       []RecipeStep       `json:"steps"`
	Categories  []string           `json:"categories,omitempty"`
	Difficulty  string             `json:"difficulty"`
	ImageURL    string             `json:"image_url,omitempty"`
	Rating      float64            `json:"rating,omitempty"`
	Notes       string             `json:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}
