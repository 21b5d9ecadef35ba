package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/flicky/swiftora-api/internal/model"
)

// --- Auth ---

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,marketrole"`

	// Profile fields; which ones apply depends on the role.
	Name     string          `json:"name"`
	Contact  string          `json:"contact"`
	Phone    string          `json:"phone"`
	Location *RegisterLocation `json:"location"`
}

// RegisterLocation holds coordinates exactly as the client sent them.
type RegisterLocation struct {
	Lat     interface{} `json:"lat"`
	Lng     interface{} `json:"lng"`
	Address string      `json:"address"`
}

// Coordinates returns the location only when lat and lng are both JSON
// numbers. Anything else, including numeric strings, yields nil.
func (l *RegisterLocation) Coordinates() *model.Location {
	if l == nil {
		return nil
	}
	lat, ok := l.Lat.(float64)
	if !ok {
		return nil
	}
	lng, ok := l.Lng.(float64)
	if !ok {
		return nil
	}
	return &model.Location{Lat: lat, Lng: lng, Address: l.Address}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token       string               `json:"token"`
	Account     AccountResponse      `json:"user"`
	Supplier    *SupplierResponse    `json:"supplier,omitempty"`
	Supermarket *SupermarketResponse `json:"supermarket,omitempty"`
}

type AccountResponse struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

// --- Profiles ---

type SupplierRequest struct {
	Name     string          `json:"name" binding:"required,max=200"`
	Contact  string          `json:"contact" binding:"max=100"`
	Location *model.Location `json:"location"`
}

type SupermarketRequest struct {
	Name     *string         `json:"supermarket_name" binding:"omitempty,max=200"`
	Phone    string          `json:"phone" binding:"max=50"`
	Location *model.Location `json:"location"`
}

type SupplierResponse struct {
	ID        uuid.UUID       `json:"supplier_id"`
	AccountID uuid.UUID       `json:"user_id"`
	Name      string          `json:"name"`
	Contact   string          `json:"contact"`
	Location  *model.Location `json:"location"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type SupermarketResponse struct {
	ID        uuid.UUID       `json:"supermarket_id"`
	AccountID uuid.UUID       `json:"user_id"`
	Name      *string         `json:"supermarket_name"`
	Phone     string          `json:"phone"`
	Location  *model.Location `json:"location"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ProductRefResponse struct {
	ID   string `json:"product_id"`
	Name string `json:"product_name"`
}

type SupplierDirectoryEntry struct {
	SupplierResponse
	Products []ProductRefResponse `json:"products"`
}

// --- Products ---

type CreateProductRequest struct {
	Barcode       string          `json:"barcode" binding:"required,max=64"`
	SKU           string          `json:"sku" binding:"max=64"`
	Name          string          `json:"product_name" binding:"max=200"`
	Category      string          `json:"category" binding:"max=100"`
	CostPrice     decimal.Decimal `json:"cost_price" binding:"gte=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"gte=0"`
	SalesPrice    decimal.Decimal `json:"sales_price" binding:"gte=0"`
	MRPPrice      decimal.Decimal `json:"mrp_price" binding:"gte=0"`
	Discount      decimal.Decimal `json:"discount" binding:"gte=0"`
	ExpiryDate    *string         `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	HSNCode       string          `json:"hsn_no" binding:"max=32"`
	Stock         int             `json:"stock" binding:"gte=0"`
	Unit          string          `json:"unit" binding:"max=32"`
	Company       string          `json:"company" binding:"max=200"`
}

type UpdateProductRequest struct {
	SKU           *string          `json:"sku" binding:"omitempty,min=1,max=64"`
	Name          *string          `json:"product_name" binding:"omitempty,max=200"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	CostPrice     *decimal.Decimal `json:"cost_price" binding:"omitempty,gte=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" binding:"omitempty,gte=0"`
	SalesPrice    *decimal.Decimal `json:"sales_price" binding:"omitempty,gte=0"`
	MRPPrice      *decimal.Decimal `json:"mrp_price" binding:"omitempty,gte=0"`
	Discount      *decimal.Decimal `json:"discount" binding:"omitempty,gte=0"`
	ExpiryDate    *string          `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	HSNCode       *string          `json:"hsn_no" binding:"omitempty,max=32"`
	Stock         *int             `json:"stock" binding:"omitempty,gte=0"`
	Unit          *string          `json:"unit" binding:"omitempty,max=32"`
	Company       *string          `json:"company" binding:"omitempty,max=200"`
}

type ProductResponse struct {
	ID            string          `json:"product_id"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	SKU           string          `json:"sku"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"product_name"`
	Category      string          `json:"category"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalesPrice    decimal.Decimal `json:"sales_price"`
	MRPPrice      decimal.Decimal `json:"mrp_price"`
	Discount      decimal.Decimal `json:"discount"`
	ExpiryDate    *string         `json:"expiry_date"`
	HSNCode       string          `json:"hsn_no"`
	Stock         int             `json:"stock"`
	Unit          string          `json:"unit"`
	Company       string          `json:"company"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// --- Inventory ---

type UpsertInventoryRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  *int   `json:"quantity" binding:"required,gte=0"`
}

type UpdateInventoryRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

type InventoryResponse struct {
	ID             uuid.UUID        `json:"inventory_id"`
	ProductID      string           `json:"product_id"`
	SupplierID     uuid.UUID        `json:"supplier_id"`
	QuantityOnHand int              `json:"quantity_on_hand"`
	StockLevel     model.StockLevel `json:"stock_level"`
	LastUpdated    time.Time        `json:"last_updated"`
}

type StockSummaryResponse struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// --- Tie-ups ---

type TieUpRequest struct {
	SupplierID uuid.UUID `json:"supplierId" binding:"required"`
}

type TieUpResponse struct {
	ID                   uuid.UUID         `json:"tie_up_id"`
	SupplierID           uuid.UUID         `json:"supplier_id"`
	SupplierAccountID    uuid.UUID         `json:"supplier_user_id"`
	SupermarketID        uuid.UUID         `json:"supermarket_id"`
	SupermarketAccountID uuid.UUID         `json:"supermarket_user_id"`
	Status               model.TieUpStatus `json:"status"`
	RequestedAt          time.Time         `json:"requested_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

type TieUpStatusResponse struct {
	Status model.TieUpStatus `json:"status"`
}

// AcceptedTieUpResponse is a supplier row with its tie-up fields merged in.
type AcceptedTieUpResponse struct {
	SupplierResponse
	TieUpID              uuid.UUID         `json:"tie_up_id"`
	SupermarketID        uuid.UUID         `json:"supermarket_id"`
	SupermarketAccountID uuid.UUID         `json:"supermarket_user_id"`
	Status               model.TieUpStatus `json:"status"`
	RequestedAt          time.Time         `json:"requested_at"`
}

type SupplierTieUpResponse struct {
	TieUpResponse
	Supermarket SupermarketResponse `json:"supermarket"`
}

// --- Orders ---

type PlaceOrderRequest struct {
	ProductID     string     `json:"product_id" binding:"required"`
	SupermarketID uuid.UUID  `json:"supermarket_id"`
	SupplierID    uuid.UUID  `json:"supplier_id" binding:"required"`
	SKU           string     `json:"sku"`
	Quantity      int        `json:"quantity" binding:"required,gt=0"`
	DeliveryDate  *time.Time `json:"delivery_date"`
}

type UpdateOrderStatusRequest struct {
	OrderStatus string `json:"order_status"`
}

type OrderResponse struct {
	ID            uuid.UUID  `json:"order_id"`
	ProductID     string     `json:"product_id"`
	SupermarketID uuid.UUID  `json:"supermarket_id"`
	SupplierID    uuid.UUID  `json:"supplier_id"`
	SKU           string     `json:"sku"`
	Quantity      int        `json:"quantity"`
	OrderDate     string     `json:"order_date"`
	OrderStatus   string     `json:"order_status"`
	DeliveryDate  *time.Time `json:"delivery_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type OrderProductSnapshot struct {
	Name  *string `json:"product_name"`
	Stock *int    `json:"stock"`
	SKU   *string `json:"sku"`
}

type OrderSupplierSnapshot struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Contact *string `json:"contact"`
}

type OrderDetailResponse struct {
	OrderResponse
	Product  OrderProductSnapshot  `json:"product"`
	Supplier OrderSupplierSnapshot `json:"supplier"`
}

type EligibleProductsResponse struct {
	Products    []ProductResponse           `json:"products"`
	Suppliers   []SupplierResponse          `json:"suppliers"`
	SupplierMap map[string]SupplierResponse `json:"supplierMap"`
}

// --- Dashboards ---

type SupermarketDashboardResponse struct {
	SupermarketID  uuid.UUID       `json:"supermarketId"`
	AcceptedTieUps int             `json:"acceptedTieUps"`
	PendingTieUps  int             `json:"pendingTieUps"`
	TotalOrders    int             `json:"totalOrders"`
	OrdersByStatus map[string]int  `json:"ordersByStatus"`
	RecentOrders   []OrderResponse `json:"recentOrders"`
}

type SupplierDashboardResponse struct {
	SupplierID       uuid.UUID            `json:"supplierId"`
	ProductCount     int                  `json:"productCount"`
	TotalOrders      int                  `json:"totalOrders"`
	OrdersByStatus   map[string]int       `json:"ordersByStatus"`
	TiedSupermarkets int                  `json:"tiedSupermarkets"`
	PendingRequests  int                  `json:"pendingRequests"`
	Stock            StockSummaryResponse `json:"stock"`
	RecentOrders     []OrderResponse      `json:"recentOrders"`
}
