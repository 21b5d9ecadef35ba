package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleSupplier    Role = "supplier"
	RoleSupermarket Role = "supermarket"
)

func (r Role) Valid() bool {
	return r == RoleSupplier || r == RoleSupermarket
}

type Account struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SupplierProfile struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      string
	Contact   string
	Location  *Location
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SupermarketProfile struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Name      *string
	Phone     string
	Location  *Location
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Party is a profile resolved from either of its ids. Carrying both the
// account id and the profile id lets callers pick the key each query needs.
type Party struct {
	AccountID uuid.UUID
	ProfileID uuid.UUID
	Role      Role
}

// Product ids are the barcode the supplier scanned in.
type Product struct {
	ID                string
	SupplierAccountID uuid.UUID
	SKU               string
	Barcode           string
	Name              string
	Category          string
	CostPrice         decimal.Decimal
	PurchasePrice     decimal.Decimal
	SalesPrice        decimal.Decimal
	MRPPrice          decimal.Decimal
	Discount          decimal.Decimal
	ExpiryDate        *time.Time
	HSNCode           string
	Stock             int
	Unit              string
	Company           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type InventoryRecord struct {
	ID                uuid.UUID
	ProductID         string
	SupplierAccountID uuid.UUID
	QuantityOnHand    int
	StockLevel        StockLevel
	LastUpdated       time.Time
}

type TieUpStatus string

const (
	TieUpPending  TieUpStatus = "pending"
	TieUpAccepted TieUpStatus = "accepted"
)

type TieUp struct {
	ID                   uuid.UUID
	SupplierID           uuid.UUID
	SupplierAccountID    uuid.UUID
	SupermarketID        uuid.UUID
	SupermarketAccountID uuid.UUID
	Status               TieUpStatus
	RequestedAt          time.Time
	UpdatedAt            time.Time
}

// AcceptedTieUp is a tie-up joined with the supplier it points at.
type AcceptedTieUp struct {
	TieUp    TieUp
	Supplier SupplierProfile
}

// SupplierTieUp is a tie-up joined with the requesting supermarket.
type SupplierTieUp struct {
	TieUp       TieUp
	Supermarket SupermarketProfile
}

// Order statuses form an open set; only these two carry meaning here.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
)

type Order struct {
	ID                   uuid.UUID
	ProductID            string
	SupermarketAccountID uuid.UUID
	SupplierAccountID    uuid.UUID
	SKU                  string
	Quantity             int
	OrderDate            time.Time
	Status               string
	DeliveryDate         *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// OrderDetail is an order with a snapshot of its product and supplier.
type OrderDetail struct {
	Order           Order
	ProductName     *string
	ProductStock    *int
	ProductSKU      *string
	SupplierName    *string
	SupplierEmail   *string
	SupplierContact *string
}

type SupplierSummary struct {
	Supplier SupplierProfile
	Products []ProductRef
}

type ProductRef struct {
	ID   string
	Name string
}

// StockSummary counts inventory records per stock level.
type StockSummary struct {
	Low    int
	Medium int
	High   int
}
