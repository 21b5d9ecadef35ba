package handler

import (
	"github.com/flicky/swiftora-api/internal/dto"
	"github.com/flicky/swiftora-api/internal/model"
	"github.com/flicky/swiftora-api/internal/service"
)

const dateLayout = "2006-01-02"

func toAccountResponse(a *model.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID: a.ID, Username: a.Username, Email: a.Email, Role: a.Role, CreatedAt: a.CreatedAt,
	}
}

func toSupplierResponse(p *model.SupplierProfile) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID: p.ID, AccountID: p.AccountID, Name: p.Name, Contact: p.Contact,
		Location: p.Location, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toSupermarketResponse(p *model.SupermarketProfile) dto.SupermarketResponse {
	return dto.SupermarketResponse{
		ID: p.ID, AccountID: p.AccountID, Name: p.Name, Phone: p.Phone,
		Location: p.Location, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toAuthResponse(r *service.AuthResult) dto.AuthResponse {
	resp := dto.AuthResponse{Token: r.Token, Account: toAccountResponse(r.Account)}
	if r.Supplier != nil {
		s := toSupplierResponse(r.Supplier)
		resp.Supplier = &s
	}
	if r.Supermarket != nil {
		s := toSupermarketResponse(r.Supermarket)
		resp.Supermarket = &s
	}
	return resp
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID: p.ID, SupplierID: p.SupplierAccountID, SKU: p.SKU, Barcode: p.Barcode,
		Name: p.Name, Category: p.Category,
		CostPrice: p.CostPrice, PurchasePrice: p.PurchasePrice, SalesPrice: p.SalesPrice,
		MRPPrice: p.MRPPrice, Discount: p.Discount,
		HSNCode: p.HSNCode, Stock: p.Stock, Unit: p.Unit, Company: p.Company,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	if p.ExpiryDate != nil {
		d := p.ExpiryDate.Format(dateLayout)
		resp.ExpiryDate = &d
	}
	return resp
}

func toProductResponses(products []model.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}
	return out
}

func toInventoryResponse(r *model.InventoryRecord) dto.InventoryResponse {
	return dto.InventoryResponse{
		ID: r.ID, ProductID: r.ProductID, SupplierID: r.SupplierAccountID,
		QuantityOnHand: r.QuantityOnHand, StockLevel: r.StockLevel, LastUpdated: r.LastUpdated,
	}
}

func toStockSummaryResponse(s model.StockSummary) dto.StockSummaryResponse {
	return dto.StockSummaryResponse{Low: s.Low, Medium: s.Medium, High: s.High}
}

func toTieUpResponse(t *model.TieUp) dto.TieUpResponse {
	return dto.TieUpResponse{
		ID: t.ID, SupplierID: t.SupplierID, SupplierAccountID: t.SupplierAccountID,
		SupermarketID: t.SupermarketID, SupermarketAccountID: t.SupermarketAccountID,
		Status: t.Status, RequestedAt: t.RequestedAt, UpdatedAt: t.UpdatedAt,
	}
}

func toOrderResponse(o *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID: o.ID, ProductID: o.ProductID,
		SupermarketID: o.SupermarketAccountID, SupplierID: o.SupplierAccountID,
		SKU: o.SKU, Quantity: o.Quantity,
		OrderDate: o.OrderDate.Format(dateLayout), OrderStatus: o.Status,
		DeliveryDate: o.DeliveryDate, CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out
}

func toOrderDetailResponse(d *model.OrderDetail) dto.OrderDetailResponse {
	return dto.OrderDetailResponse{
		OrderResponse: toOrderResponse(&d.Order),
		Product:       dto.OrderProductSnapshot{Name: d.ProductName, Stock: d.ProductStock, SKU: d.ProductSKU},
		Supplier:      dto.OrderSupplierSnapshot{Name: d.SupplierName, Email: d.SupplierEmail, Contact: d.SupplierContact},
	}
}
