package service

import (
	"tavola/internal/dto"
	"tavola/internal/model"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ── model → DTO mappers ──────────────────────────────────────────────────────

func userToResponse(u *model.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		RoleID:    u.RoleID,
		CreatedAt: u.CreatedAt,
	}
	if u.Role != nil {
		resp.Role = u.Role.Name
		resp.Permissions = lo.Map(u.Role.Permissions, func(p model.Permission, _ int) string { return p.Name })
	}
	return resp
}

func permissionToResponse(p model.Permission, _ int) dto.PermissionResponse {
	return dto.PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

func roleToResponse(r model.Role, _ int) dto.RoleResponse {
	return dto.RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Permissions: lo.Map(r.Permissions, permissionToResponse),
		CreatedAt:   r.CreatedAt,
	}
}

func menuItemToResponse(m model.MenuItem, _ int) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:              m.ID,
		Name:            m.Name,
		Description:     m.Description,
		Price:           m.Price,
		Cost:            m.Cost,
		IsAvailable:     m.IsAvailable,
		ImageURL:        m.ImageURL,
		PreparationTime: m.PreparationTime,
		CategoryID:      m.CategoryID,
		CreatedAt:       m.CreatedAt,
	}
}

func categoryToResponse(c model.MenuCategory, _ int) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
	if len(c.Items) > 0 {
		resp.Items = lo.Map(c.Items, menuItemToResponse)
	}
	return resp
}

func tableToResponse(t model.Table, _ int) dto.TableResponse {
	return dto.TableResponse{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		Capacity:    t.Capacity,
		Location:    t.Location,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
	}
}

func orderItemToResponse(it model.OrderItem, _ int) dto.OrderItemResponse {
	resp := dto.OrderItemResponse{
		ID:         it.ID,
		MenuItemID: it.MenuItemID,
		Quantity:   it.Quantity,
		UnitPrice:  it.UnitPrice,
		Subtotal:   it.Subtotal(),
		Status:     it.Status,
		Notes:      it.Notes,
	}
	if it.MenuItem != nil {
		resp.MenuItemName = it.MenuItem.Name
	}
	return resp
}

func orderToResponse(o *model.Order, taxRate decimal.Decimal) dto.OrderResponse {
	subtotal, tax, total := o.Totals(taxRate)
	return dto.OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		OrderType:   o.OrderType,
		TableID:     o.TableID,
		WaiterID:    o.WaiterID,
		Notes:       o.Notes,
		Items:       lo.Map(o.Items, orderItemToResponse),
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: total,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func paymentToResponse(p model.Payment, _ int) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		PaymentMethod: p.PaymentMethod,
		Status:        p.Status,
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
}

func ingredientToResponse(i model.Ingredient, _ int) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:            i.ID,
		Name:          i.Name,
		Description:   i.Description,
		Unit:          i.Unit,
		CurrentStock:  i.CurrentStock,
		MinStockLevel: i.MinStockLevel,
		ReorderLevel:  i.ReorderLevel,
		LowStock:      i.IsLowStock(),
		UpdatedAt:     i.UpdatedAt,
	}
}

func movementToResponse(m model.StockMovement, _ int) dto.StockMovementResponse {
	resp := dto.StockMovementResponse{
		ID:           m.ID,
		IngredientID: m.IngredientID,
		Quantity:     m.Quantity,
		MovementType: m.MovementType,
		ReferenceID:  m.ReferenceID,
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt,
	}
	if m.Ingredient != nil {
		resp.IngredientName = m.Ingredient.Name
	}
	return resp
}

func reservationToResponse(r model.Reservation, _ int) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:              r.ID,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		ReservationTime: r.ReservationTime,
		PartySize:       r.PartySize,
		Status:          r.Status,
		Notes:           r.Notes,
		TableID:         r.TableID,
		CreatedAt:       r.CreatedAt,
	}
}

func employeeToResponse(e model.Employee, _ int) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		Phone:     e.Phone,
		Address:   e.Address,
		HireDate:  e.HireDate,
		Position:  e.Position,
		Salary:    e.Salary,
		CreatedAt: e.CreatedAt,
	}
	if e.User != nil {
		resp.Username = e.User.Username
		resp.FullName = e.User.FullName
	}
	return resp
}

func attendanceToResponse(a model.Attendance, _ int) dto.AttendanceResponse {
	return dto.AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		Notes:      a.Notes,
	}
}

func leaveToResponse(l model.Leave, _ int) dto.LeaveResponse {
	return dto.LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		StartDate:  l.StartDate,
		EndDate:    l.EndDate,
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt,
	}
}
