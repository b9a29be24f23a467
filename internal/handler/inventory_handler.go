package handler

import (
	"go-retail-ledger/internal/model"
	"go-retail-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.LedgerService
}

func NewInventoryHandler(s service.LedgerService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product := model.Product{
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		Quantity:     int(req.Quantity),
		SellingPrice: req.SellingPrice.Decimal,
		CostPrice:    req.CostPrice.Decimal,
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	patch := service.ProductPatch{
		Name:     req.Name,
		Category: req.Category,
		Unit:     req.Unit,
	}
	if req.Quantity != nil {
		qty := int(*req.Quantity)
		patch.Quantity = &qty
	}
	if req.SellingPrice != nil {
		patch.SellingPrice = &req.SellingPrice.Decimal
	}
	if req.CostPrice != nil {
		patch.CostPrice = &req.CostPrice.Decimal
	}

	updated, err := h.service.UpdateProduct(productID, patch)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(productID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req RecordTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	result, err := h.service.RecordTransaction(service.RecordTransactionInput{
		ProductID: productID,
		Type:      model.TransactionType(req.Type),
		Quantity:  int(req.Quantity),
		UnitPrice: req.UnitPrice.Decimal,
		Note:      req.Note,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": result})
}

func (h *InventoryHandler) DeleteTransaction(c *fiber.Ctx) error {
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.DeleteTransaction(txID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}

func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	transactions, err := h.service.GetAllTransactions()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(transactions)
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	txID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	txn, err := h.service.GetTransactionByID(txID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(txn)
}
