// controllers/order.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"mariscos-pos/config"
	"mariscos-pos/ledger"
	"mariscos-pos/models"
	"mariscos-pos/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OrderController mutates the ticket lines of an open order.
type OrderController struct {
	Ledger *ledger.Ledger
}

func NewOrderController(l *ledger.Ledger) *OrderController {
	return &OrderController{Ledger: l}
}

// AddLineInput defines the expected JSON structure for adding a ticket line
type AddLineInput struct {
	ProductID uint `json:"productId" binding:"required"`
	// Price must be supplied for variable-price products and is ignored
	// otherwise.
	Price *float64 `json:"price"`
}

// AddLine puts a catalog product on a table's ticket
func (oc *OrderController) AddLine(c *gin.Context) {
	var input AddLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	line, err := oc.Ledger.AddLine(c.Param("key"), product, input.Price)
	if err != nil {
		oc.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, line)
}

// EditLineInput defines the expected JSON structure for editing a ticket line
type EditLineInput struct {
	Name      *string  `json:"name"`
	UnitPrice *float64 `json:"unitPrice"`
}

// EditLine changes the name or price snapshot of one ticket line
func (oc *OrderController) EditLine(c *gin.Context) {
	lineID, err := strconv.Atoi(c.Param("line"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid line ID")
		return
	}

	var input EditLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if input.Name == nil && input.UnitPrice == nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Nothing to edit")
		return
	}

	line, err := oc.Ledger.EditLine(c.Param("key"), lineID, input.Name, input.UnitPrice)
	if err != nil {
		oc.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

// AdjustQuantityInput defines the expected JSON structure for a quantity change
type AdjustQuantityInput struct {
	Delta int `json:"delta" binding:"required,oneof=-1 1"`
}

// AdjustQuantity bumps a line's quantity up or down by one; reaching zero
// removes the line
func (oc *OrderController) AdjustQuantity(c *gin.Context) {
	lineID, err := strconv.Atoi(c.Param("line"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid line ID")
		return
	}

	var input AdjustQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := oc.Ledger.AdjustQuantity(c.Param("key"), lineID, input.Delta); err != nil {
		oc.respondLedgerError(c, err)
		return
	}

	snap, _ := oc.Ledger.Get(c.Param("key"))
	c.JSON(http.StatusOK, snap)
}

func (oc *OrderController) respondLedgerError(c *gin.Context, err error) {
	switch err {
	case ledger.ErrNoOpenOrder:
		utils.RespondWithError(c, http.StatusNotFound, "No open order for that table")
	case ledger.ErrLineNotFound:
		utils.RespondWithError(c, http.StatusNotFound, "Line not found")
	case ledger.ErrPriceRequired:
		utils.RespondWithError(c, http.StatusBadRequest, "This product needs a price at order time")
	case ledger.ErrInvalidPrice:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid price")
	case ledger.ErrInvalidName:
		utils.RespondWithError(c, http.StatusBadRequest, "Name cannot be empty")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Ledger error")
	}
}
