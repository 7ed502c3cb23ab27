// controllers/sale.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"mariscos-pos/ledger"
	"mariscos-pos/printer"
	"mariscos-pos/services"
	"mariscos-pos/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaleController handles payment and the read-only sale history.
type SaleController struct {
	Ledger  *ledger.Ledger
	Sales   *services.SalesService
	Tickets *printer.TicketPrinter
	Info    printer.BusinessInfo
}

func NewSaleController(l *ledger.Ledger, sales *services.SalesService, tickets *printer.TicketPrinter, info printer.BusinessInfo) *SaleController {
	return &SaleController{Ledger: l, Sales: sales, Tickets: tickets, Info: info}
}

// PayInput defines the expected JSON structure for settling a table
type PayInput struct {
	PaymentMethod  string  `json:"paymentMethod" binding:"required,oneof=Cash Card"`
	Discount       float64 `json:"discount" binding:"min=0"`
	AmountTendered float64 `json:"amountTendered" binding:"min=0"`
}

type payResponse struct {
	services.PaymentResult
	PrintWarning string `json:"printWarning,omitempty"`
}

// Pay commits the table's open order as a sale, frees the table and sends
// the receipt to the printer. The print is fire-and-forget: its failure is a
// warning on the response, never a rollback.
func (sc *SaleController) Pay(c *gin.Context) {
	key := c.Param("key")

	var input PayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, ok := sc.Ledger.Get(key)
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "No open order for that table")
		return
	}

	result, err := sc.Sales.Commit(order, input.PaymentMethod, input.Discount, input.AmountTendered)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrEmptyOrder):
		utils.RespondWithError(c, http.StatusBadRequest, "The ticket is empty")
		return
	case errors.Is(err, services.ErrInsufficientPayment):
		utils.RespondWithError(c, http.StatusBadRequest, "Amount tendered is less than the total")
		return
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidPaymentMethod):
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment input")
		return
	default:
		// Nothing was written; the ledger still holds the order, so the
		// cashier can retry.
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save sale")
		return
	}

	sc.Ledger.Remove(key)

	resp := payResponse{PaymentResult: result}
	if warn := sc.printReceipt(result.SaleID); warn != "" {
		resp.PrintWarning = warn
	}

	c.JSON(http.StatusCreated, resp)
}

func (sc *SaleController) printReceipt(saleID uint) string {
	sale, err := sc.Sales.GetSale(saleID)
	if err != nil {
		log.Printf("Failed to load sale %d for printing: %v", saleID, err)
		return "receipt could not be printed"
	}
	if err := sc.Tickets.Print(printer.RenderReceipt(sc.Info, sale)); err != nil {
		log.Printf("Failed to print receipt for sale %d: %v", saleID, err)
		return "receipt could not be printed: " + err.Error()
	}
	return ""
}

// ListSales returns sale history, newest first. ?limit caps the result.
func (sc *SaleController) ListSales(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	sales, err := sc.Sales.ListSales(limit)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve sales")
		return
	}

	c.JSON(http.StatusOK, sales)
}

// GetSale retrieves one committed sale with its lines
func (sc *SaleController) GetSale(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	sale, err := sc.Sales.GetSale(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sale not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, sale)
}

// PrintSale reprints the receipt of a committed sale
func (sc *SaleController) PrintSale(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid sale ID")
		return
	}

	sale, err := sc.Sales.GetSale(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Sale not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := sc.Tickets.Print(printer.RenderReceipt(sc.Info, sale)); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Printer error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Receipt sent to printer"})
}

// PrintOrder prints the pre-payment account for an occupied table
func (sc *SaleController) PrintOrder(c *gin.Context) {
	order, ok := sc.Ledger.Get(c.Param("key"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "No open order for that table")
		return
	}
	if len(order.Lines) == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "The ticket is empty")
		return
	}

	if err := sc.Tickets.Print(printer.RenderOrder(sc.Info, order, time.Now())); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Printer error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account sent to printer"})
}
