// controllers/table.go
package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"mariscos-pos/ledger"
	"mariscos-pos/utils"

	"github.com/gin-gonic/gin"
)

const (
	// TableCount is the number of physical tables on the floor.
	TableCount = 14
	// TakeoutKey is the extra tab for orders without a table.
	TakeoutKey = "takeout"
)

func knownTableKey(key string) bool {
	if key == TakeoutKey {
		return true
	}
	n, err := strconv.Atoi(key)
	// Atoi accepts "07" and "+7"; only the canonical form may name a table,
	// or the same physical table would split into distinct ledger keys.
	return err == nil && n >= 1 && n <= TableCount && strconv.Itoa(n) == key
}

func tableLabel(key string) string {
	if key == TakeoutKey {
		return "Para llevar"
	}
	return "Mesa " + key
}

// TableController exposes the floor view: occupancy and table lifecycle over
// the open-order ledger.
type TableController struct {
	Ledger *ledger.Ledger
}

func NewTableController(l *ledger.Ledger) *TableController {
	return &TableController{Ledger: l}
}

type tableStatus struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Occupied bool   `json:"occupied"`
}

// ListTables returns every table with its occupancy state
func (tc *TableController) ListTables(c *gin.Context) {
	tables := make([]tableStatus, 0, TableCount+1)
	for i := 1; i <= TableCount; i++ {
		key := fmt.Sprintf("%d", i)
		tables = append(tables, tableStatus{
			Key:      key,
			Label:    tableLabel(key),
			Occupied: tc.Ledger.Occupied(key),
		})
	}
	tables = append(tables, tableStatus{
		Key:      TakeoutKey,
		Label:    tableLabel(TakeoutKey),
		Occupied: tc.Ledger.Occupied(TakeoutKey),
	})

	c.JSON(http.StatusOK, tables)
}

// OpenTable marks a table occupied and returns its order. Opening an already
// occupied table returns the existing order unchanged.
func (tc *TableController) OpenTable(c *gin.Context) {
	key := c.Param("key")
	if !knownTableKey(key) {
		utils.RespondWithError(c, http.StatusNotFound, "Unknown table")
		return
	}

	c.JSON(http.StatusOK, tc.Ledger.Open(key, tableLabel(key)))
}

// GetOrder returns the current ticket for an occupied table
func (tc *TableController) GetOrder(c *gin.Context) {
	snap, ok := tc.Ledger.Get(c.Param("key"))
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "No open order for that table")
		return
	}

	c.JSON(http.StatusOK, snap)
}

// CloseTable frees a table, but only when its ticket is empty
func (tc *TableController) CloseTable(c *gin.Context) {
	switch err := tc.Ledger.CloseIfEmpty(c.Param("key")); err {
	case nil:
		c.JSON(http.StatusOK, gin.H{"message": "Table released"})
	case ledger.ErrNoOpenOrder:
		utils.RespondWithError(c, http.StatusNotFound, "No open order for that table")
	case ledger.ErrTableOccupied:
		utils.RespondWithError(c, http.StatusConflict, "Table has products on its ticket; remove them first")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to close table")
	}
}

// TransferTableInput defines the expected JSON structure for a transfer
type TransferTableInput struct {
	Destination string `json:"destination" binding:"required"`
}

// TransferTable moves an open order to a free table
func (tc *TableController) TransferTable(c *gin.Context) {
	var input TransferTableInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !knownTableKey(input.Destination) {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown destination table")
		return
	}

	switch err := tc.Ledger.Transfer(c.Param("key"), input.Destination, tableLabel(input.Destination)); err {
	case nil:
		snap, _ := tc.Ledger.Get(input.Destination)
		c.JSON(http.StatusOK, snap)
	case ledger.ErrNoOpenOrder:
		utils.RespondWithError(c, http.StatusNotFound, "No open order for that table")
	case ledger.ErrTableOccupied:
		utils.RespondWithError(c, http.StatusConflict, "Destination table is occupied")
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to transfer order")
	}
}
