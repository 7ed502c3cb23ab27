// controllers/report.go
package controllers

import (
	"log"
	"net/http"
	"time"

	"mariscos-pos/printer"
	"mariscos-pos/services"
	"mariscos-pos/utils"

	"github.com/gin-gonic/gin"
)

// ReportController serves the cash-cut screen: the live day report, the
// history of closed cuts and the close action itself.
type ReportController struct {
	Cuts    *services.CashCutService
	Tickets *printer.TicketPrinter
	Info    printer.BusinessInfo
}

func NewReportController(cuts *services.CashCutService, tickets *printer.TicketPrinter, info printer.BusinessInfo) *ReportController {
	return &ReportController{Cuts: cuts, Tickets: tickets, Info: info}
}

// CurrentSummary returns today's uncut sales totals
func (rc *ReportController) CurrentSummary(c *gin.Context) {
	summary, err := rc.Cuts.SummarizeCurrent(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// ListCuts returns historical cut labels, newest first
func (rc *ReportController) ListCuts(c *gin.Context) {
	labels, err := rc.Cuts.ListCuts()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to list cuts")
		return
	}

	c.JSON(http.StatusOK, labels)
}

// CutSummary returns the totals of one closed cut
func (rc *ReportController) CutSummary(c *gin.Context) {
	label := c.Param("label")
	summary, err := rc.Cuts.SummarizeCut(label)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}
	if summary.Count == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No cut with that label")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CurrentProducts returns today's per-product breakdown
func (rc *ReportController) CurrentProducts(c *gin.Context) {
	rows, err := rc.Cuts.ProductBreakdownCurrent(time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, rows)
}

// CutProducts returns the per-product breakdown of one closed cut
func (rc *ReportController) CutProducts(c *gin.Context) {
	rows, err := rc.Cuts.ProductBreakdownCut(c.Param("label"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	c.JSON(http.StatusOK, rows)
}

type closeCutResponse struct {
	Label        string              `json:"label"`
	Summary      services.CutSummary `json:"summary"`
	PrintWarning string              `json:"printWarning,omitempty"`
}

// CloseCut labels today's uncut sales as a closed cut and prints the final
// report. The cut stands even if the printout fails; the report can be
// reprinted from history.
func (rc *ReportController) CloseCut(c *gin.Context) {
	now := time.Now()

	summary, err := rc.Cuts.SummarizeCurrent(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	label, err := rc.Cuts.CloseCut(now)
	if err != nil {
		if err == services.ErrNothingToClose {
			utils.RespondWithError(c, http.StatusConflict, "No sales to close today")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to close cut")
		}
		return
	}

	resp := closeCutResponse{Label: label, Summary: summary}
	title := "CORTE DE CAJA - " + now.Format("02/01/2006")
	if err := rc.Tickets.Print(printer.RenderCutReport(title, summary)); err != nil {
		log.Printf("Failed to print cut report %s: %v", label, err)
		resp.PrintWarning = "report could not be printed: " + err.Error()
	}

	c.JSON(http.StatusOK, resp)
}

// PrintCurrentProducts prints today's per-product breakdown
func (rc *ReportController) PrintCurrentProducts(c *gin.Context) {
	now := time.Now()
	rows, err := rc.Cuts.ProductBreakdownCurrent(now)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}

	title := "VENTAS POR PRODUCTO - " + now.Format("02/01/2006")
	if err := rc.Tickets.Print(printer.RenderProductReport(title, rows)); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Printer error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report sent to printer"})
}

// PrintCutProducts prints the per-product breakdown of a closed cut
func (rc *ReportController) PrintCutProducts(c *gin.Context) {
	label := c.Param("label")
	rows, err := rc.Cuts.ProductBreakdownCut(label)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}
	if len(rows) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No cut with that label")
		return
	}

	title := "VENTAS POR PRODUCTO - " + label
	if err := rc.Tickets.Print(printer.RenderProductReport(title, rows)); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Printer error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report sent to printer"})
}

// PrintCutReport reprints the summary of a closed cut
func (rc *ReportController) PrintCutReport(c *gin.Context) {
	label := c.Param("label")
	summary, err := rc.Cuts.SummarizeCut(label)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}
	if summary.Count == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "No cut with that label")
		return
	}

	title := "REPORTE HISTORICO - " + label
	if err := rc.Tickets.Print(printer.RenderCutReport(title, summary)); err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Printer error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Report sent to printer"})
}
