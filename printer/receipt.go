// Package printer renders ticket text and pushes it to the ESC/POS receipt
// printer. Rendering and the device are separate so a sale commit never
// depends on the hardware being alive.
package printer

import (
	"fmt"
	"os"
	"strings"
	"time"

	"mariscos-pos/ledger"
	"mariscos-pos/models"
	"mariscos-pos/services"
)

// BusinessInfo is the header and footer printed on every ticket.
type BusinessInfo struct {
	Name    string
	Address string
	Phone   string
	Footer  string
}

// LoadBusinessInfo reads the ticket identity from the environment, with the
// same fallbacks an unconfigured install had in the registers before.
func LoadBusinessInfo() BusinessInfo {
	return BusinessInfo{
		Name:    envOr("POS_BUSINESS_NAME", "Mi Negocio"),
		Address: envOr("POS_BUSINESS_ADDRESS", "Dirección no configurada"),
		Phone:   envOr("POS_BUSINESS_PHONE", "Teléfono no configurado"),
		Footer:  envOr("POS_BUSINESS_FOOTER", "¡Gracias por su preferencia!"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// RenderOrder formats the pre-payment account handed to the customer.
func RenderOrder(info BusinessInfo, order ledger.Snapshot, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", info.Name)
	b.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&b, "Mesa: %s\n", order.Label)
	fmt.Fprintf(&b, "Fecha: %s\n", now.Format("02/01/2006 03:04 PM"))
	writeLineHeader(&b)

	for _, li := range order.Lines {
		writeTicketLine(&b, li.Quantity, li.Name, li.UnitPrice)
	}

	b.WriteString(strings.Repeat("-", 30) + "\n")
	fmt.Fprintf(&b, "TOTAL: %23.2f\n", order.Total)
	return b.String()
}

// RenderReceipt formats the final ticket for a committed sale.
func RenderReceipt(info BusinessInfo, sale models.Sale) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\nTel: %s\n", info.Name, info.Address, info.Phone)
	b.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&b, "Ticket: %s   Mesa: %s\n", sale.Folio, sale.TableLabel)
	fmt.Fprintf(&b, "Fecha: %s\n", sale.SoldAt.Format("02/01/2006 03:04 PM"))
	writeLineHeader(&b)

	subtotal := 0.0
	for _, li := range sale.Lines {
		subtotal += float64(li.Quantity) * li.UnitPrice
		writeTicketLine(&b, li.Quantity, li.ProductName, li.UnitPrice)
	}

	b.WriteString(strings.Repeat("-", 30) + "\n")
	fmt.Fprintf(&b, "SUBTOTAL: %20.2f\n", subtotal)
	if sale.Discount > 0 {
		fmt.Fprintf(&b, "DESCUENTO: %19.2f\n", sale.Discount)
	}
	fmt.Fprintf(&b, "TOTAL: %23.2f\n", sale.Total)
	b.WriteString(strings.Repeat("=", 30) + "\n")
	fmt.Fprintf(&b, "Forma de Pago: %s\n", sale.PaymentMethod)

	if sale.PaymentMethod == models.PaymentCash {
		fmt.Fprintf(&b, "Pagado: $%.2f\n", sale.AmountTendered)
		fmt.Fprintf(&b, "Cambio: $%.2f\n", sale.AmountTendered-sale.Total)
	}

	fmt.Fprintf(&b, "\n%s\n", info.Footer)
	return b.String()
}

// RenderCutReport formats a day or historical cut summary.
func RenderCutReport(title string, s services.CutSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", title, strings.Repeat("=", 45))
	fmt.Fprintf(&b, "Total de Ventas (Tickets): %d\n\n", s.Count)
	fmt.Fprintf(&b, "Ingresos en Efectivo: $%10.2f\n", s.CashTotal)
	fmt.Fprintf(&b, "Ingresos con Tarjeta: $%10.2f\n", s.CardTotal)
	fmt.Fprintf(&b, "Total Descuentos:     $%10.2f\n", s.DiscountTotal)
	b.WriteString(strings.Repeat("-", 45) + "\n")
	fmt.Fprintf(&b, "VENTA TOTAL DEL DIA:  $%10.2f\n", s.Total)
	fmt.Fprintf(&b, "EFECTIVO EN CAJA:     $%10.2f\n", s.CashTotal)
	b.WriteString(strings.Repeat("=", 45) + "\n")
	return b.String()
}

// RenderProductReport formats the per-product sales breakdown.
func RenderProductReport(title string, rows []services.ProductBreakdownRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", title, strings.Repeat("=", 45))
	b.WriteString("Cant  Producto             Total\n")
	b.WriteString(strings.Repeat("-", 45) + "\n")

	if len(rows) == 0 {
		b.WriteString("No hay ventas registradas.\n")
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "%-4d  %-22s $%8.2f\n", r.TotalQuantity, shorten(r.ProductName, 22), r.TotalAmount)
	}

	b.WriteString(strings.Repeat("=", 45) + "\n")
	return b.String()
}

func writeLineHeader(b *strings.Builder) {
	b.WriteString(strings.Repeat("-", 30) + "\n")
	b.WriteString("Cant  Descripción        P.U.   Total\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
}

func writeTicketLine(b *strings.Builder, qty int, name string, unitPrice float64) {
	fmt.Fprintf(b, "%-4d %-20s %6.2f %7.2f\n",
		qty, shorten(name, 20), unitPrice, float64(qty)*unitPrice)
}

func shorten(name string, max int) string {
	r := []rune(name)
	if len(r) <= max {
		return name
	}
	return string(r[:max-2]) + ".."
}
