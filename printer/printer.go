package printer

import (
	"errors"
	"fmt"
	"os"

	"github.com/kenshaw/escpos"
)

// ErrNotConfigured means no printer device is set. Callers report it as a
// warning; committed sales and closed cuts stand regardless.
var ErrNotConfigured = errors.New("no printer device configured")

// TicketPrinter drives an ESC/POS receipt printer through its character
// device (e.g. /dev/usb/lp0). An empty device path disables printing.
type TicketPrinter struct {
	device string
}

func NewTicketPrinter(device string) *TicketPrinter {
	return &TicketPrinter{device: device}
}

func (t *TicketPrinter) Enabled() bool {
	return t.device != ""
}

// Print sends one rendered ticket and cuts the paper.
func (t *TicketPrinter) Print(text string) error {
	if t.device == "" {
		return ErrNotConfigured
	}

	f, err := os.OpenFile(t.device, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open printer device %s: %w", t.device, err)
	}
	defer f.Close()

	p := escpos.New(f)
	p.Init()
	p.SetAlign("left")
	p.Write(text)
	p.FormfeedN(3)
	p.Cut()
	p.End()
	return nil
}
