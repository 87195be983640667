package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"worklog/internal/invoice"
	"worklog/internal/store"
)

// WriteInvoicePDF renders one invoice document (payout invoice or
// share purchase notice) to path.
func WriteInvoicePDF(doc invoice.Document, cfg *store.Config, path string) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.Row(14, func() {
		m.Col(12, func() {
			m.Text(doc.Title, props.Text{
				Top:   3,
				Style: consts.Bold,
				Align: consts.Center,
				Size:  18,
			})
		})
	})

	label := "Invoice Number"
	if doc.Kind == invoice.KindShare {
		label = "Notice Number"
	}
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%s: %s", label, doc.Number), props.Text{Size: 10})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text("Date: "+doc.Date.Local().Format("02/01/2006"), props.Text{Size: 10})
		})
	})

	m.Row(6, func() {
		m.Col(12, func() {
			m.Text("From:", props.Text{Size: 10, Style: consts.Bold})
		})
	})
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(cfg.PersonalName, props.Text{Size: 10})
		})
	})
	for _, line := range strings.Split(cfg.PersonalAddress, "\n") {
		line := line
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text(line, props.Text{Size: 10})
			})
		})
	}

	m.Row(6, func() {
		m.Col(12, func() {
			m.Text("To:", props.Text{Size: 10, Style: consts.Bold})
		})
	})
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(cfg.CompanyName, props.Text{Size: 10})
		})
	})
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text(cfg.CompanyAddress, props.Text{Size: 10})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text("ABN: "+cfg.CompanyABN, props.Text{Size: 10})
		})
	})

	m.Row(8, func() {
		m.Col(12, func() {
			period := fmt.Sprintf("Period: %s - %s",
				doc.PeriodStart.Local().Format("02/01/2006"),
				doc.PeriodEnd.Local().Format("02/01/2006"))
			m.Text(period, props.Text{Size: 10, Style: consts.Bold})
		})
	})

	headers := []string{"Description", "Hours", "Rate", "Amount"}
	rows := [][]string{{
		doc.Description,
		fmt.Sprintf("%.1f", doc.Hours),
		invoice.FormatCurrency(doc.Rate),
		invoice.FormatCurrency(doc.Amount),
	}}

	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{6, 2, 2, 2},
		},
		ContentProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{6, 2, 2, 2},
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	totalLabel := "Total"
	if doc.Kind == invoice.KindShare {
		totalLabel = "Total Value"
	}
	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("%s: %s", totalLabel, invoice.FormatCurrency(doc.Amount)), props.Text{
				Top:   2,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  11,
			})
		})
	})

	if doc.Kind == invoice.KindPayout {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Payment Details:", props.Text{Size: 10, Style: consts.Bold, Top: 3})
			})
		})
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text("Bank: "+cfg.BankName, props.Text{Size: 10})
			})
		})
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text("BSB: "+cfg.BankBSB, props.Text{Size: 10})
			})
		})
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text("Account: "+cfg.BankAccount, props.Text{Size: 10})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Payment Terms: Payment due within 30 days", props.Text{Size: 10, Top: 3})
			})
		})
	} else {
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text("Notice:", props.Text{Size: 10, Style: consts.Bold, Top: 3})
			})
		})
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text("These hours will be converted to company share options", props.Text{Size: 10})
			})
		})
		m.Row(6, func() {
			m.Col(12, func() {
				m.Text("as per the agreed compensation structure.", props.Text{Size: 10})
			})
		})
	}

	return m.OutputFileAndClose(path)
}

// WriteInvoicePDFs renders every document of an invoice into dir and
// returns the written file paths.
func WriteInvoicePDFs(inv *store.Invoice, cfg *store.Config, dir string) ([]string, error) {
	var paths []string
	for _, doc := range invoice.Documents(inv) {
		path := filepath.Join(dir, doc.FileName)
		if err := WriteInvoicePDF(doc, cfg, path); err != nil {
			return nil, fmt.Errorf("write %s: %w", doc.FileName, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
