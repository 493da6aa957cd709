package export

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// ReportRow is one printable line of a report export.
type ReportRow struct {
	ReportDate   time.Time
	EmployeeName string
	Summary      string
}

// ReportsPDF renders report rows into a PDF document and returns its bytes.
func ReportsPDF(title string, generatedAt time.Time, rows []ReportRow) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("Generated %s", generatedAt.Format("2006-01-02 15:04")), props.Text{
					Top:   3,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	headers := []string{"Date", "Employee", "Summary"}

	contents := [][]string{}
	for _, r := range rows {
		contents = append(contents, []string{
			r.ReportDate.Format("2006-01-02"),
			r.EmployeeName,
			r.Summary,
		})
	}

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text("Daily Reports", props.Text{
				Top:   5,
				Style: consts.Bold,
				Size:  14,
			})
		})
	})

	m.TableList(headers, contents, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{2, 3, 7},
		},
		ContentProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{2, 3, 7},
		},
		Align:                consts.Left,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total reports: %d", len(rows)), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
