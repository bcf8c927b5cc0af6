// Package handlers
package handlers

import (
	"fmt"

	"github.com/abiiranathan/rex"

	"github.com/abiiranathan/go-format-lint/composite"
)

// Breadcrumb represents a navigation breadcrumb
type Breadcrumb struct {
	Label  string
	URL    string
	IsLast bool
}

// Breadcrumbs is a slice of Breadcrumb
type Breadcrumbs []Breadcrumb

// Visit represents a patient visit
type Visit struct {
	ID        uint
	PatientID uint
	Patient   Patient
	Doctor    Doctor
}

// Patient represents a patient
type Patient struct {
	Name string // Patient Full name
	ID   uint   // Patient ID
}

// Doctor represents a doctor
type Doctor struct {
	DisplayName string
	ID          uint
}

// Drug represents a drug
type Drug struct {
	Name     string // Drug Name
	Quantity int
	Price    float64
}

// FormatItem renders the drug for composite format items: "{0:N}" gives the
// name, anything else the name and quantity.
func (d Drug) FormatItem(spec string) string {
	if spec == "N" {
		return d.Name
	}
	return fmt.Sprintf("%s x%d", d.Name, d.Quantity)
}

// Handler holds service dependencies
type Handler struct{}

const (
	chartTitle = "{0} Treatment Chart"
	// Row layout of the billed drugs table.
	drugRow = "{0,-24}|{1,6}|{2,10:N2}"
)

// RenderTreatmentChart renders the treatment chart
func (h *Handler) RenderTreatmentChart(inpatient bool) rex.HandlerFunc {
	return func(c *rex.Context) error {
		visitID := c.ParamUint("visit_id")
		visit := &Visit{ID: visitID}

		var billedDrugs []Drug

		pathPrefix := "/inpatient"
		label := "Inpatient"
		if !inpatient {
			pathPrefix = "/outpatient"
			label = "OPD"
		}

		rows := make([]string, 0, len(billedDrugs))
		for _, d := range billedDrugs {
			rows = append(rows, composite.MustFormat(drugRow, d, d.Quantity, d.Price))
		}

		// formatlint: index 1 is skipped.
		subtitle, err := composite.Format("Visit {0} for {2}", visit.ID, visit.Patient.Name, visit.Doctor.DisplayName)
		if err != nil {
			return err
		}

		// formatlint: one item but two values are passed.
		total := composite.MustFormat("Total: {0:N2}", sum(billedDrugs), len(billedDrugs))

		c.Set("chartTitle", composite.MustFormat(chartTitle, label))

		return c.Render("views/inpatient/treatment-chart.html", rex.Map{
			"visit":       visit,
			"Title":       composite.MustFormat(chartTitle, label),
			"Subtitle":    subtitle,
			"PathPrefix":  pathPrefix,
			"billedDrugs": rows,
			"Total":       total,
			"doctor":      visit.Doctor.DisplayName,
			"breadcrumbs": Breadcrumbs{
				{Label: label, URL: pathPrefix},
				{Label: visit.Patient.Name, URL: composite.MustFormat("/patients/{0}", visit.PatientID)},
				{Label: composite.MustFormat("Treatment Chart"), IsLast: true},
			},
		})
	}
}

// RenderDashboard renders the dashboard
func (h *Handler) RenderDashboard(inpatient bool) rex.HandlerFunc {
	return func(c *rex.Context) error {
		visitID := c.ParamUint("visit_id")

		// formatlint: unclosed item, Format would fail at run time.
		heading, err := composite.Format("Visit #{0", visitID)
		if err != nil {
			heading = fmt.Sprintf("Visit #%d", visitID)
		}

		// formatlint: the array holds one value but two are referenced.
		counts := []any{visitID}
		summary := composite.MustFormat("{0} visits, {1} pending", []any{visitID}...)
		detail := composite.MustFormat("{0} visits, {1} pending", counts...) // size unknown, not checked

		// formatlint: the inpatient layout references a second value.
		layout := "Visit {0}"
		if inpatient {
			layout = "Visit {0} (ward {1})"
		}
		caption := composite.MustFormat(layout, visitID)

		return c.Render("views/dashboard.html", rex.Map{
			"visitID": visitID,
			"Heading": heading,
			"Summary": summary,
			"Detail":  detail,
			"Caption": caption,
		})
	}
}

func sum(drugs []Drug) float64 {
	var total float64
	for _, d := range drugs {
		total += d.Price * float64(d.Quantity)
	}
	return total
}
