package cart

import (
	"html"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
)

// View is everything the drawer shows for one State.
type View struct {
	Rows         []Row   `json:"rows"`
	Total        float64 `json:"total"`
	Count        int     `json:"count"`
	TotalLabel   string  `json:"total_label"`
	CountLabel   string  `json:"count_label"`
	EmptyVisible bool    `json:"empty_visible"`
	BadgeHidden  bool    `json:"badge_hidden"`
	PanelOpen    bool    `json:"panel_open"`
}

// Row is one rendered line item.
type Row struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	PriceLabel string    `json:"price_label"`
	Qty        int       `json:"qty"`
	Controls   []Control `json:"controls"`
}

// Renderer projects cart state into views and HTML fragments. It keeps no cart data.
type Renderer struct {
	format Formatter
	policy *bluemonday.Policy
}

func NewRenderer(f Formatter) *Renderer {
	return &Renderer{format: f, policy: bluemonday.StrictPolicy()}
}

// Render builds a fresh View from st. Equal states give equal views.
func (r *Renderer) Render(st State) View {
	rows := make([]Row, 0, len(st.Items))
	for _, it := range st.Items {
		rows = append(rows, Row{
			ID:         it.ID,
			Name:       r.plainText(it.Name),
			PriceLabel: r.format.UnitLine(it.Price, it.Qty),
			Qty:        it.Qty,
			Controls:   rowControls(it.ID),
		})
	}

	return View{
		Rows:         rows,
		Total:        st.Total,
		Count:        st.Count,
		TotalLabel:   r.format.Amount(st.Total),
		CountLabel:   strconv.Itoa(st.Count),
		EmptyVisible: st.Count == 0,
		BadgeHidden:  st.Count == 0,
	}
}

// plainText strips markup from names; the template escapes what is left.
func (r *Renderer) plainText(s string) string {
	return html.UnescapeString(r.policy.Sanitize(s))
}
