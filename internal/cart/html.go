package cart

import (
	"fmt"
	"html/template"
	"io"
)

var drawerTemplate = template.Must(template.New("cart_drawer").Parse(`<div id="cartOverlay" class="fixed inset-0 bg-ink/40{{if not .PanelOpen}} hidden{{end}}" data-cart-dismiss></div>
<aside id="cartDrawer" class="fixed right-0 top-0 h-full w-full max-w-sm bg-paper p-4{{if not .PanelOpen}} hidden{{end}}" aria-hidden="{{if .PanelOpen}}false{{else}}true{{end}}">
  <div id="cartItems" class="space-y-2" data-cart-actions="/cart/actions">
{{- range .Rows}}
    <div class="flex items-center justify-between rounded-xl border border-line bg-white px-3 py-2" data-cart-row="{{.ID}}">
      <div>
        <div class="text-sm font-medium">{{.Name}}</div>
        <div class="text-xs text-ink/60">{{.PriceLabel}}</div>
      </div>
      <div class="flex gap-1">
{{- range .Controls}}
        <button type="button" class="btn js-{{.Action}}" data-cart-action="{{.Action}}" data-id="{{.ItemID}}" aria-label="{{.Label}}">{{.Glyph}}</button>
{{- end}}
      </div>
    </div>
{{- end}}
  </div>
  <p id="cartEmpty" class="text-sm text-ink/60{{if not .EmptyVisible}} hidden{{end}}">Your cart is empty</p>
  <div class="mt-4 flex justify-between">
    <span>Total</span>
    <span id="cartTotal">{{.TotalLabel}}</span>
  </div>
  <button type="button" id="cartClear" class="btn" data-cart-clear="/cart/clear">Clear</button>
</aside>
<span id="cartCount" class="badge{{if .BadgeHidden}} hidden{{end}}" hx-swap-oob="true">{{.CountLabel}}</span>
`))

// WriteHTML writes the drawer fragment for v.
func (r *Renderer) WriteHTML(w io.Writer, v View) error {
	if err := drawerTemplate.Execute(w, v); err != nil {
		return fmt.Errorf("render cart drawer: %w", err)
	}
	return nil
}
