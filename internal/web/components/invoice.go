package components

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"storefront/internal/service"
	"storefront/internal/web/cartctx"
)

// CartInvoice prices the session cart and offers checkout.
func CartInvoice(invoices service.InvoiceService) templ.Component {
	return component(func(ctx context.Context, h *html) error {
		inv := invoices.Preview(cartctx.FromContext(ctx))

		h.raw(`<section class="invoice">`)
		heading(h, "Invoice")
		if len(inv.Lines) == 0 {
			h.raw(`<p class="empty">The cart is empty.</p></section>`)
			return nil
		}
		h.raw(`<table><thead><tr><th>Product</th><th>Unit price</th><th>Qty</th><th>Total</th><th></th></tr></thead><tbody>`)
		for _, l := range inv.Lines {
			h.raw(`<tr><td><a href="/productitem?id=`, idString(l.ProductID), `">`, esc(l.Name), `</a></td>`)
			h.raw(`<td>`, money(l.UnitPrice), `</td><td>`, strconv.Itoa(l.Quantity), `</td><td>`, money(l.Total), `</td><td>`)
			h.raw(`<button type="button" data-api="/api/cart/items/`, idString(l.ProductID), `" data-method="DELETE">Remove</button>`)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody><tfoot>`)
		h.raw(`<tr><th colspan="3">Subtotal</th><td>`, money(inv.Subtotal), `</td><td></td></tr>`)
		h.printf(`<tr><th colspan="3">Tax (%s%%)</th><td>%s</td><td></td></tr>`,
			strconv.FormatFloat(inv.TaxPercent, 'f', -1, 64), money(inv.Tax))
		h.raw(`<tr><th colspan="3">Total</th><td class="total">`, money(inv.Total), `</td><td></td></tr>`)
		h.raw(`</tfoot></table>`)
		h.raw(`<p><button type="button" data-api="/api/cart/checkout" data-method="POST" data-confirm="Place this order?">Checkout</button> `)
		h.raw(`<button type="button" data-api="/api/cart" data-method="DELETE">Clear cart</button></p>`)
		result(h)
		h.raw(`</section>`)
		return nil
	})
}
