package components

import (
	"context"

	"github.com/a-h/templ"

	"storefront/internal/web/shell"
)

// Customer data is only reachable with an admin token, which lives in the
// browser, so these pages fetch it client side.

const customersScript = `(async function(){
var body=document.getElementById('customers');
var res=await fetch('/api/users?limit=100',{headers:{'Authorization':'Bearer '+(localStorage.getItem('token')||'')}});
if(!res.ok){body.closest('section').querySelector('[data-result]').textContent='Log in as an administrator to see customers.';return}
var page=await res.json();
(page.data||[]).forEach(function(u){
  var tr=document.createElement('tr');
  [u.id,u.username,u.email,u.phone_number,u.role].forEach(function(v){var td=document.createElement('td');td.textContent=v==null?'':v;tr.appendChild(td)});
  var td=document.createElement('td');
  var a=document.createElement('a');a.href='/customerupdate/'+u.id;a.textContent='Edit';td.appendChild(a);
  var b=document.createElement('button');b.type='button';b.textContent='Delete';
  b.dataset.api='/api/users/'+u.id;b.dataset.method='DELETE';b.dataset.confirm='Delete '+u.username+'?';
  td.appendChild(b);tr.appendChild(td);body.appendChild(tr);
});
})();`

const customerLoadScript = `(async function(){
var f=document.getElementById('customer-form');
var res=await fetch('/api/users/'+f.dataset.id,{headers:{'Authorization':'Bearer '+(localStorage.getItem('token')||'')}});
if(!res.ok){f.querySelector('[data-result]').textContent='Customer could not be loaded.';return}
var u=await res.json();
['username','email','phone_number','role'].forEach(function(k){if(f.elements[k]){f.elements[k].value=u[k]||''}});
})();`

func roleSelect(h *html) {
	h.raw(`<label>Role <select name="role"><option value="USER">Customer</option><option value="ADMIN">Administrator</option></select></label>`)
}

// Customers is the admin customer table.
func Customers() templ.Component {
	return component(func(_ context.Context, h *html) error {
		h.raw(`<section class="customers">`)
		heading(h, "Customers")
		h.raw(`<p><a class="button" href="/customercreate">Add customer</a></p>`)
		h.raw(`<table><thead><tr><th>ID</th><th>Username</th><th>Email</th><th>Phone</th><th>Role</th><th></th></tr></thead><tbody id="customers"></tbody></table>`)
		result(h)
		h.raw(`</section><script>`, customersScript, `</script>`)
		return nil
	})
}

// CustomerUpdate edits the customer named by the :id segment. Blank fields are left unchanged.
func CustomerUpdate() templ.Component {
	return component(func(ctx context.Context, h *html) error {
		id, err := parseID("customer id", shell.Param(ctx, "id"))
		if err != nil {
			return err
		}
		sid := idString(id)
		heading(h, "Edit customer")
		h.raw(`<form id="customer-form" class="stack" data-id="`, sid, `" data-api="/api/users/`, sid, `" data-method="PUT" data-redirect="/customer">`)
		input(h, "Username", "username", "text", "", false)
		input(h, "Email", "email", "email", "", false)
		input(h, "Phone number", "phone_number", "tel", "", false)
		input(h, "New password", "password", "password", "", false)
		roleSelect(h)
		h.raw(`<button type="submit">Save</button>`)
		result(h)
		h.raw(`</form><script>`, customerLoadScript, `</script>`)
		return nil
	})
}

// CustomerCreate adds a customer or administrator.
func CustomerCreate() templ.Component {
	return component(func(_ context.Context, h *html) error {
		heading(h, "Add customer")
		h.raw(`<form class="stack" data-api="/api/users" data-method="POST" data-redirect="/customer">`)
		input(h, "Username", "username", "text", "", true)
		input(h, "Email", "email", "email", "", true)
		input(h, "Phone number", "phone_number", "tel", "", false)
		input(h, "Password", "password", "password", "", true)
		roleSelect(h)
		h.raw(`<button type="submit">Create</button>`)
		result(h)
		h.raw(`</form>`)
		return nil
	})
}
