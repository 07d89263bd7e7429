package shell

import (
	"github.com/a-h/templ"

	"storefront/internal/web/lazy"
)

// Chrome is the navigation frame a route renders in.
type Chrome int

const (
	// ChromeNone renders the page bare.
	ChromeNone Chrome = iota
	// ChromeStore puts the storefront navbar above the page.
	ChromeStore
	// ChromeAdmin renders the page beside the admin sidebar.
	ChromeAdmin
)

// Route maps a URL path to the components rendered for it.
type Route struct {
	Name   string
	Path   string
	Title  string
	Chrome Chrome
	// Components render in order.
	Components []*lazy.Component
	// Children, when set, are handed to Components as templ children.
	Children []*lazy.Component
}

func (r Route) lazyComponents() []*lazy.Component {
	all := make([]*lazy.Component, 0, len(r.Components)+len(r.Children))
	all = append(all, r.Components...)
	return append(all, r.Children...)
}

// Catalog holds the page components the route table is built from.
type Catalog struct {
	StoreNav templ.Component
	AdminNav templ.Component

	Pics     *lazy.Component
	Carousel *lazy.Component
	Top      *lazy.Component
	Top2     *lazy.Component
	Top3     *lazy.Component

	ProductsPage *lazy.Component
	Login        *lazy.Component
	Register     *lazy.Component
	ProductItem  *lazy.Component

	AdminDashboard   *lazy.Component
	UploadProduct    *lazy.Component
	ProductUpload    *lazy.Component
	UpdateProduct    *lazy.Component
	Customers        *lazy.Component
	CustomerUpdate   *lazy.Component
	CustomerCreate   *lazy.Component
	AdminCategory    *lazy.Component
	AddCategory      *lazy.Component
	UpdateCategory   *lazy.Component
	AddSubCategory   *lazy.Component
	EditSubCategory  *lazy.Component
	AdminSubCategory *lazy.Component
	CartInvoice      *lazy.Component
}

// Routes returns the page route table.
func Routes(cat *Catalog) []Route {
	home := []*lazy.Component{cat.Pics, cat.Carousel, cat.Top, cat.Top2, cat.Top3}
	one := func(c *lazy.Component) []*lazy.Component { return []*lazy.Component{c} }

	return []Route{
		{Name: "home", Path: "/", Title: "Home", Chrome: ChromeStore, Components: home},
		{Name: "products", Path: "/products/:id", Title: "Products", Chrome: ChromeStore, Components: one(cat.ProductsPage)},
		{Name: "login", Path: "/login", Title: "Log in", Chrome: ChromeStore, Components: one(cat.Login)},
		{Name: "register", Path: "/register", Title: "Register", Chrome: ChromeNone, Components: one(cat.Register)},
		{Name: "productitem", Path: "/productitem", Title: "Product", Chrome: ChromeStore, Components: one(cat.ProductItem)},
		{Name: "admin_dashboard", Path: "/adminDashboard", Title: "Dashboard", Chrome: ChromeAdmin, Components: one(cat.AdminDashboard), Children: home},
		{Name: "upload", Path: "/upload", Title: "Products", Chrome: ChromeAdmin, Components: one(cat.UploadProduct)},
		{Name: "productupload", Path: "/productupload", Title: "New product", Chrome: ChromeAdmin, Components: one(cat.ProductUpload)},
		{Name: "updateproduct", Path: "/updateproduct/:productId", Title: "Edit product", Chrome: ChromeAdmin, Components: one(cat.UpdateProduct)},
		{Name: "customer", Path: "/customer", Title: "Customers", Chrome: ChromeAdmin, Components: one(cat.Customers)},
		{Name: "customerupdate", Path: "/customerupdate/:id", Title: "Edit customer", Chrome: ChromeAdmin, Components: one(cat.CustomerUpdate)},
		{Name: "customercreate", Path: "/customercreate", Title: "New customer", Chrome: ChromeAdmin, Components: one(cat.CustomerCreate)},
		{Name: "admin_categories", Path: "/admin-categories", Title: "Categories", Chrome: ChromeAdmin, Components: one(cat.AdminCategory)},
		{Name: "add_category", Path: "/add-category", Title: "New category", Chrome: ChromeAdmin, Components: one(cat.AddCategory)},
		{Name: "update_category", Path: "/update-category/:id", Title: "Edit category", Chrome: ChromeAdmin, Components: one(cat.UpdateCategory)},
		{Name: "add_subcategory", Path: "/add-subcategory", Title: "New subcategory", Chrome: ChromeAdmin, Components: one(cat.AddSubCategory)},
		{Name: "edit_subcategory", Path: "/edit-subcategory/:id", Title: "Edit subcategory", Chrome: ChromeAdmin, Components: one(cat.EditSubCategory)},
		{Name: "admin_subcategories", Path: "/adminsubcategory", Title: "Subcategories", Chrome: ChromeAdmin, Components: one(cat.AdminSubCategory)},
		{Name: "cartinvoice", Path: "/cartinvoice", Title: "Invoice", Chrome: ChromeAdmin, Components: one(cat.CartInvoice)},
	}
}
