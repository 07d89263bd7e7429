package components

import (
	log "github.com/sirupsen/logrus"

	"storefront/internal/logging"
	"storefront/internal/service"
	"storefront/internal/web/lazy"
	"storefront/internal/web/shell"
)

// Deps are the services page components read from.
type Deps struct {
	SiteName      string
	Products      service.ProductService
	Categories    service.CategoryService
	Subcategories service.SubcategoryService
	Invoices      service.InvoiceService
	Banners       BannerSource
	Logger        log.FieldLogger
}

// NewCatalog builds every page component. Load metrics go to reg, which may be nil.
func NewCatalog(d Deps, reg *lazy.Registry) *shell.Catalog {
	if d.SiteName == "" {
		d.SiteName = "Storefront"
	}
	d.Logger = logging.OrDiscard(d.Logger).WithField("component", "pages")

	return &shell.Catalog{
		StoreNav: StoreNav(d.SiteName),
		AdminNav: AdminNav(d.SiteName),

		Pics:     reg.New("Pics", ready(Pics(d.Banners, d.Logger))),
		Carousel: reg.New("Carousel", ready(Carousel(d.Categories, d.Subcategories))),
		Top:      reg.New("Top", ready(Top(d.Products))),
		Top2:     reg.New("Top2", ready(Top2(d.Products))),
		Top3:     reg.New("Top3", ready(Top3(d.Products))),

		ProductsPage: reg.New("ProductsPage", ready(ProductsPage(d.Products, d.Subcategories))),
		Login:        reg.New("Login", ready(Login())),
		Register:     reg.New("Register", ready(Register(d.SiteName))),
		ProductItem:  reg.New("ProductItem", ready(ProductItem(d.Products))),

		AdminDashboard:   reg.New("AdminDashboard", ready(AdminDashboard(d.Products, d.Categories))),
		UploadProduct:    reg.New("UploadProduct", ready(UploadProduct(d.Products))),
		ProductUpload:    reg.New("ProductUpload", ready(ProductUpload(d.Subcategories))),
		UpdateProduct:    reg.New("UpdateProduct", ready(UpdateProduct(d.Products, d.Subcategories))),
		Customers:        reg.New("Customers", ready(Customers())),
		CustomerUpdate:   reg.New("CustomerUpdate", ready(CustomerUpdate())),
		CustomerCreate:   reg.New("CustomerCreate", ready(CustomerCreate())),
		AdminCategory:    reg.New("AdminCategory", ready(AdminCategory(d.Categories))),
		AddCategory:      reg.New("AddCategory", ready(AddCategory())),
		UpdateCategory:   reg.New("UpdateCategory", ready(UpdateCategory(d.Categories))),
		AddSubCategory:   reg.New("AddSubCategory", ready(AddSubCategory(d.Categories))),
		EditSubCategory:  reg.New("EditSubCategory", ready(EditSubCategory(d.Subcategories, d.Categories))),
		AdminSubCategory: reg.New("AdminSubCategory", ready(AdminSubCategory(d.Subcategories))),
		CartInvoice:      reg.New("CartInvoice", ready(CartInvoice(d.Invoices))),
	}
}
