package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a product with variants and sub-variants; every option becomes a sub-variant with a derived SKU and zero stock
// @Tags Products
// @Accept json
// @Produce json
// @Param request body object{name=string,hsn_code=string,product_code=string,created_user=string,is_favourite=bool,variants=array} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object{id=string}}
// @Failure 400 {object} object{success=bool,message=string,errors=object}
// @Failure 409 {object} object{success=bool,message=string}
// @Router /api/products [post]
func (h *ProductHandler) CreateProductDoc() {}

// ListProducts godoc
// @Summary List products
// @Description Paged product listing with full variant/sub-variant trees, newest first
// @Tags Products
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (1-100)"
// @Param active query bool false "Active filter"
// @Success 200 {object} object{success=bool,data=object{items=array,total_count=int,page=int,page_size=int,total_pages=int}}
// @Router /api/products [get]
func (h *ProductHandler) ListProductsDoc() {}
