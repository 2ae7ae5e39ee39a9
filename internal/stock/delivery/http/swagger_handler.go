package http

// AddStock godoc
// @Summary Add stock (purchase)
// @Description Increase a sub-variant's stock, recompute the product total and record a PURCHASE transaction
// @Tags Stock
// @Accept json
// @Produce json
// @Param request body object{product_id=string,sub_variant_id=string,quantity=number,notes=string} true "Stock movement"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string,errors=object}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/stock/purchase [post]
func (h *StockHandler) AddStockDoc() {}

// RemoveStock godoc
// @Summary Remove stock (sale)
// @Description Decrease a sub-variant's stock if enough is available, recompute the product total and record a SALE transaction
// @Tags Stock
// @Accept json
// @Produce json
// @Param request body object{product_id=string,sub_variant_id=string,quantity=number,notes=string} true "Stock movement"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,message=string,errors=object}
// @Failure 404 {object} object{success=bool,message=string}
// @Router /api/stock/sale [post]
func (h *StockHandler) RemoveStockDoc() {}

// ListTransactions godoc
// @Summary List stock transactions
// @Description Paged stock transaction history, newest first
// @Tags Stock
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (1-100)"
// @Param productId query string false "Filter by product id"
// @Success 200 {object} object{success=bool,data=object{items=array,total_count=int,page=int,page_size=int,total_pages=int}}
// @Router /api/stock/transactions [get]
func (h *StockHandler) ListTransactionsDoc() {}
