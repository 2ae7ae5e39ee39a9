package main

// @title Product Inventory API
// @version 1.0
// @description Inventory management API: products with variants/sub-variants and stock tracked through purchase/sale transactions.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @host localhost:8080
// @BasePath /

// @tag.name Products
// @tag.description Product creation and paged listing

// @tag.name Stock
// @tag.description Stock purchase/sale movements and transaction history

// @tag.name Health
// @tag.description Service health
