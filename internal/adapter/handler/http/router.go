package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/toppingfrozen/ordertrack/internal/adapter/config"
	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/port"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	conf *config.HTTP,
	tokenService port.TokenService,
	userHandler *UserHandler,
	orderHandler *OrderHandler,
	receiptHandler *ReceiptHandler) (*Router, error) {

	router := gin.New()
	router.Use(gin.Recovery())

	// Swagger
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
			auth.POST("/register", authCheck(tokenService),
				roleCheck(domain.RoleAdmin), userHandler.Register)
			auth.GET("/me", authCheck(tokenService), userHandler.Me)
		}

		users := api.Group("/users", authCheck(tokenService))
		{
			users.GET("", roleCheck(domain.RoleAdmin), userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", roleCheck(domain.RoleAdmin), userHandler.DeleteUser)
			users.POST("/:id/change-password", userHandler.ChangePassword)
		}

		orders := api.Group("/orders", authCheck(tokenService))
		{
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/statistics", orderHandler.OrderStatistics)
			orders.GET("/status/:status", orderHandler.ListOrdersByStatus)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("",
				roleCheck(domain.RoleAdmin, domain.RoleBilling), orderHandler.CreateOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.DELETE("/:id", roleCheck(domain.RoleAdmin), orderHandler.DeleteOrder)

			orders.POST("/:id/verify-payment",
				roleCheck(domain.RoleAdmin, domain.RoleWallet), orderHandler.VerifyPayment)
			orders.POST("/:id/assign",
				roleCheck(domain.RoleAdmin, domain.RoleLogistics), orderHandler.AssignLogistics)
			orders.POST("/:id/deliver",
				roleCheck(domain.RoleAdmin, domain.RoleCourier), orderHandler.Deliver)

			orders.GET("/cash-summary",
				roleCheck(domain.RoleAdmin, domain.RoleWallet), orderHandler.CashSummary)
			orders.GET("/cash-summary/:courier",
				roleCheck(domain.RoleAdmin, domain.RoleWallet), orderHandler.OutstandingOrders)
		}

		receipts := api.Group("/money-receipts", authCheck(tokenService))
		{
			receipts.POST("",
				roleCheck(domain.RoleAdmin, domain.RoleWallet), receiptHandler.CreateReceipt)
			receipts.GET("", receiptHandler.ListReceipts)
			receipts.GET("/today", receiptHandler.ListReceiptsToday)
			receipts.GET("/statistics", receiptHandler.ReceiptStatistics)
			receipts.GET("/date-range", receiptHandler.ListReceiptsByDateRange)
			receipts.GET("/messenger/:name", receiptHandler.ListReceiptsByCourier)
			receipts.GET("/photo/:filename", receiptHandler.ReceiptPhoto)
			receipts.GET("/:id", receiptHandler.GetReceipt)
			receipts.DELETE("/:id", roleCheck(domain.RoleAdmin), receiptHandler.DeleteReceipt)
		}
	}

	return &Router{router}, nil
}

// Serve starts the HTTP server
func (r *Router) Serve(listenAddr string) error {
	return r.Run(listenAddr)
}
