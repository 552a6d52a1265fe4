// Package main 是应用程序入口
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/config"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/jwt"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/metrics"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/qrcode"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/common/tenant"
	adminHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/admin"
	authHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/auth"
	commentHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/comment"
	listingHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/listing"
	orderHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/order"
	paymentHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/payment"
	uploadHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/upload"
	userHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/user"
	vendorHandler "github.com/HanSo1o-a/cimplico-marketplace/internal/handler/vendor"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/middleware"
	"github.com/HanSo1o-a/cimplico-marketplace/internal/repository"
	adminService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/admin"
	authService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/auth"
	commentService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/comment"
	listingService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/listing"
	orderService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/order"
	paymentService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/payment"
	uploadService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/upload"
	userService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/user"
	vendorService "github.com/HanSo1o-a/cimplico-marketplace/internal/service/vendor"
	"github.com/HanSo1o-a/cimplico-marketplace/pkg/oss"
)

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) {
	// 创建 JWT 管理器
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:            cfg.JWT.Secret,
		AccessExpireTime:  cfg.JWT.AccessTokenDuration(),
		RefreshExpireTime: cfg.JWT.RefreshTokenDuration(),
		Issuer:            cfg.JWT.Issuer,
	})

	// 初始化仓储
	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	listingRepo := repository.NewListingRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// 初始化对象存储客户端
	var uploader oss.Uploader
	if cfg.OSS.Provider == "aliyun" {
		aliyunUploader, err := oss.NewAliyunUploader(&oss.AliyunConfig{
			Endpoint:        cfg.OSS.Endpoint,
			AccessKeyID:     cfg.OSS.AccessKeyID,
			AccessKeySecret: cfg.OSS.AccessKeySecret,
			BucketName:      cfg.OSS.Bucket,
			Domain:          cfg.OSS.CustomDomain,
			BasePath:        cfg.OSS.UploadDir,
		})
		if err != nil {
			logger.Fatal("Failed to init OSS uploader", zap.Error(err))
		}
		uploader = aliyunUploader
	} else {
		// 开发环境使用 Mock，生产环境使用阿里云
		uploader = oss.NewMockUploader()
	}

	// 初始化服务
	authSvc := authService.NewAuthService(db, userRepo, jwtManager, cfg.Crypto.BcryptCost)
	userSvc := userService.NewUserService(db, userRepo, cfg.Crypto.BcryptCost)
	vendorSvc := vendorService.NewVendorService(db, vendorRepo, userRepo)
	listingSvc := listingService.NewListingService(db, listingRepo, vendorRepo, commentRepo)
	categorySvc := listingService.NewCategoryService(categoryRepo)
	orderSvc := orderService.NewOrderService(db, orderRepo, listingRepo, vendorRepo)
	paymentSvc := paymentService.NewPaymentService(db, paymentRepo, orderRepo, qrcode.NewGenerator(), cfg.Payment.QRCodeBaseURL)
	commentSvc := commentService.NewCommentService(db, commentRepo, orderRepo, listingRepo)
	favoriteSvc := commentService.NewFavoriteService(favoriteRepo, listingRepo)
	statisticsSvc := adminService.NewStatisticsService(db, orderRepo, listingRepo, vendorRepo, userRepo, paymentRepo, commentRepo)
	uploadSvc := uploadService.NewUploadService(uploader)

	// 初始化处理器
	authH := authHandler.NewAuthHandler(authSvc, redisClient, cfg.JWT.AccessTokenDuration())
	userH := userHandler.NewUserHandler(userSvc)
	vendorH := vendorHandler.NewVendorHandler(vendorSvc)
	listingH := listingHandler.NewListingHandler(listingSvc)
	categoryH := listingHandler.NewCategoryHandler(categorySvc)
	orderH := orderHandler.NewOrderHandler(orderSvc)
	paymentH := paymentHandler.NewPaymentHandler(paymentSvc)
	commentH := commentHandler.NewCommentHandler(commentSvc)
	favoriteH := commentHandler.NewFavoriteHandler(favoriteSvc)
	statisticsH := adminHandler.NewStatisticsHandler(statisticsSvc)
	uploadH := uploadHandler.NewUploadHandler(uploadSvc)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(&middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(middleware.AccessLog(logger))
	if cfg.Metrics.Enabled {
		r.Use(metrics.GetMetrics().Middleware())
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Prometheus 指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 认证中间件
	auth := middleware.Auth(&middleware.AuthConfig{
		JWTManager: jwtManager,
		Blacklist:  redisClient,
	})

	// API v1 路由组
	v1 := r.Group("/api/v1")

	// 租户校验
	if cfg.Tenant.Enabled {
		v1.Use(middleware.Tenant(&middleware.TenantConfig{
			Checker: tenant.NewMockChecker(cfg.Tenant.AllowedFirms),
			Header:  cfg.Tenant.Header,
		}))
	}

	// 限流
	if cfg.RateLimit.Enabled {
		v1.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig(redisClient)))
	}

	{
		// 公开接口（无需认证）
		public := v1.Group("")
		{
			authGroup := public.Group("/auth")
			{
				authGroup.POST("/register", authH.Register)
				authGroup.POST("/login", middleware.LoginRateLimit(redisClient), authH.Login)
				authGroup.POST("/refresh", authH.Refresh)
			}

			public.GET("/listings", listingH.Search)
			public.GET("/listings/:id", listingH.GetDetail)
			public.GET("/listings/:id/comments", commentH.ListByListing)
			public.GET("/categories", categoryH.List)
			public.GET("/categories/:slug", categoryH.GetBySlug)
		}

		// 用户端接口（需要认证）
		user := v1.Group("")
		user.Use(auth)
		{
			user.POST("/auth/logout", authH.Logout)

			user.GET("/users/me", userH.GetProfile)
			user.PUT("/users/me", userH.UpdateProfile)
			user.PUT("/users/me/password", userH.ChangePassword)

			user.POST("/vendors/apply", vendorH.Apply)
			user.GET("/vendors/me", vendorH.GetProfile)
			user.PUT("/vendors/me", vendorH.UpdateProfile)

			user.POST("/orders", orderH.Create)
			user.GET("/orders", orderH.ListMine)
			user.GET("/orders/:id", orderH.GetDetail)
			user.POST("/orders/:id/cancel", orderH.Cancel)
			user.POST("/orders/:id/confirm-receipt", orderH.ConfirmReceipt)
			user.POST("/orders/:id/pay", paymentH.Pay)
			user.GET("/orders/:id/payments", paymentH.ListByOrder)

			user.POST("/comments", commentH.Create)
			user.GET("/comments/my", commentH.ListMine)
			user.DELETE("/comments/:id", commentH.Delete)

			user.GET("/favorites", favoriteH.ListMine)
			user.POST("/favorites/:listing_id", favoriteH.Add)
			user.DELETE("/favorites/:listing_id", favoriteH.Remove)
			user.GET("/favorites/:listing_id/check", favoriteH.Check)

			user.POST("/upload/avatar", uploadH.UploadAvatar)
		}

		// 供应商接口（需要供应商角色）
		vendor := v1.Group("/vendor")
		vendor.Use(auth, middleware.RequireVendor())
		{
			vendor.POST("/listings", listingH.Create)
			vendor.GET("/listings", listingH.ListMine)
			vendor.PUT("/listings/:id", listingH.Update)
			vendor.POST("/listings/:id/submit", listingH.Submit)
			vendor.POST("/listings/:id/deactivate", listingH.Deactivate)

			vendor.GET("/orders", orderH.ListForVendor)
			vendor.POST("/orders/:id/ship", orderH.Ship)

			vendor.POST("/upload/listing-image", uploadH.UploadListingImage)
			vendor.POST("/upload/artifact", uploadH.UploadArtifact)
		}

		// 管理后台接口（需要管理员角色）
		admin := v1.Group("/admin")
		admin.Use(auth, middleware.RequireAdmin())
		{
			admin.GET("/dashboard", statisticsH.GetDashboard)
			admin.GET("/statistics/users", statisticsH.SpendingByUser)
			admin.GET("/statistics/vendors", statisticsH.SalesByVendor)
			admin.GET("/statistics/orders", statisticsH.OrderReport)

			admin.GET("/users", userH.ListUsers)
			admin.PUT("/users/:id/status", userH.SetUserStatus)

			admin.GET("/vendors", vendorH.List)
			admin.POST("/vendors/:id/approve", vendorH.Approve)
			admin.POST("/vendors/:id/reject", vendorH.Reject)

			admin.GET("/listings", listingH.ListForAdmin)
			admin.POST("/listings/:id/approve", listingH.Approve)
			admin.POST("/listings/:id/reject", listingH.Reject)

			admin.POST("/categories", categoryH.Create)
			admin.PUT("/categories/:id", categoryH.Update)
			admin.DELETE("/categories/:id", categoryH.Delete)

			admin.GET("/orders", orderH.ListForAdmin)
			admin.GET("/orders/:id", orderH.GetDetail)
			admin.POST("/orders/:id/cancel", orderH.AdminCancel)
			admin.POST("/orders/:id/ship", orderH.Ship)
			admin.POST("/orders/:id/deliver", orderH.MarkDelivered)
			admin.POST("/orders/:id/complete", orderH.Complete)
			admin.POST("/orders/:id/refund", paymentH.Refund)
			admin.GET("/orders/:id/payments", paymentH.ListByOrder)
			admin.DELETE("/orders/:id", orderH.Delete)

			admin.GET("/comments", commentH.ListForAdmin)
			admin.POST("/comments/:id/moderate", commentH.Moderate)
		}
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    404,
			"message": "接口不存在",
		})
	})
}
