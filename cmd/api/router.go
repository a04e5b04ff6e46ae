package main

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"biblioteca-backend/internal/shared"
	"biblioteca-backend/internal/shared/middleware"
	"biblioteca-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		c.Auth.Identify(),
	)
	router.MaxMultipartMemory = c.Config.Upload.MaxFileSize

	router.GET("/health", healthHandler(c))

	setupPageRoutes(router, c)
	setupAuthRoutes(router, c)
	setupRecoveryRoutes(router, c)
	setupPublicAPIRoutes(router, c)
	setupBookRoutes(router, c)
	setupAuthorRoutes(router, c)
	setupCategoryRoutes(router, c)
	setupProfessorAPIRoutes(router, c)
	setupAdminAPIRoutes(router, c)

	return router
}

// ========================================
// PAGES AND STATIC ASSETS
// ========================================
func setupPageRoutes(router *gin.Engine, c *container.Container) {
	publicDir := c.Config.App.PublicDir

	router.Static("/css", filepath.Join(publicDir, "css"))
	router.Static("/js", filepath.Join(publicDir, "js"))
	router.Static("/img", filepath.Join(publicDir, "img"))

	// Uploaded covers are served straight from disk. The MinIO
	// backend serves assets through the download endpoint instead.
	if c.Config.Upload.Backend == "disk" {
		router.Static("/uploads", c.Config.Upload.Dir)
	}

	// Landing page: logged-in users go straight to their area.
	router.GET("/", func(ctx *gin.Context) {
		if p, ok := middleware.CurrentPrincipal(ctx); ok {
			ctx.Redirect(http.StatusFound, p.Tipo.HomeRoute())
			return
		}
		ctx.File(filepath.Join(publicDir, "index.html"))
	})

	router.GET("/login", redirectIfAuthenticated("/auth/login"))
	router.GET("/cadastro", redirectIfAuthenticated("/auth/cadastro"))

	router.GET("/user", c.Auth.RequirePage(shared.RoleStudent, shared.RoleVisitor), servePage(publicDir, "user.html"))
	router.GET("/professor", c.Auth.RequirePage(shared.RoleProfessor), servePage(publicDir, "professor.html"))
	router.GET("/admin", c.Auth.RequirePage(shared.RoleAdmin), servePage(publicDir, "admin.html"))
}

func servePage(dir, name string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.File(filepath.Join(dir, name))
	}
}

func redirectIfAuthenticated(target string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if p, ok := middleware.CurrentPrincipal(ctx); ok {
			ctx.Redirect(http.StatusFound, p.Tipo.HomeRoute())
			return
		}
		ctx.Redirect(http.StatusFound, target)
	}
}

// ========================================
// AUTH
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	publicDir := c.Config.App.PublicDir

	auth := router.Group("/auth")
	{
		auth.GET("/login", func(ctx *gin.Context) {
			if p, ok := middleware.CurrentPrincipal(ctx); ok {
				ctx.Redirect(http.StatusFound, p.Tipo.HomeRoute())
				return
			}
			ctx.File(filepath.Join(publicDir, "login.html"))
		})
		auth.GET("/cadastro", func(ctx *gin.Context) {
			if p, ok := middleware.CurrentPrincipal(ctx); ok {
				ctx.Redirect(http.StatusFound, p.Tipo.HomeRoute())
				return
			}
			ctx.File(filepath.Join(publicDir, "cadastro.html"))
		})

		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/cadastro", c.UserHandler.Register)
	}

	router.POST("/logout", c.UserHandler.Logout)

	// Current session info, two paths for historical reasons.
	router.GET("/api/usuario/atual", c.UserHandler.CurrentUser)
	router.GET("/api/user-info", c.UserHandler.CurrentUser)
}

// ========================================
// PASSWORD RECOVERY
// ========================================
func setupRecoveryRoutes(router *gin.Engine, c *container.Container) {
	publicDir := c.Config.App.PublicDir

	recovery := router.Group("/recuperar-senha")
	{
		recovery.GET("/", servePage(publicDir, "recuperar-senha.html"))
		recovery.GET("/redefinir", servePage(publicDir, "redefinir-senha.html"))

		recovery.POST("/solicitar", c.UserHandler.RequestRecovery)
		recovery.GET("/verificar-token", c.UserHandler.VerifyRecoveryToken)
		recovery.POST("/redefinir", c.UserHandler.ResetWithToken)
	}
}

// ========================================
// PUBLIC APIS
// ========================================
func setupPublicAPIRoutes(router *gin.Engine, c *container.Container) {
	router.GET("/api/estatisticas-gerais", c.StatsHandler.General)
	router.GET("/api/livros-destaque", c.BookHandler.Featured)
}

// ========================================
// BOOKS
// ========================================
func setupBookRoutes(router *gin.Engine, c *container.Container) {
	books := router.Group("/api/livros")
	{
		books.GET("", c.BookHandler.List)
		books.GET("/meus-livros", c.Auth.RequireAPI(shared.RoleProfessor), c.BookHandler.ListMine)
		books.GET("/:id", c.BookHandler.Get)
		books.GET("/:id/download", c.Auth.RequireAPI(), c.BookHandler.Download)

		books.POST("", c.Auth.RequireAPI(shared.RoleProfessor, shared.RoleAdmin), c.BookHandler.Create)
		books.PUT("/:id", c.Auth.RequireAPI(shared.RoleProfessor, shared.RoleAdmin), c.BookHandler.Update)
		books.DELETE("/:id", c.Auth.RequireAPI(shared.RoleProfessor, shared.RoleAdmin), c.BookHandler.Delete)
	}
}

// ========================================
// AUTHORS
// ========================================
func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	authors := router.Group("/api/autores")
	{
		authors.GET("", c.AuthorHandler.List)
		authors.GET("/:id", c.AuthorHandler.Get)

		authors.POST("", c.Auth.RequireAPI(shared.RoleProfessor, shared.RoleAdmin), c.AuthorHandler.Create)
		authors.PUT("/:id", c.Auth.RequireAPI(shared.RoleProfessor, shared.RoleAdmin), c.AuthorHandler.Update)
		authors.DELETE("/:id", c.Auth.RequireAPI(shared.RoleAdmin), c.AuthorHandler.Delete)
	}
}

// ========================================
// CATEGORIES
// ========================================
func setupCategoryRoutes(router *gin.Engine, c *container.Container) {
	categories := router.Group("/api/categorias")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.Get)

		categories.POST("", c.Auth.RequireAPI(shared.RoleProfessor, shared.RoleAdmin), c.CategoryHandler.Create)
		categories.PUT("/:id", c.Auth.RequireAPI(shared.RoleProfessor, shared.RoleAdmin), c.CategoryHandler.Update)
		categories.DELETE("/:id", c.Auth.RequireAPI(shared.RoleAdmin), c.CategoryHandler.Delete)
	}
}

// ========================================
// PROFESSOR DASHBOARD APIS
// ========================================
func setupProfessorAPIRoutes(router *gin.Engine, c *container.Container) {
	professor := router.Group("/api/professor")
	professor.Use(c.Auth.RequireAPI(shared.RoleProfessor))
	{
		professor.GET("/estatisticas", c.StatsHandler.Professor)
		professor.GET("/atividade-recente", c.StatsHandler.ProfessorActivity)
	}
}

// ========================================
// ADMIN APIS
// ========================================
func setupAdminAPIRoutes(router *gin.Engine, c *container.Container) {
	admin := router.Group("/admin/api")
	admin.Use(c.Auth.RequireAPI(shared.RoleAdmin))
	{
		admin.GET("/estatisticas", c.StatsHandler.Admin)
		admin.GET("/atividade-recente", c.StatsHandler.AdminActivity)

		admin.GET("/usuarios", c.UserHandler.ListUsers)
		admin.GET("/usuarios/:id", c.UserHandler.GetUser)
		admin.PUT("/usuarios/:id", c.UserHandler.UpdateUser)
		admin.DELETE("/usuarios/:id", c.UserHandler.DeleteUser)
		admin.POST("/usuarios/:id/redefinir-senha", c.UserHandler.ResetUserPassword)

		admin.GET("/professores", c.UserHandler.ListProfessors)
		admin.GET("/professores/:id", c.UserHandler.GetProfessor)
		admin.POST("/professores", c.UserHandler.CreateProfessor)
		admin.PUT("/professores/:id", c.UserHandler.UpdateProfessor)
		admin.DELETE("/professores/:id", c.UserHandler.DeleteProfessor)
	}
}

func healthHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
		cacheStatus := "up"
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			cacheStatus = "down"
		}

		ctx.JSON(status, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
