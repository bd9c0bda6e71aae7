package router

import (
	"net/http"
	"time"

	"foodgram/internal/auth"
	"foodgram/internal/follow"
	"foodgram/internal/ingredient"
	"foodgram/internal/logger"
	"foodgram/internal/middleware"
	"foodgram/internal/recipe"
	"foodgram/internal/shopping"
	"foodgram/internal/tag"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps is everything the HTTP surface needs.
type Deps struct {
	Log         *logger.Logger
	Tokens      *auth.TokenManager
	CORSOrigins []string

	Auth       *auth.Service
	Follow     *follow.Service
	Tags       *tag.Service
	Ingredient *ingredient.Service
	Recipes    *recipe.Service
	Shopping   *shopping.Service
}

func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = logger.Nop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(d.Log),
		middleware.Metrics(),
	)

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     d.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	requireAuth := middleware.AuthMiddleware(d.Tokens)
	optionalAuth := middleware.OptionalAuth(d.Tokens)
	adminOnly := middleware.RequireRole(auth.RoleAdmin)

	// ───────────────────────── AUTH ─────────────────────────
	authHandler := auth.NewHandler(d.Auth)
	followHandler := follow.NewHandler(d.Follow)

	api.POST("/auth/token/login", authHandler.Login)
	api.POST("/auth/token/logout", requireAuth, authHandler.Logout)

	users := api.Group("/users")
	{
		users.POST("", authHandler.Register)
		users.GET("", optionalAuth, authHandler.List)
		users.GET("/me", requireAuth, authHandler.Me)
		users.POST("/set_password", requireAuth, authHandler.SetPassword)
		users.GET("/subscriptions", requireAuth, followHandler.List)
		users.GET("/:id", optionalAuth, authHandler.Get)
		users.POST("/:id/subscribe", requireAuth, followHandler.Subscribe)
		users.DELETE("/:id/subscribe", requireAuth, followHandler.Unsubscribe)
	}

	// ───────────────────────── CATALOG ─────────────────────────
	tagHandler := tag.NewHandler(d.Tags)
	tags := api.Group("/tags")
	{
		tags.GET("", tagHandler.List)
		tags.GET("/:id", tagHandler.Get)
		tags.POST("", requireAuth, adminOnly, tagHandler.Create)
	}

	ingredientHandler := ingredient.NewHandler(d.Ingredient)
	ingredients := api.Group("/ingredients")
	{
		ingredients.GET("", ingredientHandler.List)
		ingredients.GET("/:id", ingredientHandler.Get)
		ingredients.POST("", requireAuth, adminOnly, ingredientHandler.Create)
	}

	// ───────────────────────── RECIPES ─────────────────────────
	recipeHandler := recipe.NewHandler(d.Recipes)
	shoppingHandler := shopping.NewHandler(d.Shopping)

	recipes := api.Group("/recipes")
	{
		recipes.GET("", optionalAuth, recipeHandler.List)
		recipes.GET("/download_shopping_cart", requireAuth, shoppingHandler.Download)
		recipes.GET("/:id", optionalAuth, recipeHandler.Get)
		recipes.GET("/:id/get-link", recipeHandler.ShortLink)

		authed := recipes.Group("", requireAuth)
		authed.POST("", recipeHandler.Create)
		authed.PATCH("/:id", recipeHandler.Update)
		authed.DELETE("/:id", recipeHandler.Delete)
		authed.POST("/:id/favorite", recipeHandler.AddFavorite)
		authed.DELETE("/:id/favorite", recipeHandler.RemoveFavorite)
		authed.POST("/:id/shopping_cart", shoppingHandler.AddToCart)
		authed.DELETE("/:id/shopping_cart", shoppingHandler.RemoveFromCart)
	}

	return r
}
