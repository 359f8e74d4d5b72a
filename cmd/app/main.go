package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/chadastore/storefront/internal/banner"
	"github.com/chadastore/storefront/internal/cart"
	"github.com/chadastore/storefront/internal/category"
	"github.com/chadastore/storefront/internal/checkout"
	"github.com/chadastore/storefront/internal/config"
	"github.com/chadastore/storefront/internal/pages"
	"github.com/chadastore/storefront/internal/product"
	"github.com/chadastore/storefront/internal/recommended"
	"github.com/chadastore/storefront/internal/review"
	"github.com/chadastore/storefront/internal/session"
	"github.com/chadastore/storefront/internal/storage"
	"github.com/chadastore/storefront/internal/upstream"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app, cfg.AllowOrigins)
	app.Use(checkMiddleware)

	kv, err := storage.NewKV(cfg.CartStorePath)
	if err != nil {
		panic(err)
	}

	api := upstream.New(cfg.APIBaseURL, cfg.UpstreamTimeout)
	cache := pickCache(cfg, kv)

	// catalog service/handler built early so checkout and recommended can
	// reuse the service
	catalog := product.NewClient(api, cache, cfg.ProductsCacheTTL, cfg.PromotionsCacheTTL)
	productService := product.NewService(catalog, cfg.APIBaseURL)
	productHandler := product.NewHandler(productService)

	banner.NewHandler(banner.NewService(banner.NewStaticRepository(nil))).RegisterPublicRoutes(app)
	pages.NewHandler(pages.NewStaticRepository(nil)).RegisterPublicRoutes(app)
	category.NewHandler(category.NewClient(api, cache, cfg.CategoriesCacheTTL)).RegisterPublicRoutes(app)
	review.NewHandler(review.NewClient(api)).RegisterPublicRoutes(app)
	recommended.NewHandler(recommended.NewService(productService)).RegisterPublicRoutes(app)

	// product routes go last so specific paths win over the :id param
	productHandler.RegisterPublicRoutes(app)

	store := cart.NewStore(openCartRepository(cfg, kv))

	secret := []byte(cfg.SessionSecret)
	app.Use(session.Ensure(secret))
	app.Use(jwtware.New(jwtware.Config{
		SigningKey:  secret,
		ContextKey:  session.ContextKey,
		TokenLookup: "cookie:" + session.CookieName,
	}))

	cart.NewHandler(store).RegisterProtectedRoutes(app)
	submitter := checkout.NewSubmitter(api, store, cfg.OrderRedirectDelay)
	checkout.NewHandler(store, productService, submitter, cfg.APIBaseURL).RegisterProtectedRoutes(app)

	if err := app.Listen(cfg.Addr); err != nil {
		panic(err)
	}
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: origins != "*",
	}))
}

// pickCache selects Redis when configured, the file cache otherwise. Both
// keep stale entries around for the degraded-upstream path.
func pickCache(cfg config.Config, kv *storage.KV) storage.Cache {
	if cfg.RedisAddr == "" {
		return storage.NewFileCache(kv)
	}
	return storage.NewRedisCache(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
}

// openCartRepository prefers Postgres when DATABASE_URL is set; otherwise
// carts live next to the cache files under CartStorePath.
func openCartRepository(cfg config.Config, kv *storage.KV) cart.Repository {
	if cfg.DatabaseURL == "" {
		return cart.NewFileRepository(kv)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}

	repo := cart.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		panic(err)
	}
	return repo
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	fmt.Printf("URL = %s, Method = %s, Duration = %v\n", c.OriginalURL(), c.Method(), time.Since(start))
	return err
}
