// main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront/config"
	"go-storefront/controllers"
	"go-storefront/obs"
	"go-storefront/repository"
	"go-storefront/routes"
	"go-storefront/services"
	"go-storefront/utils"
)

const serviceName = "go-storefront"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

// stores bundles the repositories the services run on
type stores struct {
	products services.ProductStore
	users    interface {
		services.UserStore
		services.CartStore
		services.WatchListStore
	}
	close func(context.Context) error
}

func openStores(cfg config.App) (*stores, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		log.Println("Using in-memory store; data is lost on exit")
		mem := repository.NewMemoryStore()
		return &stores{
			products: mem.Products(),
			users:    mem.Users(),
			close:    func(context.Context) error { return nil },
		}, nil
	case config.DriverMongo:
		client, err := utils.ConnectDB(cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.MongoDatabase)
		userRepo := repository.NewUserRepository(db)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			products: repository.NewProductRepository(db),
			users:    userRepo,
			close:    client.Disconnect,
		}, nil
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}
}

func newMailer(cfg config.App) utils.Mailer {
	switch cfg.MailProvider {
	case "postmark":
		return utils.NewPostmarkMailer(cfg.PostmarkAPIToken, cfg.EmailSender)
	case "sendgrid":
		return utils.NewSendgridMailer(cfg.SendgridAPIKey, cfg.EmailSender)
	default:
		return nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(cfg.JWTSecret)

	shutdownTracer, err := obs.InitTracer(obs.Config{
		ServiceName: serviceName,
		Version:     version,
		Environment: cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		log.Fatal(err)
	}

	st, err := openStores(cfg)
	if err != nil {
		log.Fatal(err)
	}

	var emailService *utils.EmailService
	if mailer := newMailer(cfg); mailer != nil {
		emailService = utils.NewEmailService(mailer)
	}

	// Initialize services and controllers
	productService := services.NewProductService(st.products)
	userService := services.NewUserService(st.users, emailService, services.TokenTTLs{
		Register: cfg.RegisterTokenTTL,
		Login:    cfg.LoginTokenTTL,
	})
	cartService := services.NewCartService(st.users, st.products)
	watchListService := services.NewWatchListService(st.users, st.products)

	handler := routes.NewHandler(routes.Controllers{
		User:      controllers.NewUserController(userService, cfg.RequestTimeout),
		Product:   controllers.NewProductController(productService, cfg.RequestTimeout),
		Cart:      controllers.NewCartController(cartService, cfg.RequestTimeout),
		WatchList: controllers.NewWatchListController(watchListService, cfg.RequestTimeout),
	}, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server is running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if err := st.close(ctx); err != nil {
		log.Printf("db disconnect: %v", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Printf("tracer shutdown: %v", err)
	}
}
