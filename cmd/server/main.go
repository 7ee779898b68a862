package main // Entry point package

import (
	"log"
	"os"

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"hotel-booking-backend/internal/checkout"
	"hotel-booking-backend/internal/config"
	"hotel-booking-backend/internal/database"
	"hotel-booking-backend/internal/handler"
	"hotel-booking-backend/internal/invoice"
	"hotel-booking-backend/internal/middleware"
	"hotel-booking-backend/internal/notify"
	"hotel-booking-backend/internal/payment"
	"hotel-booking-backend/internal/queue"
	"hotel-booking-backend/internal/repository"
	"hotel-booking-backend/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis backs rate limiting and response caching; both degrade to
	// no-ops when the client is nil.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting and caching disabled")
	}

	// Repositories.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	cityRepo := repository.NewCityRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	cartRepo := repository.NewCartRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	uow := repository.NewUnitOfWork(db)

	// Checkout collaborators.
	gateway := payment.NewCardProvider(os.Getenv("PAYMENT_API_KEY"))
	invoices := invoice.NewGenerator(cfg.InvoiceDir)
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPPassword)

	wf := checkout.NewWorkflow(userRepo, cartRepo, roomRepo, hotelRepo, bookingRepo, gateway, invoices, mailer, uow)

	// The consumer appends booking.confirmed events to logs/booking.log.
	publishEvents := cfg.AMQPURL != ""
	if publishEvents {
		go func() {
			if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
				log.Printf("booking consumer stopped: %v", err)
			}
		}()
	} else {
		log.Println("AMQP_URL not set, booking events disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterPublic(e, &handler.PublicHandler{CityRepo: cityRepo, HotelRepo: hotelRepo, RoomRepo: roomRepo})
	router.RegisterAdmin(e, handler.NewAdminHandler(cityRepo, hotelRepo, roomRepo), cfg.JWTSecret)
	router.RegisterCustomer(e,
		handler.NewCartHandler(cartRepo, roomRepo),
		handler.NewCheckoutHandler(wf, cartRepo, publishEvents),
		handler.NewBookingHandler(bookingRepo),
		cfg.JWTSecret,
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
