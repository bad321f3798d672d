package main

import (
	"context"
	"database/sql"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/davicafu/gymlab/internal/config"
	"github.com/davicafu/gymlab/pkg/logger"

	assetApp "github.com/davicafu/gymlab/internal/asset/application"
	assetDomain "github.com/davicafu/gymlab/internal/asset/domain"
	assetHttp "github.com/davicafu/gymlab/internal/asset/infra/inbound/http"
	assetRepo "github.com/davicafu/gymlab/internal/asset/infra/outbound/db/sqlite"

	clientApp "github.com/davicafu/gymlab/internal/client/application"
	clientDomain "github.com/davicafu/gymlab/internal/client/domain"
	clientHttp "github.com/davicafu/gymlab/internal/client/infra/inbound/http"
	clientRepo "github.com/davicafu/gymlab/internal/client/infra/outbound/db/sqlite"

	exerciseApp "github.com/davicafu/gymlab/internal/exercise/application"
	exerciseDomain "github.com/davicafu/gymlab/internal/exercise/domain"
	exerciseHttp "github.com/davicafu/gymlab/internal/exercise/infra/inbound/http"
	exerciseMongo "github.com/davicafu/gymlab/internal/exercise/infra/outbound/db/mongodb"
	exerciseRepo "github.com/davicafu/gymlab/internal/exercise/infra/outbound/db/sqlite"

	ledgerApp "github.com/davicafu/gymlab/internal/ledger/application"
	ledgerDomain "github.com/davicafu/gymlab/internal/ledger/domain"
	ledgerEvents "github.com/davicafu/gymlab/internal/ledger/infra/inbound/events"
	ledgerHttp "github.com/davicafu/gymlab/internal/ledger/infra/inbound/http"
	ledgerClickhouse "github.com/davicafu/gymlab/internal/ledger/infra/outbound/analytics/clickhouse"
	ledgerRepo "github.com/davicafu/gymlab/internal/ledger/infra/outbound/db/sqlrepo"

	measurementApp "github.com/davicafu/gymlab/internal/measurement/application"
	measurementDomain "github.com/davicafu/gymlab/internal/measurement/domain"
	measurementHttp "github.com/davicafu/gymlab/internal/measurement/infra/inbound/http"
	measurementRepo "github.com/davicafu/gymlab/internal/measurement/infra/outbound/db/sqlite"

	notificationApp "github.com/davicafu/gymlab/internal/notification/application"
	notificationDomain "github.com/davicafu/gymlab/internal/notification/domain"
	notificationEvents "github.com/davicafu/gymlab/internal/notification/infra/inbound/events"
	notificationHttp "github.com/davicafu/gymlab/internal/notification/infra/inbound/http"
	notificationRepo "github.com/davicafu/gymlab/internal/notification/infra/outbound/db/sqlite"
	"github.com/davicafu/gymlab/internal/notification/infra/outbound/email"
	"github.com/davicafu/gymlab/internal/notification/infra/outbound/render"

	userApp "github.com/davicafu/gymlab/internal/user/application"
	userDomain "github.com/davicafu/gymlab/internal/user/domain"
	userHttp "github.com/davicafu/gymlab/internal/user/infra/inbound/http"
	userRepo "github.com/davicafu/gymlab/internal/user/infra/outbound/db/sqlite"
	"github.com/davicafu/gymlab/internal/user/infra/outbound/token"

	sharedDomain "github.com/davicafu/gymlab/internal/shared/domain"
	sharedEvents "github.com/davicafu/gymlab/internal/shared/domain/events"
	infraEvents "github.com/davicafu/gymlab/internal/shared/infra/events"
	sharedBus "github.com/davicafu/gymlab/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/gymlab/internal/shared/infra/platform/cache"
	sharedMongo "github.com/davicafu/gymlab/internal/shared/infra/platform/db/mongodb"
	sharedPostgres "github.com/davicafu/gymlab/internal/shared/infra/platform/db/postgres"
	sharedSQLite "github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlite"
	"github.com/davicafu/gymlab/internal/shared/infra/platform/db/sqlq"
	infraRelayer "github.com/davicafu/gymlab/internal/shared/infra/relayer"
)

const consumerGroup = "gymlab-backend"

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.LogLevel)
	log := logger.Logger()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------- DB ----------------
	db, err := sharedSQLite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		log.Fatal("failed to open SQLite", zap.Error(err))
	}
	defer db.Close()

	for name, initFn := range map[string]func(*sql.DB) error{
		"outbox":       sharedSQLite.InitOutbox,
		"user":         userRepo.InitSQLite,
		"client":       clientRepo.InitSQLite,
		"exercise":     exerciseRepo.InitSQLite,
		"measurement":  measurementRepo.InitSQLite,
		"asset":        assetRepo.InitSQLite,
		"notification": notificationRepo.InitSQLite,
		"ledger":       ledgerRepo.InitSQLite,
	} {
		if err := initFn(db); err != nil {
			log.Fatal("failed to initialize SQLite", zap.String("schema", name), zap.Error(err))
		}
	}

	// Repositorios con outbox propio: cada uno necesita su relayer.
	outboxes := map[string]sharedDomain.OutboxRepository{
		"sqlite": sqlq.NewOutboxRepo(db, sqlq.SQLite),
	}

	var ledgerEntries ledgerDomain.EntryRepository = ledgerRepo.NewEntryRepo(db, sqlq.SQLite)
	if cfg.PostgresURL != "" {
		pg, err := sharedPostgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal("failed to open Postgres", zap.Error(err))
		}
		defer pg.Close()
		if err := sharedPostgres.Migrate(pg, ledgerRepo.Migrations, "migrations"); err != nil {
			log.Fatal("failed to migrate Postgres", zap.Error(err))
		}
		ledgerEntries = ledgerRepo.NewEntryRepo(pg, sqlq.Postgres)
		outboxes["postgres"] = sqlq.NewOutboxRepo(pg, sqlq.Postgres)
		log.Info("🐘 Libro de ingresos y egresos en Postgres")
	}

	var exercises exerciseDomain.ExerciseRepository = exerciseRepo.NewExerciseRepoSQLite(db)
	if cfg.MongoURI != "" {
		mc, err := sharedMongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatal("failed to connect MongoDB", zap.Error(err))
		}
		defer disconnect(mc, log)
		mdb := mc.Database(cfg.MongoDB)
		exercises = exerciseMongo.NewExerciseRepoMongoDB(mc, mdb)
		outboxes["mongodb"] = sharedMongo.NewOutboxRepoMongoDB(mdb)
		log.Info("🍃 Catálogo de ejercicios en MongoDB")
	}

	// ---------------- Analytics ----------------
	// Se deja como interfaz nil (no *LedgerAnalyticsRepo nil) si no hay ClickHouse.
	var analytics ledgerDomain.LedgerAnalyticsRepository
	var analyticsWriter ledgerEvents.AnalyticsWriter
	if cfg.ClickHouseAddr != "" {
		ch, err := ledgerClickhouse.NewLedgerAnalyticsRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, balance desde el repositorio", zap.Error(err))
		} else if err := ch.InitSchema(); err != nil {
			log.Warn("⚠️ No se pudo crear el esquema de ClickHouse", zap.Error(err))
		} else {
			analytics, analyticsWriter = ch, ch
			log.Info("📊 ClickHouse conectado")
		}
	}

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria:", zap.Error(err))
		cacheInstance = sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = sharedCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// --------------- Servicios --------------
	clients := clientRepo.NewClientRepoSQLite(db)
	users := userRepo.NewUserRepoSQLite(db)

	userService := userApp.NewUserService(users, cacheInstance, log)
	authService := userApp.NewAuthService(users, token.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL), cacheInstance, log)
	clientService := clientApp.NewClientService(clients, cacheInstance, log)
	exerciseService := exerciseApp.NewExerciseService(exercises, cacheInstance, log)
	ledgerService := ledgerApp.NewLedgerService(ledgerEntries, analytics, cacheInstance, log)
	measurementService := measurementApp.NewMeasurementService(measurementRepo.NewMeasurementRepoSQLite(db), log)
	assetService := assetApp.NewAssetService(assetRepo.NewAssetRepoSQLite(db), cacheInstance, log)

	renderer := render.NewMarkdownRenderer()
	var sender notificationDomain.Sender = email.NewNoopSender(log)
	if cfg.ResendAPIKey != "" {
		sender = email.NewResendSender(cfg.ResendAPIKey, cfg.MailFrom, log)
		log.Info("📧 Envío de correo con Resend")
	}
	templates := notificationRepo.NewTemplateRepoSQLite(db)
	templateService := notificationApp.NewTemplateService(templates, renderer, log)
	notificationService := notificationApp.NewNotificationService(
		templates, notificationRepo.NewNotificationRepoSQLite(db), clients, renderer, sender, log,
	)

	if cfg.AdminUsername != "" {
		if err := userService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatal("failed to create initial admin", zap.Error(err))
		}
	}

	// ---------------- Events ---------------
	handlers := map[string][]infraEvents.MessageHandler{
		clientDomain.ClientTopic: {notificationEvents.NewClientConsumer(notificationService, log)},
	}
	if analyticsWriter != nil {
		handlers[ledgerDomain.LedgerTopic] = append(handlers[ledgerDomain.LedgerTopic], ledgerEvents.NewLedgerConsumer(analyticsWriter, log))
	}

	var publisher sharedBus.EventBus
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos")
		writer := infraEvents.NewKafkaWriter(cfg.KafkaBrokers)
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)

		for topic, hs := range handlers {
			for _, h := range hs {
				reader := infraEvents.NewKafkaReader(cfg.KafkaBrokers, topic, consumerGroup)
				defer reader.Close()
				infraEvents.NewConsumerAdapter(reader, h, log).Start(ctx)
			}
		}
	} else {
		log.Info("⚡️Usando bus de eventos en memoria (canales de Go)")
		bus := infraEvents.NewInMemoryEventBus(log)
		publisher = bus

		for topic, hs := range handlers {
			for _, h := range hs {
				log.Info("🎧 Iniciando listener en memoria", zap.String("topic", topic))
				infraEvents.Listen(ctx, bus.Subscribe(topic, 64), h)
			}
		}
	}

	// ------------ Outbox Worker ------------
	// Merge de los registros de cada dominio
	eventRegistry := make(map[string]sharedEvents.EventMetadata)
	for _, registry := range []map[string]sharedEvents.EventMetadata{
		userDomain.NewEventRegistry(),
		clientDomain.NewEventRegistry(),
		exerciseDomain.NewEventRegistry(),
		ledgerDomain.NewEventRegistry(),
		measurementDomain.NewEventRegistry(),
		assetDomain.NewEventRegistry(),
		notificationDomain.NewEventRegistry(),
	} {
		for k, v := range registry {
			eventRegistry[k] = v
		}
	}

	for name, repo := range outboxes {
		log.Info("📮 Relayer de outbox", zap.String("store", name))
		worker := infraRelayer.NewOutboxWorker(repo, publisher, eventRegistry, cfg.OutboxPeriod, cfg.OutboxLimit, log)
		go worker.Start(ctx)
	}

	// ---------------- HTTP ----------------
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	userHttp.RegisterAuthRoutes(router, userHttp.NewAuthHandler(authService))

	api := router.Group("/", userHttp.RequireAuth(authService))
	clientHttp.RegisterClientRoutes(api, clientHttp.NewClientHandler(clientService))
	exerciseHttp.RegisterExerciseRoutes(api, exerciseHttp.NewExerciseHandler(exerciseService))
	measurementHttp.RegisterMeasurementRoutes(api, measurementHttp.NewMeasurementHandler(measurementService))
	assetHttp.RegisterAssetRoutes(api, assetHttp.NewAssetHandler(assetService))
	notificationHttp.RegisterTemplateRoutes(api, notificationHttp.NewTemplateHandler(templateService))
	notificationHttp.RegisterNotificationRoutes(api, notificationHttp.NewNotificationHandler(notificationService))
	ledgerHttp.RegisterLedgerRoutes(api,
		ledgerHttp.NewEntryHandler(ledgerService, ledgerDomain.KindIncome),
		ledgerHttp.NewEntryHandler(ledgerService, ledgerDomain.KindExpense),
		ledgerHttp.NewReportHandler(ledgerService),
	)

	admin := api.Group("/", userHttp.RequireRole(userDomain.RoleAdmin))
	userHttp.RegisterUserRoutes(admin, userHttp.NewUserHandler(userService))

	srv := &http.Server{Addr: ":" + cfg.HTTPPort, Handler: router}
	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Apagando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("⚠️ Shutdown incompleto", zap.Error(err))
	}
}

func disconnect(mc *mongo.Client, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.Disconnect(ctx); err != nil {
		log.Warn("⚠️ Error al desconectar MongoDB", zap.Error(err))
	}
}
