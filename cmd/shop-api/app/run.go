package app

import (
	"context"
	"database/sql"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/juhyeon1114/jpashop/configs"
	"github.com/juhyeon1114/jpashop/internal/adapter/cache"
	httpadapter "github.com/juhyeon1114/jpashop/internal/adapter/http"
	"github.com/juhyeon1114/jpashop/internal/adapter/http/middleware"
	"github.com/juhyeon1114/jpashop/internal/adapter/kafka"
	"github.com/juhyeon1114/jpashop/internal/adapter/queue"
	"github.com/juhyeon1114/jpashop/internal/adapter/repo"
	"github.com/juhyeon1114/jpashop/internal/logging"
	"github.com/juhyeon1114/jpashop/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, "./logs/app.log")

	// database
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, nil, err
	}
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ReadTimeout)
	err = db.PingContext(ctx)
	cancel()
	if err != nil {
		return nil, nil, err
	}

	logger.Info("shop-api starting up")

	// redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// rabbitmq
	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, err
	}

	// repositories
	orderRepo := repo.NewMySQLOrderRepo(db)
	memberRepo := repo.NewMySQLMemberRepo(db)
	itemRepo := repo.NewMySQLItemRepo(db)
	simpleOrders := repo.NewMySQLSimpleOrderQuery(db)

	idem := cache.NewRedisIdempotencyStore(rdb, cfg.Idempotency.TTL)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Cache.TTL)

	producer, err := queue.NewOrderEventsProducer(ch)
	if err != nil {
		return nil, nil, err
	}

	setupQueue(ch, statusCache)
	setupKafkaListener(cfg, orderRepo, statusCache)

	// use cases + handlers
	placeUC := usecase.NewPlaceOrder(orderRepo, memberRepo, itemRepo, idem, producer)
	cancelUC := usecase.NewCancelOrder(orderRepo, itemRepo, producer)
	registerUC := usecase.NewRegisterMember(memberRepo)

	handlers := httpadapter.Handlers{
		Orders:       httpadapter.NewOrderHandler(placeUC, cancelUC, orderRepo),
		SimpleOrders: httpadapter.NewSimpleOrderHandler(orderRepo, simpleOrders),
		Members:      httpadapter.NewMemberHandler(registerUC, memberRepo),
		Items:        httpadapter.NewItemHandler(itemRepo),
		Token:        httpadapter.NewTokenHandler(cfg),
	}
	router := httpadapter.NewRouter(handlers, middleware.NewAuthz(cfg))

	cleanup := func() {
		_ = ch.Close()
		_ = conn.Close()
		_ = rdb.Close()
		_ = db.Close()
	}

	return &App{Router: router}, cleanup, nil
}

func setupQueue(ch *amqp.Channel, statusCache usecase.OrderStatusCache) {
	router := queue.NewRouter(ch, queue.WithPrefetch(50))

	placed := queue.NewOrderPlacedHandler(statusCache)
	router.Register("order.placed.q", queue.JSONHandler[usecase.OrderPlacedMsg]{HandleFunc: placed.HandlePlaced})

	cancelled := queue.NewOrderCancelledHandler(statusCache)
	router.Register("order.cancelled.q", queue.JSONHandler[usecase.OrderCancelledMsg]{HandleFunc: cancelled.HandleCancelled})

	if err := router.Start(); err != nil {
		panic(err)
	}
}

func setupKafkaListener(cfg configs.Config, orders usecase.OrderRepo, statusCache usecase.OrderStatusCache) {
	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		panic(err)
	}

	h := kafka.NewDeliveryStatusHandler(orders, statusCache)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.DeliveryTopic}, h.Handle)
	consumer.Logger = logging.New("kafka")

	go func() {
		if err := consumer.Start(context.Background()); err != nil && err != context.Canceled {
			logging.New("kafka").Error("consumer stopped", "error", err)
		}
	}()
}
