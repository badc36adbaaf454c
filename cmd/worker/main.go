package main

import (
	"github.com/streadway/amqp"

	"github.com/consolenews/newsletter-service/internal/config"
	"github.com/consolenews/newsletter-service/internal/db"
	"github.com/consolenews/newsletter-service/internal/events"
	"github.com/consolenews/newsletter-service/internal/logger"
	"github.com/consolenews/newsletter-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Server)

	database, err := db.Connect(cfg.Database.URL)
	if err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}
	defer database.Close()

	conn, err := amqp.Dial(cfg.AMQP.URL)
	if err != nil {
		log.WithError(err).Fatal("could not connect to RabbitMQ")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.WithError(err).Fatal("could not open channel")
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		cfg.AMQP.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		log.WithError(err).Fatal("could not declare queue")
	}

	deliveries, err := ch.Consume(
		q.Name,
		"",
		false, // manual ack for requeue on failure
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.WithError(err).Fatal("could not register consumer")
	}

	consumer := &events.Consumer{
		Shipments: &repository.ShipmentRepository{DB: database},
		Publisher: ch,
		Queue:     q.Name,
		Log:       log,
	}

	log.WithField("queue", q.Name).Info("delivery event worker running")
	consumer.Run(deliveries)
	log.Info("delivery channel closed, worker exiting")
}
