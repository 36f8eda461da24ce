package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plantops/chillerwatch/internal/config"
	"github.com/plantops/chillerwatch/internal/database"
	"github.com/plantops/chillerwatch/internal/engine"
	httpHandlers "github.com/plantops/chillerwatch/internal/http"
	"github.com/plantops/chillerwatch/internal/notify"
	"github.com/plantops/chillerwatch/internal/reftables"
	"github.com/plantops/chillerwatch/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	svcs := service.New(db, refLookup(), dispatcher(), config.AlertsEnabled())
	app := fiber.New()

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	httpHandlers.Register(app, svcs)

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}

func refLookup() engine.RefLookup {
	memory := reftables.NewMemory()
	if config.UseCloudServices() && config.RefTableDynamo() != "" {
		store, err := reftables.NewDynamoStore(config.AWSRegion(), config.RefTableDynamo(), memory)
		if err != nil {
			log.Warn().Err(err).Msg("dynamo reference tables unavailable, using built-in")
			return memory
		}
		return store
	}
	return memory
}

func dispatcher() notify.Dispatcher {
	if !config.AlertsEnabled() {
		return notify.Nop{}
	}
	router := &notify.Router{
		Email: notify.NewEmailDispatcher(config.SMTPAddr(), config.SMTPFrom()),
	}
	if config.UseCloudServices() && config.SNSTopicArn() != "" {
		push, err := notify.NewSNSDispatcher(config.AWSRegion(), config.SNSTopicArn())
		if err != nil {
			log.Warn().Err(err).Msg("sns dispatcher unavailable, push channel disabled")
		} else {
			router.Push = push
		}
	}
	return router
}
