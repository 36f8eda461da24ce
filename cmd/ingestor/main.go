package main

import (
	"context"
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plantops/chillerwatch/internal/config"
	"github.com/plantops/chillerwatch/internal/database"
	"github.com/plantops/chillerwatch/internal/domain"
	"github.com/plantops/chillerwatch/internal/engine"
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

	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		var body struct {
			domain.Reading
			ActorID int64 `json:"actor_id"`
		}
		if err := json.Unmarshal(msg.Payload(), &body); err != nil {
			log.Error().Err(err).Msg("bad reading payload")
			return
		}
		result, err := svcs.Readings.IngestReading(context.Background(), &body.Reading, body.ActorID)
		if err != nil {
			log.Error().Err(err).Int64("equipment_id", body.EquipmentID).Msg("ingest failed")
			return
		}
		if result.Quarantined != nil {
			log.Warn().Str("quarantine_id", result.Quarantined.ID).Msg("reading quarantined")
		}
	}

	if token := client.Subscribe(config.MQTTTopic(), 0, handler); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("subscribe failed")
	}

	log.Info().Str("topic", config.MQTTTopic()).Msg("ingestor running; Ctrl+C to stop")
	for {
		time.Sleep(10 * time.Second)
	}
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
