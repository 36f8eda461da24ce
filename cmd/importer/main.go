// Importer runs a bulk reading import: a CSV file from disk or from the
// import S3 bucket, fed row by row through the same ingestion pipeline as
// manual readings.
package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plantops/chillerwatch/internal/cloud"
	"github.com/plantops/chillerwatch/internal/config"
	"github.com/plantops/chillerwatch/internal/database"
	"github.com/plantops/chillerwatch/internal/engine"
	"github.com/plantops/chillerwatch/internal/notify"
	"github.com/plantops/chillerwatch/internal/reftables"
	"github.com/plantops/chillerwatch/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	file := flag.String("file", "", "local CSV file to import")
	key := flag.String("key", "", "S3 object key to import")
	actor := flag.Int64("actor", 0, "acting user id")
	flag.Parse()

	if (*file == "") == (*key == "") {
		log.Fatal().Msg("exactly one of -file or -key is required")
	}

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	svcs := service.New(db, refLookup(), dispatcher(), config.AlertsEnabled())

	ctx := context.Background()
	var stream io.ReadCloser
	if *file != "" {
		stream, err = os.Open(*file)
		if err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("open failed")
		}
	} else {
		bucket, err := cloud.NewImportBucket(config.AWSRegion(), config.S3Bucket())
		if err != nil {
			log.Fatal().Err(err).Msg("s3 client failed")
		}
		stream, err = bucket.Open(ctx, *key)
		if err != nil {
			log.Fatal().Err(err).Str("key", *key).Msg("fetch failed")
		}
	}
	defer stream.Close()

	sum, err := svcs.Imports.ImportCSV(ctx, stream, *actor)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().
		Int("total", sum.Total).
		Int("committed", sum.Committed).
		Int("quarantined", sum.Quarantined).
		Int("duplicates", sum.Duplicates).
		Int("failed", sum.Failed).
		Msg("import complete")
	for _, e := range sum.Errors {
		log.Warn().Msg(e)
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
