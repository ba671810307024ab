// Command trigger publishes the ingestion trigger on a local cron schedule.
// It is a development stand-in for the Cloud Scheduler job: when running the
// service outside GCP there is no scheduler to push the message, so this
// process publishes it instead.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"

	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/common"
	"github.com/iulian-sandu/football-data-analytics-frf-datacamp/ingestion/domain"
)

const defaultFrequency = "0 6 * * *"

func main() {
	if err := run(); err != nil {
		log.Println("error: ", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Printf("trigger: no .env file loaded: %v", err)
	}

	ctx := context.Background()

	client, err := pubsub.NewClient(ctx, common.ProjectID)
	if err != nil {
		return err
	}
	defer client.Close()

	frequency := common.GetEnv("TRIGGER_FREQUENCY", defaultFrequency)
	topic := client.Topic(common.IngestionTopic())

	scheduler := gocron.NewScheduler(time.UTC)

	if _, err := scheduler.Cron(frequency).Do(func() {
		publish(ctx, topic)
	}); err != nil {
		return err
	}

	log.Printf("trigger: publishing %q to %s on %q", domain.JobStartedMessage, topic.ID(), frequency)
	scheduler.StartAsync()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	log.Printf("%v : stopping trigger", sig)

	scheduler.Stop()
	topic.Stop()

	return nil
}

func publish(ctx context.Context, topic *pubsub.Topic) {
	result := topic.Publish(ctx, &pubsub.Message{
		Data: []byte(domain.JobStartedMessage),
	})

	id, err := result.Get(ctx)
	if err != nil {
		log.Printf("trigger: publish failed: %v", err)
		return
	}

	log.Printf("trigger: published message %s", id)
}
