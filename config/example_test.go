package config_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/sagarc03/spap/config"
)

func ExampleLoad() {
	// Lambda functions receive the location through the environment
	_ = os.Setenv("CONTENTS_LOCATION", "s3://my-bucket/site")
	defer func() { _ = os.Unsetenv("CONTENTS_LOCATION") }()

	cfg, err := config.Load(nil, nil)
	if err != nil {
		log.Fatal(err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Bucket: %s, Prefix: %s, Port: %d\n", loc.Bucket, loc.Prefix, cfg.Server.Port)
	// Output: Bucket: my-bucket, Prefix: site, Port: 5708
}

func ExampleWithContext() {
	cfg := &config.Config{ContentsLocation: "s3://my-bucket/site"}

	ctx := config.WithContext(context.Background(), cfg)

	// Retrieve later (e.g., in a subcommand)
	retrieved, err := config.FromContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retrieved location: %s\n", retrieved.ContentsLocation)
	// Output: Retrieved location: s3://my-bucket/site
}
