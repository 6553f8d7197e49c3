package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// skipConfigAnnotation marks commands that run without a loaded config.
const skipConfigAnnotation = "spap/skip-config"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "spap",
	Short:   "Serve single-page application assets from S3",
	Long: `spap serves static single-page application assets out of an S3 bucket.

It runs as an AWS Lambda function behind an API Gateway proxy integration,
or as a local HTTP server emulating that integration for development.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipConfigAnnotation] != "" {
			setupLogging("", "")
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		setupLogging(cfg.Env, cfg.Log.Level)
		cmd.SetContext(withConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringSlice("config", nil, "config file path, repeatable; later files override earlier ones (default: ./config.yaml)")
	flags.String("env-file", ".env", "dotenv file loaded into the environment when present")
	flags.String("contents-location", "", "s3://bucket/prefix or arn:aws:s3:::bucket/prefix (env: CONTENTS_LOCATION)")
	flags.String("rewrite404", "", "object name served when the requested object is missing (env: REWRITE404)")
	flags.String("index-document", "", "document appended to directory paths (default: index.html)")
	flags.String("backend", "", "object store backend: s3, filesystem (default: s3, env: SPAP_STORAGE_BACKEND)")
	flags.String("storage-path", "", "root directory for the filesystem backend (env: SPAP_STORAGE_PATH)")
	flags.String("cache-control", "", "Cache-Control served by the filesystem backend")
	flags.String("region", "", "AWS region (env: SPAP_AWS_REGION)")
	flags.String("endpoint", "", "S3 endpoint override for MinIO or LocalStack (env: SPAP_AWS_ENDPOINT)")
	flags.String("log-level", "", "log level: debug, info, warn, error (default: info)")
}

func main() {
	// The Lambda runtime starts the bootstrap binary without arguments.
	if len(os.Args) == 1 && os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		rootCmd.SetArgs([]string{lambdaCmd.Name()})
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
