package main

import (
	"github.com/spf13/cobra"

	"github.com/sagarc03/spap/apigateway"
)

var lambdaCmd = &cobra.Command{
	Use:   "lambda",
	Short: "Run as an AWS Lambda function",
	Long: `Run as an AWS Lambda function handling API Gateway proxy events.

This is the default when the binary is started by the Lambda runtime
without arguments. Configure it with the CONTENTS_LOCATION and REWRITE404
environment variables.`,
	RunE: runLambda,
}

func init() {
	rootCmd.AddCommand(lambdaCmd)
}

func runLambda(cmd *cobra.Command, args []string) error {
	cfg, err := configFromCommand(cmd)
	if err != nil {
		return err
	}

	handler, closeStore, err := newHandler(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	apigateway.NewAdapter(handler).Start()
	return nil
}
