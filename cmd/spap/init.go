package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/spap"
	"github.com/sagarc03/spap/config"
	spaphttp "github.com/sagarc03/spap/http"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	Long: `Create a config file for local development.

You will be prompted for:
  - Contents location (s3://bucket/prefix or an S3 ARN)
  - Rewrite target for missing objects
  - Storage backend and its settings
  - Local server port and resource template`,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE:        runInit,
}

var initOutput string

func init() {
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "config.yaml", "path of the config file to write")

	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(initOutput); err == nil {
		prompt := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite it", initOutput),
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	locationPrompt := promptui.Prompt{
		Label: "Contents location",
		Validate: func(input string) error {
			_, err := spap.ParseLocation(input)
			return err
		},
	}
	location, err := locationPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	rewritePrompt := promptui.Prompt{
		Label:   "Rewrite target for missing objects (empty to disable)",
		Default: spap.DefaultIndexDocument,
	}
	rewrite, err := rewritePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	file := &config.File{
		ContentsLocation: location,
		Rewrite404:       rewrite,
	}

	backendSelect := promptui.Select{
		Label: "Storage backend",
		Items: []string{"s3", "filesystem"},
	}
	_, backend, err := backendSelect.Run()
	if err != nil {
		return handlePromptError(err)
	}
	file.Storage = &config.FileStorage{Backend: backend}

	switch backend {
	case "filesystem":
		pathPrompt := promptui.Prompt{
			Label:   "Storage directory (contains one directory per bucket)",
			Default: "./data",
			Validate: func(input string) error {
				if input == "" {
					return errors.New("storage directory is required")
				}
				return nil
			},
		}
		path, err := pathPrompt.Run()
		if err != nil {
			return handlePromptError(err)
		}
		file.Storage.Path = path

	case "s3":
		endpointPrompt := promptui.Prompt{
			Label: "S3 endpoint override (empty for AWS)",
			Validate: func(input string) error {
				if input == "" {
					return nil
				}
				parsedURL, parseErr := url.Parse(input)
				if parseErr != nil {
					return fmt.Errorf("invalid URL: %w", parseErr)
				}
				if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
					return errors.New("URL must start with http:// or https://")
				}
				return nil
			},
		}
		endpoint, err := endpointPrompt.Run()
		if err != nil {
			return handlePromptError(err)
		}
		if endpoint != "" {
			// MinIO and LocalStack need path-style addressing
			file.AWS = &config.FileAWS{Endpoint: endpoint, UsePathStyle: true}
		}
	}

	portPrompt := promptui.Prompt{
		Label:   "Local server port",
		Default: "5708",
		Validate: func(input string) error {
			port, convErr := strconv.Atoi(input)
			if convErr != nil || port < 1 || port > 65535 {
				return errors.New("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	port, _ := strconv.Atoi(portStr)

	resourcePrompt := promptui.Prompt{
		Label:   "Resource template",
		Default: spaphttp.DefaultResource,
		Validate: func(input string) error {
			if input == "" || input[0] != '/' {
				return errors.New("resource must start with /")
			}
			return nil
		},
	}
	resource, err := resourcePrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	file.Server = &config.FileServer{Port: port, Resource: resource}

	if err := file.Save(initOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Printf("Config written to %s.\n", initOutput)
	fmt.Println("Run 'spap serve' to start the local server.")
	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
