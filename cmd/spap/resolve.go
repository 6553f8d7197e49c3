package main

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sagarc03/spap"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] <path>",
	Short: "Show how a request path maps to an object",
	Long: `Show the object name, object key and origin ARN a request path
resolves to, without contacting storage.

Examples:
  # Resolve against the default /{proxy+} resource
  spap resolve /css/app.css

  # Resolve under a base path
  spap resolve --resource '/spa/{proxy+}' /spa/

  # Fetch the object and print the rendered response headers
  spap resolve --fetch /spa/missing`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

var resolveFetch bool

func init() {
	resolveCmd.Flags().String("resource", "", "API Gateway resource template (default: server.resource)")
	resolveCmd.Flags().BoolVar(&resolveFetch, "fetch", false, "fetch the object and print the response status and headers")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := configFromCommand(cmd)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	req := spap.Request{
		Method:   http.MethodGet,
		Resource: cfg.Server.Resource,
		Path:     args[0],
	}

	// The reader is never called when only resolving names.
	naming, err := spap.NewHandler(spap.NewObjectReader(nil, loc), spap.HandlerConfig{
		Rewrite404:    cfg.Rewrite404,
		IndexDocument: cfg.IndexDocument,
	})
	if err != nil {
		return err
	}

	name := naming.ObjectName(req)
	key := loc.Key(name)

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Object name: %s\n", name)
	_, _ = fmt.Fprintf(out, "Object key:  %s\n", key)
	_, _ = fmt.Fprintf(out, "Origin ARN:  %s\n", loc.OriginARN(key))

	if !resolveFetch {
		return nil
	}

	handler, closeStore, err := newHandler(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	resp, err := handler.Serve(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", req.Path, err)
	}

	_, _ = fmt.Fprintf(out, "\nStatus: %d\n", resp.StatusCode)
	headers := make([]string, 0, len(resp.Headers))
	for k := range resp.Headers {
		headers = append(headers, k)
	}
	sort.Strings(headers)
	for _, k := range headers {
		_, _ = fmt.Fprintf(out, "%s: %s\n", k, resp.Headers[k])
	}
	_, _ = fmt.Fprintf(out, "Base64: %t, body %d bytes\n", resp.IsBase64Encoded, len(resp.Body))

	return nil
}
