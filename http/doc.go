// Package http serves spap over plain HTTP for local development.
//
// It emulates an API Gateway REST API proxy integration: every GET or HEAD
// request under the base path of the configured resource template is turned
// into a spap.Request carrying that template and the literal request path,
// and the rendered spap.HTTPResponse is written back with base64 bodies
// decoded.
//
// # Features
//
//   - Configurable resource template (default "/{proxy+}")
//   - Request IDs (X-Request-Id) and structured access logging
//   - Optional CORS support
//   - Optional Prometheus /metrics endpoint
//   - Internal failures answered with a generic JSON 500, as the gateway does
//     for failed Lambda invocations
//
// # Usage
//
//	handlerCfg := http.HandlerConfig{
//	    Resource: "/spa/{proxy+}",
//	}
//	handler := http.NewHandler(&handlerCfg, server)
//	http.ListenAndServe(":5708", handler.Router())
//
// The server parameter is any spap.Server, typically a *spap.Handler,
// optionally wrapped with metrics.Instrument.
package http
