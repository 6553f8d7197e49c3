// Package apigateway runs a spap server as an AWS Lambda function behind an
// API Gateway REST API proxy integration.
package apigateway

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/sagarc03/spap"
)

// Adapter converts API Gateway proxy events to spap requests.
type Adapter struct {
	server spap.Server
}

// NewAdapter creates a new Adapter serving requests with server.
func NewAdapter(server spap.Server) *Adapter {
	return &Adapter{server: server}
}

// Start hands control to the Lambda runtime. It does not return.
func (a *Adapter) Start() {
	lambda.Start(a.HandleRequest)
}

// HandleRequest serves a single proxy event.
// Errors are returned unchanged so the Lambda runtime reports the invocation as failed.
func (a *Adapter) HandleRequest(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req := RequestFromEvent(event)

	resp, err := a.server.Serve(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "request failed",
			"request_id", event.RequestContext.RequestID,
			"path", event.Path,
			"err", err,
		)
		return events.APIGatewayProxyResponse{}, err
	}

	slog.InfoContext(ctx, "request served",
		"request_id", event.RequestContext.RequestID,
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
	)

	return ResponseToEvent(resp), nil
}

// RequestFromEvent extracts the resource template, path and method.
func RequestFromEvent(event events.APIGatewayProxyRequest) spap.Request {
	return spap.Request{
		Method:   event.HTTPMethod,
		Resource: event.Resource,
		Path:     event.Path,
	}
}

// ResponseToEvent converts a rendered response to the proxy integration shape.
func ResponseToEvent(resp spap.HTTPResponse) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      resp.StatusCode,
		Headers:         resp.Headers,
		Body:            resp.Body,
		IsBase64Encoded: resp.IsBase64Encoded,
	}
}
