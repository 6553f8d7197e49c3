package apigateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/spap"
	"github.com/sagarc03/spap/apigateway"
)

type MockServer struct {
	mock.Mock
}

func (m *MockServer) Serve(ctx context.Context, req spap.Request) (spap.HTTPResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(spap.HTTPResponse), args.Error(1)
}

func TestAdapter_HandleRequest(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		server := new(MockServer)
		adapter := apigateway.NewAdapter(server)
		ctx := context.Background()

		server.On("Serve", ctx, spap.Request{
			Method:   http.MethodGet,
			Resource: "/spa/{proxy+}",
			Path:     "/spa/logo.png",
		}).Return(spap.HTTPResponse{
			StatusCode:      http.StatusOK,
			Headers:         map[string]string{"Content-Type": "image/png"},
			Body:            "iVBORw0KGgo=",
			IsBase64Encoded: true,
		}, nil)

		resp, err := adapter.HandleRequest(ctx, events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodGet,
			Resource:   "/spa/{proxy+}",
			Path:       "/spa/logo.png",
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "image/png", resp.Headers["Content-Type"])
		assert.Equal(t, "iVBORw0KGgo=", resp.Body)
		assert.True(t, resp.IsBase64Encoded)
		server.AssertExpectations(t)
	})

	t.Run("error propagates", func(t *testing.T) {
		server := new(MockServer)
		adapter := apigateway.NewAdapter(server)
		ctx := context.Background()

		serveErr := errors.New("storage unavailable")
		server.On("Serve", ctx, mock.Anything).Return(spap.HTTPResponse{}, serveErr)

		resp, err := adapter.HandleRequest(ctx, events.APIGatewayProxyRequest{Path: "/x"})
		assert.ErrorIs(t, err, serveErr)
		assert.Equal(t, events.APIGatewayProxyResponse{}, resp)
	})
}

func TestRequestFromEvent_JSON(t *testing.T) {
	raw := `{
		"resource": "/spa/{proxy+}",
		"path": "/spa/css/app.css",
		"httpMethod": "GET",
		"pathParameters": {"proxy": "css/app.css"},
		"requestContext": {"requestId": "c6af9ac6-7b61-11e6-9a41-93e8deadbeef"}
	}`

	var event events.APIGatewayProxyRequest
	require.NoError(t, json.Unmarshal([]byte(raw), &event))

	req := apigateway.RequestFromEvent(event)
	assert.Equal(t, spap.Request{Method: "GET", Resource: "/spa/{proxy+}", Path: "/spa/css/app.css"}, req)
}

func TestResponseToEvent_JSON(t *testing.T) {
	resp := apigateway.ResponseToEvent(spap.HTTPResponse{
		StatusCode: http.StatusNotFound,
		Headers:    map[string]string{"Content-Type": "text/html"},
		Body:       "<html></html>",
	})

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, float64(404), decoded["statusCode"])
	assert.Equal(t, "<html></html>", decoded["body"])
}

func TestAdapter_EndToEnd(t *testing.T) {
	reader := new(MockReader)
	handler, err := spap.NewHandler(reader, spap.HandlerConfig{Rewrite404: "index.html"})
	require.NoError(t, err)
	adapter := apigateway.NewAdapter(handler)
	ctx := context.Background()

	reader.On("Read", ctx, "users/42").Return(spap.Content{}, spap.ErrNotFound)
	reader.On("Read", ctx, "index.html").Return(spap.Content{Body: "<html>app</html>", ContentType: "text/html"}, nil)

	resp, err := adapter.HandleRequest(ctx, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Resource:   "/{proxy+}",
		Path:       "/users/42",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html>app</html>", resp.Body)
	assert.False(t, resp.IsBase64Encoded)
}

type MockReader struct {
	mock.Mock
}

func (m *MockReader) Read(ctx context.Context, objectName string) (spap.Content, error) {
	args := m.Called(ctx, objectName)
	return args.Get(0).(spap.Content), args.Error(1)
}
