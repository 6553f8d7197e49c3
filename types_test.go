package spap_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/spap"
)

func TestHTTPResponse_JSON(t *testing.T) {
	resp := spap.HTTPResponse{
		StatusCode:      200,
		Headers:         map[string]string{"Content-Type": "image/png"},
		Body:            "iVBORw==",
		IsBase64Encoded: true,
	}

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"statusCode": 200,
		"headers": {"Content-Type": "image/png"},
		"body": "iVBORw==",
		"isBase64Encoded": true
	}`, string(data))
}

func TestResponse_Variants(t *testing.T) {
	tests := []struct {
		name   string
		resp   spap.Response
		status int
	}{
		{
			name:   "found renders 200",
			resp:   spap.Found{Content: spap.Content{Body: "ok"}},
			status: 200,
		},
		{
			name:   "not found renders 404",
			resp:   spap.NotFound{Path: "/missing"},
			status: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, spap.Render(tt.resp).StatusCode)
		})
	}
}

func TestRender_FoundOmitsEmptyHeaders(t *testing.T) {
	resp := spap.Render(spap.Found{Content: spap.Content{Body: "plain"}})

	assert.Empty(t, resp.Headers)
	assert.Equal(t, "plain", resp.Body)
	assert.False(t, resp.IsBase64Encoded)
}
