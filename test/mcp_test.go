package test

import (
	"context"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clientIPTransport tags every MCP request with the same client IP.
type clientIPTransport struct {
	clientIP string
	base     http.RoundTripper
}

func (t *clientIPTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Real-Ip", t.clientIP)
	return t.base.RoundTrip(req)
}

func (s *IntegrationTestSuite) TestMCP_StreamableHTTP() {
	ctx := context.Background()

	transport := &mcp.StreamableClientTransport{
		Endpoint: s.serverEndpoint + "/mcp",
		HTTPClient: &http.Client{
			Transport: &clientIPTransport{
				clientIP: s.clientIP(),
				base:     http.DefaultTransport,
			},
		},
	}
	client := mcp.NewClient(&mcp.Implementation{Name: "integration-test", Version: "0.0.1"}, nil)
	session, err := client.Connect(ctx, transport, nil)
	require.NoError(s.T(), err)
	defer session.Close()

	tools, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(s.T(), err)
	assert.Len(s.T(), tools.Tools, 4)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "get_warmup_prescription",
		Arguments: map[string]any{
			"exercise":       "Deadlift",
			"working_weight": 140,
		},
	})
	require.NoError(s.T(), err)
	require.False(s.T(), res.IsError)
	require.Len(s.T(), res.Content, 1)

	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(s.T(), ok)
	assert.True(s.T(), strings.HasPrefix(text.Text, "# Warm-up: Deadlift (heavy_barbell, 140 kg)"), text.Text)
	assert.Contains(s.T(), text.Text, "| 1 | Empty Bar | 20 kg |")
}
