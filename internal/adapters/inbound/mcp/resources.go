package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/camelgen/camelgen/internal/domain"
)

type dslInfo struct {
	Name              string `json:"name"`
	ResourceFile      string `json:"resource_file"`
	SupportsWsdl2Rest bool   `json:"supports_wsdl2rest"`
}

// registerResources registers all camelgen MCP resources on the given server.
func registerResources(s *server.MCPServer) {
	s.AddResource(
		mcplib.NewResource(
			"camelgen://dsls",
			"Camel DSLs",
			mcplib.WithResourceDescription("Supported Camel DSLs, their route resource files and wsdl2rest support"),
			mcplib.WithMIMEType("application/json"),
		),
		handleDSLsResource(),
	)
}

func handleDSLsResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(dslCatalog(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling dsls: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "camelgen://dsls",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func dslCatalog() []dslInfo {
	infos := make([]dslInfo, 0, len(domain.ValidDSLs))
	for _, d := range domain.ValidDSLs {
		infos = append(infos, dslInfo{Name: string(d), ResourceFile: d.ResourceFile(), SupportsWsdl2Rest: d.SupportsWsdl2Rest()})
	}
	return infos
}
