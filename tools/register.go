package tools

import "github.com/modelcontextprotocol/go-sdk/mcp"

// RegisterTools registers the bio-read tools with the MCP server and returns
// how many were added.
func RegisterTools(server *mcp.Server, s *Service) int {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "bionic_read",
			Description: "Applies bionic-reading emphasis to text: the leading part of every word is wrapped in the emphasis template and the rest in the de-emphasis template. Whitespace and punctuation are preserved exactly. Defaults to HTML bold for the emphasized part and plain text for the rest.",
		},
		s.BionicRead,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "fixation_table",
			Description: "Shows how many leading characters are emphasized for each word length at one or all fixation points (1 = most emphasis, 5 = least).",
		},
		s.FixationTable,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "validate_profile",
			Description: "Validates a bio-read JSON profile (fixation_point, emphasize, de_emphasize, delimiters, segmenter, common_words) against the profile schema and the template rules.",
		},
		s.ValidateProfile,
	)

	return 3
}
