package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bioread/bio-read/internal/config"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ValidateProfileInput defines input for the validate_profile tool
type ValidateProfileInput struct {
	Profile string `json:"profile" jsonschema:"bio-read profile (JSON string or file path)"`
}

// ValidateProfileOutput defines output for the validate_profile tool
type ValidateProfileOutput struct {
	Valid   bool                     `json:"valid"`
	Errors  []config.ValidationError `json:"errors"`
	Summary string                   `json:"summary"`
}

// ValidateProfile checks a profile against the profile schema and the
// template rules
func (s *Service) ValidateProfile(ctx context.Context, req *mcp.CallToolRequest, input ValidateProfileInput) (*mcp.CallToolResult, ValidateProfileOutput, error) {
	content, err := readProfileContent(input.Profile)
	if err != nil {
		return nil, ValidateProfileOutput{}, err
	}

	errs := s.loader.Validator().Validate([]byte(content))
	if len(errs) == 0 {
		// The schema cannot count placeholders; the engine can.
		p, err := s.loader.Parse([]byte(content))
		if err == nil {
			cfg := config.Default(defaultEmphasize, defaultDeEmphasize)
			cfg.Apply(p)
			err = cfg.Validate()
		}
		if err != nil {
			errs = append(errs, config.ValidationError{Path: "$", Message: err.Error(), Code: "CONFIGURATION_ERROR"})
		}
	}

	out := ValidateProfileOutput{Valid: len(errs) == 0, Errors: errs}
	if out.Errors == nil {
		out.Errors = []config.ValidationError{}
	}
	if out.Valid {
		out.Summary = "Profile is valid"
	} else {
		out.Summary = fmt.Sprintf("Profile validation failed with %d error(s)", len(errs))
	}
	return nil, out, nil
}

// readProfileContent returns JSON content as-is and reads anything else as a
// file path.
func readProfileContent(profile string) (string, error) {
	trimmed := strings.TrimSpace(profile)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return profile, nil
	}

	content, err := os.ReadFile(profile)
	if err != nil {
		return "", fmt.Errorf("failed to read profile file '%s': %w", profile, err)
	}
	return string(content), nil
}
