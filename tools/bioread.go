package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/bioread/bio-read/internal/config"
	"github.com/bioread/bio-read/internal/fixation"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// MaxTextBytes bounds the text accepted by a single bionic_read call.
	MaxTextBytes = 1 << 20

	defaultEmphasize   = "<b>{}</b>"
	defaultDeEmphasize = "{}"
	maxTableLength     = 200
)

// Service holds what the tool handlers share.
type Service struct {
	loader *config.Loader
}

// NewService returns a Service resolving profiles through loader.
func NewService(loader *config.Loader) *Service {
	return &Service{loader: loader}
}

// BionicReadInput defines input for the bionic_read tool
type BionicReadInput struct {
	Text          string `json:"text" jsonschema:"Text to transform"`
	Profile       string `json:"profile,omitempty" jsonschema:"Built-in profile applied before the other options: html, markdown or reader (optional)"`
	FixationPoint int    `json:"fixation_point,omitempty" jsonschema:"Fixation point from 1 (most emphasis) to 5 (least) (optional, defaults to 3)"`
	Emphasize     string `json:"emphasize,omitempty" jsonschema:"Emphasis template with exactly one {} placeholder (optional, defaults to <b>{}</b>)"`
	DeEmphasize   string `json:"de_emphasize,omitempty" jsonschema:"De-emphasis template with exactly one {} placeholder (optional, defaults to {})"`
	CommonWords   string `json:"common_words,omitempty" jsonschema:"Common-word set whose words get a one-letter head: none, builtin or english (optional)"`
	Segmenter     string `json:"segmenter,omitempty" jsonschema:"Word segmenter: classify or unicode (optional, defaults to classify)"`
}

// BionicReadOutput defines output for the bionic_read tool
type BionicReadOutput struct {
	Output        string `json:"output"`
	Words         int    `json:"words"`
	Separators    int    `json:"separators"`
	FixationPoint int    `json:"fixation_point"`
}

// BionicRead transforms the given text
func (s *Service) BionicRead(ctx context.Context, req *mcp.CallToolRequest, input BionicReadInput) (*mcp.CallToolResult, BionicReadOutput, error) {
	if len(input.Text) > MaxTextBytes {
		return nil, BionicReadOutput{}, fmt.Errorf("text is %d bytes, limit is %d", len(input.Text), MaxTextBytes)
	}

	cfg, err := s.resolve(input)
	if err != nil {
		return nil, BionicReadOutput{}, err
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, BionicReadOutput{}, err
	}

	var out strings.Builder
	stats, err := engine.Run(cfg.Scanner(strings.NewReader(input.Text)), &out)
	if err != nil {
		return nil, BionicReadOutput{}, fmt.Errorf("failed to transform text: %w", err)
	}

	return nil, BionicReadOutput{
		Output:        out.String(),
		Words:         stats.Words,
		Separators:    stats.Separators,
		FixationPoint: cfg.FixationPoint,
	}, nil
}

// resolve layers defaults, the optional built-in profile and the explicit
// input fields.
func (s *Service) resolve(input BionicReadInput) (config.Config, error) {
	cfg := config.Default(defaultEmphasize, defaultDeEmphasize)
	if input.Profile != "" {
		if strings.ContainsAny(input.Profile, `/\.`) {
			return cfg, fmt.Errorf("profile %q: only built-in profile names are accepted", input.Profile)
		}
		p, err := s.loader.Load(input.Profile)
		if err != nil {
			return cfg, err
		}
		cfg.Apply(p)
	}

	if input.FixationPoint != 0 {
		cfg.FixationPoint = input.FixationPoint
	}
	if input.Emphasize != "" {
		cfg.Emphasize = input.Emphasize
	}
	if input.DeEmphasize != "" {
		cfg.DeEmphasize = input.DeEmphasize
	}
	if input.CommonWords != "" {
		cfg.CommonWords = input.CommonWords
	}
	if input.Segmenter != "" {
		cfg.Segmenter = input.Segmenter
	}
	return cfg, cfg.Validate()
}

// FixationTableInput defines input for the fixation_table tool
type FixationTableInput struct {
	FixationPoint int `json:"fixation_point,omitempty" jsonschema:"Single fixation point to tabulate (optional, defaults to all five)"`
	MaxLength     int `json:"max_length,omitempty" jsonschema:"Longest word length to tabulate (optional, defaults to 20, at most 200)"`
}

// FixationTableOutput defines output for the fixation_table tool
type FixationTableOutput struct {
	Points []int          `json:"points"`
	Rows   []fixation.Row `json:"rows"`
}

// FixationTable reports how many leading characters get emphasized per word length
func (s *Service) FixationTable(ctx context.Context, req *mcp.CallToolRequest, input FixationTableInput) (*mcp.CallToolResult, FixationTableOutput, error) {
	maxLength := input.MaxLength
	if maxLength <= 0 {
		maxLength = 20
	}
	if maxLength > maxTableLength {
		maxLength = maxTableLength
	}

	points := fixation.AllPoints()
	if input.FixationPoint != 0 {
		points = []int{input.FixationPoint}
	}
	rows, err := fixation.Rows(points, maxLength)
	if err != nil {
		return nil, FixationTableOutput{}, err
	}
	return nil, FixationTableOutput{Points: points, Rows: rows}, nil
}
