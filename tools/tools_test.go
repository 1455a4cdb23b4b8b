package tools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/bioread/bio-read/internal/config"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	loader, err := config.NewLoader(config.NewEmbeddedDataProvider())
	if err != nil {
		t.Fatalf("NewLoader() error: %v", err)
	}
	return NewService(loader)
}

func TestBionicRead(t *testing.T) {
	s := newTestService(t)
	tests := []struct {
		name  string
		input BionicReadInput
		want  string
	}{
		{"defaults", BionicReadInput{Text: "hello world"}, "<b>hel</b>lo <b>wor</b>ld"},
		{"markdown profile", BionicReadInput{Text: "hello", Profile: "markdown"}, "**hel**lo"},
		{"profile then override", BionicReadInput{Text: "hello", Profile: "markdown", FixationPoint: 5}, "**he**llo"},
		{"custom templates", BionicReadInput{Text: "a go", Emphasize: "[{}]", DeEmphasize: "({})"}, "[a] [g](o)"},
		{"common words", BionicReadInput{Text: "the end", CommonWords: "builtin"}, "<b>t</b>he <b>e</b>nd"},
		{"unicode segmenter", BionicReadInput{Text: "don't", Segmenter: "unicode"}, "<b>don</b>'t"},
		{"empty", BionicReadInput{Text: ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.BionicRead(context.Background(), nil, tt.input)
			if err != nil {
				t.Fatalf("BionicRead() error: %v", err)
			}
			if out.Output != tt.want {
				t.Errorf("Output = %q, want %q", out.Output, tt.want)
			}
		})
	}
}

func TestBionicRead_Stats(t *testing.T) {
	_, out, err := newTestService(t).BionicRead(context.Background(), nil, BionicReadInput{Text: "one two, three"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Words != 3 || out.Separators != 2 || out.FixationPoint != 3 {
		t.Errorf("unexpected output stats: %+v", out)
	}
}

func TestBionicRead_Errors(t *testing.T) {
	s := newTestService(t)
	tests := []struct {
		name  string
		input BionicReadInput
	}{
		{"fixation point", BionicReadInput{Text: "x", FixationPoint: 6}},
		{"template", BionicReadInput{Text: "x", Emphasize: "<b></b>"}},
		{"unknown profile", BionicReadInput{Text: "x", Profile: "fancy"}},
		{"profile path", BionicReadInput{Text: "x", Profile: "../secret.json"}},
		{"segmenter", BionicReadInput{Text: "x", Segmenter: "regex"}},
		{"too large", BionicReadInput{Text: strings.Repeat("a", MaxTextBytes+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := s.BionicRead(context.Background(), nil, tt.input); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFixationTable(t *testing.T) {
	s := newTestService(t)

	_, out, err := s.FixationTable(context.Background(), nil, FixationTableInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Points) != 5 || len(out.Rows) != 20 {
		t.Errorf("got %d points and %d rows, want 5 and 20", len(out.Points), len(out.Rows))
	}

	_, out, err = s.FixationTable(context.Background(), nil, FixationTableInput{FixationPoint: 3, MaxLength: 5})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Rows) != 5 || out.Rows[4].Heads[0] != 3 {
		t.Errorf("unexpected table: %+v", out.Rows)
	}

	_, out, _ = s.FixationTable(context.Background(), nil, FixationTableInput{MaxLength: 100000})
	if len(out.Rows) != maxTableLength {
		t.Errorf("rows = %d, want cap %d", len(out.Rows), maxTableLength)
	}

	if _, _, err := s.FixationTable(context.Background(), nil, FixationTableInput{FixationPoint: 7}); err == nil {
		t.Error("expected error for invalid fixation point")
	}
}

func TestValidateProfile(t *testing.T) {
	s := newTestService(t)
	tests := []struct {
		name      string
		profile   string
		wantValid bool
		wantCode  string
	}{
		{"valid", `{"fixation_point": 2, "emphasize": "<b>{}</b>"}`, true, ""},
		{"schema violation", `{"fixation_point": 0}`, false, "SCHEMA_VALIDATION_ERROR"},
		{"two placeholders", `{"emphasize": "{}{}"}`, false, "CONFIGURATION_ERROR"},
		{"syntax", `{"fixation_point": }`, false, "JSON_SYNTAX_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := s.ValidateProfile(context.Background(), nil, ValidateProfileInput{Profile: tt.profile})
			if err != nil {
				t.Fatal(err)
			}
			if out.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %+v)", out.Valid, tt.wantValid, out.Errors)
			}
			if tt.wantCode != "" && (len(out.Errors) == 0 || out.Errors[0].Code != tt.wantCode) {
				t.Errorf("errors = %+v, want code %s", out.Errors, tt.wantCode)
			}
			if out.Summary == "" {
				t.Error("empty summary")
			}
		})
	}
}

func TestValidateProfile_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	if err := os.WriteFile(path, []byte(`{"segmenter": "unicode"}`), 0644); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t)
	_, out, err := s.ValidateProfile(context.Background(), nil, ValidateProfileInput{Profile: path})
	if err != nil {
		t.Fatal(err)
	}
	if !out.Valid {
		t.Errorf("expected valid profile, got %+v", out.Errors)
	}

	if _, _, err := s.ValidateProfile(context.Background(), nil, ValidateProfileInput{Profile: path + ".missing"}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRegisterTools_InMemorySession(t *testing.T) {
	ctx := context.Background()
	server := mcp.NewServer(&mcp.Implementation{Name: "bio-read-test", Version: "test"}, nil)
	if n := RegisterTools(server, newTestService(t)); n != 3 {
		t.Errorf("RegisterTools() = %d, want 3", n)
	}

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "test"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer cs.Close()

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "bionic_read",
		Arguments: map[string]any{"text": "hello", "profile": "markdown"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
	structured, ok := res.StructuredContent.(map[string]any)
	if !ok {
		t.Fatalf("StructuredContent is %T", res.StructuredContent)
	}
	if structured["output"] != "**hel**lo" {
		t.Errorf("output = %v, want **hel**lo", structured["output"])
	}
}

func TestBionicRead_Concurrent(t *testing.T) {
	s := newTestService(t)
	inputs := []BionicReadInput{
		{Text: "hello world", Profile: "markdown"},
		{Text: "hello world", FixationPoint: 5},
		{Text: "the end", CommonWords: "english"},
		{Text: "don't stop", Segmenter: "unicode"},
	}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		_, out, err := s.BionicRead(context.Background(), nil, in)
		if err != nil {
			t.Fatal(err)
		}
		want[i] = out.Output
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, in := range inputs {
				_, out, err := s.BionicRead(context.Background(), nil, in)
				if err != nil {
					t.Error(err)
					return
				}
				if out.Output != want[i] {
					t.Errorf("concurrent output %q, want %q", out.Output, want[i])
				}
			}
		}()
	}
	wg.Wait()
}
