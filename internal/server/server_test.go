package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/config"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/tools"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := tools.Registry(tools.Deps{
		Config: cfg,
		Rules:  taxrules.Default(),
		Tracer: noop.NewTracerProvider().Tracer("test"),
		Logger: logger,
	})

	srv := httptest.NewServer(NewRouter(handlers, logger))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestListTools(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/tools")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var list []ToolInfo
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list) != len(tools.Descriptions) {
		t.Errorf("expected %d tools, got %d", len(tools.Descriptions), len(list))
	}
}

func TestToolEndpoint(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		tool       string
		body       string
		wantStatus int
		check      func(*testing.T, map[string]interface{})
	}{
		{
			name:       "sip calculator",
			tool:       "sip_calculator",
			body:       `{"monthly_amount": 10000, "annual_rate_percent": 12, "years": 10}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, out map[string]interface{}) {
				projection := out["projection"].(map[string]interface{})
				if projection["total_invested"].(float64) != 1200000 {
					t.Errorf("unexpected projection: %v", projection)
				}
				if len(out["breakdown"].([]interface{})) != 10 {
					t.Errorf("expected 10 breakdown rows")
				}
			},
		},
		{
			name:       "tax calculator",
			tool:       "tax_calculator",
			body:       `{"gain": 100000, "fund_type": "debt", "slab_rate_percent": 30}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, out map[string]interface{}) {
				if out["tax_amount"].(float64) != 30000 {
					t.Errorf("expected tax 30000, got %v", out["tax_amount"])
				}
			},
		},
		{
			name:       "validation error",
			tool:       "lumpsum_calculator",
			body:       `{"principal": 10, "annual_rate_percent": 12, "years": 10}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, out map[string]interface{}) {
				if out["type"] != "validation" {
					t.Errorf("expected validation type, got %v", out["type"])
				}
			},
		},
		{
			name:       "degenerate phased input",
			tool:       "phased_calculator",
			body:       `{"mode": "sip", "amount": 1000, "annual_rate_percent": 12, "invest_years": 0, "hold_years": 4}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "unknown tool",
			tool:       "swp_calculator",
			body:       `{}`,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "body is not an object",
			tool:       "sip_calculator",
			body:       `[1, 2]`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := post(t, srv.URL+"/api/v1/tools/"+tt.tool, tt.body)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%v)", tt.wantStatus, resp.StatusCode, out)
			}
			if tt.check != nil {
				tt.check(t, out)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	post(t, srv.URL+"/api/v1/tools/sip_calculator", `{"monthly_amount": 1000, "annual_rate_percent": 10, "years": 1}`)

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte(`tool_calls_total{status="success",tool_name="sip_calculator"}`)) {
		t.Error("expected tool call counter in /metrics output")
	}
}
