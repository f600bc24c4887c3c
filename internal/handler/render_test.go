package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/classbanner/internal/banner"
)

func newTestRenderHandler() *RenderHandler {
	return NewRenderHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), 1<<20)
}

func postRender(h *RenderHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Render(rr, req)
	return rr
}

func decodeRender(t *testing.T, rr *httptest.ResponseRecorder) renderResponse {
	t.Helper()
	var resp renderResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestRender_DynamicSeparation(t *testing.T) {
	rr := postRender(newTestRenderHandler(), `{
		"html": "<html><body><p>x</p></body></html>",
		"calls": [{"method": "init", "options": {"level": "S-2P", "dynamic": true, "dynamicBanner": true}}]
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	resp := decodeRender(t, rr)
	if resp.Banners != 4 {
		t.Errorf("expected 4 banners, got %d", resp.Banners)
	}
	want := `<body><div class="classBanner Dynamic">DYNAMIC PAGE - HIGHEST POSSIBLE CLASSIFICATION IS</div>` +
		`<div class="classBanner Secret">SECRET//REL TO USA, AUS, CAN, GBR, NZL</div><p>x</p>` +
		`<div class="classBanner Secret">SECRET//REL TO USA, AUS, CAN, GBR, NZL</div>` +
		`<div class="classBanner Dynamic">DYNAMIC PAGE - HIGHEST POSSIBLE CLASSIFICATION IS</div></body>`
	if !strings.Contains(resp.HTML, want) {
		t.Errorf("unexpected html:\n%s", resp.HTML)
	}
}

func TestRender_ChainedCalls(t *testing.T) {
	rr := postRender(newTestRenderHandler(), `{
		"html": "<p>x</p>",
		"calls": [
			{"options": {"level": "U", "dynamic": true}},
			{"method": "set", "level": "S-NF"},
			{"method": "hide"}
		]
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	resp := decodeRender(t, rr)
	if resp.Settings != (banner.Settings{Level: banner.LevelSecretNF, Dynamic: true}) {
		t.Errorf("unexpected settings %+v", resp.Settings)
	}
	if got := strings.Count(resp.HTML, `style="display: none"`); got != 2 {
		t.Errorf("expected 2 hidden banners, got %d", got)
	}
}

func TestRender_NoCallsUsesDefaults(t *testing.T) {
	rr := postRender(newTestRenderHandler(), `{"html": "<p>x</p>"}`)

	resp := decodeRender(t, rr)
	if resp.Settings != banner.Defaults() {
		t.Errorf("expected default settings, got %+v", resp.Settings)
	}
	if !strings.Contains(resp.HTML, "UNCLASSIFIED//FOR OFFICIAL USE ONLY") {
		t.Errorf("expected default banner text, got %s", resp.HTML)
	}
}

func TestRender_UnknownOptionKeysIgnored(t *testing.T) {
	rr := postRender(newTestRenderHandler(), `{"html": "<p>x</p>", "calls": [{"options": {"level": "C-NF", "sparkle": true}}]}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
}

func TestRender_InvalidMethod(t *testing.T) {
	rr := postRender(newTestRenderHandler(), `{"html": "<p>x</p>", "calls": [{"method": "frobnicate"}]}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "frobnicate") {
		t.Errorf("expected error to name the method, got %s", rr.Body.String())
	}
}

func TestRender_BadJSON(t *testing.T) {
	rr := postRender(newTestRenderHandler(), `{"html": `)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestRender_UnknownTopLevelKey(t *testing.T) {
	rr := postRender(newTestRenderHandler(), `{"html": "<p>x</p>", "level": "S-NF"}`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestLevels(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRenderHandler().Levels(rr, httptest.NewRequest(http.MethodGet, "/api/levels", nil))

	var resp struct {
		Levels []levelInfo `json:"levels"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Levels) != 8 {
		t.Fatalf("expected 8 levels, got %d", len(resp.Levels))
	}
	last := resp.Levels[7]
	if last.Code != banner.LevelTopSecret2P || last.Variant != banner.VariantTopSecretYellow || last.Family != "TOP SECRET" {
		t.Errorf("unexpected entry %+v", last)
	}
}
