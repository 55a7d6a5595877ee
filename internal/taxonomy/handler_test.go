package taxonomy

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/arix-backend/internal/httperr"
	"go.uber.org/zap"
)

func TestAnimeRoutes(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: httperr.Handler(zap.NewNop())})
	NewHandler().RegisterPublicRoutes(app)

	res, err := app.Test(httptest.NewRequest("GET", "/api/anime/One-Piece", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200 got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), `"name":"One Piece"`) {
		t.Fatalf("unexpected body: %s", b)
	}

	res2, _ := app.Test(httptest.NewRequest("GET", "/api/anime/attack-on-titan", nil))
	if res2.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown slug, got %d", res2.StatusCode)
	}

	res3, _ := app.Test(httptest.NewRequest("GET", "/api/taxonomy", nil))
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), "drop-shoulder") || !strings.Contains(string(b3), `"XL"`) {
		t.Fatalf("taxonomy missing categories or sizes: %s", b3)
	}
}

func TestPredicates(t *testing.T) {
	if !IsAnime("Demon Slayer") || IsAnime("demon slayer") {
		t.Fatalf("IsAnime must match exact names")
	}
	if !IsCategory("normal") || IsCategory("oversized") {
		t.Fatalf("unexpected IsCategory result")
	}
	if !IsSize("XL") || IsSize("S") {
		t.Fatalf("unexpected IsSize result")
	}
}
