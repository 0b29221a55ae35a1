package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/produktlister/backend/internal/domain"
)

func newTestClient(baseURL, apiKey string) *Client {
	return NewClient(Config{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       "test-model",
		Timeout:     5 * time.Second,
		Temperature: 0.7,
		MaxTokens:   700,
	}, nil)
}

// chatServer returns an httptest server answering every request with the
// given content.
func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		resp := chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateTitle_Success(t *testing.T) {
	server := chatServer(t, `"Mivolis Magnesium Tabletten 96 St"`)
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	title, err := client.GenerateTitle(context.Background(), "Magnesium Tabletten", "Mivolis", "")

	require.NoError(t, err)
	// Surrounding quotes are stripped.
	assert.Equal(t, "Mivolis Magnesium Tabletten 96 St", title)
}

func TestGenerateTitle_TruncatesTo80(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "äbc"
	}
	server := chatServer(t, long)
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	title, err := client.GenerateTitle(context.Background(), "X", "", "")

	require.NoError(t, err)
	assert.Equal(t, 80, len([]rune(title)))
}

func TestGenerateTitle_MissingAPIKey(t *testing.T) {
	client := newTestClient("http://localhost:1", "")

	_, err := client.GenerateTitle(context.Background(), "X", "", "")

	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)
}

func TestCall_Non200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.GenerateTitle(context.Background(), "X", "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAIRequestFailed)
	assert.Contains(t, err.Error(), "429")
}

func TestCall_APIErrorObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error":{"message":"model not found","code":404}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.GenerateTitle(context.Background(), "X", "", "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAIRequestFailed)
	assert.Contains(t, err.Error(), "model not found")
}

func TestCall_MissingChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.GenerateTitle(context.Background(), "X", "", "")

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestCall_EmptyContent(t *testing.T) {
	server := chatServer(t, "   ")
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.GenerateTitle(context.Background(), "X", "", "")

	assert.ErrorIs(t, err, domain.ErrEmptyContent)
}

func TestGenerateBulletPoints_ParsesMarkers(t *testing.T) {
	server := chatServer(t, "Hier sind die Punkte:\n- Erster Punkt\n• Zweiter Punkt\n* Dritter Punkt\nkein Punkt\n- Vierter Punkt")
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	bullets, err := client.GenerateBulletPoints(context.Background(), "X", "Beschreibung", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"Erster Punkt", "Zweiter Punkt", "Dritter Punkt", "Vierter Punkt"}, bullets)
}

func TestGenerateBulletPoints_CapsAtSix(t *testing.T) {
	server := chatServer(t, "- a\n- b\n- c\n- d\n- e\n- f\n- g\n- h")
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	bullets, err := client.GenerateBulletPoints(context.Background(), "X", "", nil)

	require.NoError(t, err)
	assert.Len(t, bullets, 6)
}

func TestGenerateBulletPoints_NoBulletLines(t *testing.T) {
	server := chatServer(t, "Leider kann ich keine Bullet Points erstellen.")
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.GenerateBulletPoints(context.Background(), "X", "", nil)

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestGenerateHTMLDescription_Success(t *testing.T) {
	server := chatServer(t, "<ul><li>Gut</li></ul><p>Produkt</p>")
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	desc, err := client.GenerateHTMLDescription(context.Background(), "X", "Beschreibung", []string{"Gut"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "<ul><li>Gut</li></ul><p>Produkt</p>", desc)
}

func TestGenerateHTMLDescription_NotHTMLShaped(t *testing.T) {
	server := chatServer(t, "Nur Text ohne Markup")
	defer server.Close()

	client := newTestClient(server.URL, "test-key")

	_, err := client.GenerateHTMLDescription(context.Background(), "X", "", nil, nil)

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestTestConnection(t *testing.T) {
	t.Run("acknowledged", func(t *testing.T) {
		server := chatServer(t, "OK")
		defer server.Close()

		status := newTestClient(server.URL, "test-key").TestConnection(context.Background())

		assert.True(t, status.Success)
		assert.Equal(t, "API bağlantısı başarılı", status.Message)
	})

	t.Run("unexpected answer still counts as reachable", func(t *testing.T) {
		server := chatServer(t, "Hallo! Wie kann ich helfen?")
		defer server.Close()

		status := newTestClient(server.URL, "test-key").TestConnection(context.Background())

		assert.True(t, status.Success)
		assert.Contains(t, status.Message, "beklenen 'OK' değil")
	})

	t.Run("missing key", func(t *testing.T) {
		status := newTestClient("http://localhost:1", "").TestConnection(context.Background())

		assert.False(t, status.Success)
		assert.Contains(t, status.Message, domain.ErrMissingAPIKey.Error())
	})

	t.Run("transport failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		status := newTestClient(server.URL, "test-key").TestConnection(context.Background())

		assert.False(t, status.Success)
	})
}

func TestFormatSpecs(t *testing.T) {
	assert.Equal(t, "", formatSpecs(nil))
	assert.Equal(t, "", formatSpecs(map[string]string{"marke": ""}))
	assert.Equal(t, "formulierung: Tabletten\nmarke: Mivolis",
		formatSpecs(map[string]string{"marke": "Mivolis", "formulierung": "Tabletten", "versorgung": ""}))
}
