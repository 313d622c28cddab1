package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/surangaprinters/printshop-backend/pkg/config"
)

func testConfig() config.CloudinaryConfig {
	return config.CloudinaryConfig{
		CloudName:     "demo",
		APIKey:        "key123",
		APISecret:     "secret456",
		UploadTimeout: 5 * time.Second,
	}
}

func TestUploadSignsAndDecodesResponse(t *testing.T) {
	var gotPath string
	var gotSignature string
	var gotTimestamp string
	var gotFolder string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotSignature = r.FormValue("signature")
		gotTimestamp = r.FormValue("timestamp")
		gotFolder = r.FormValue("folder")
		require.Equal(t, "key123", r.FormValue("api_key"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "logo.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_id":"quotes/abc","secure_url":"https://res.cloudinary.com/demo/quotes/abc.png","resource_type":"image","bytes":42}`))
	}))
	defer server.Close()

	client, err := newClient(testConfig(), server.URL)
	require.NoError(t, err)
	client.now = func() time.Time { return time.Unix(1700000000, 0) }

	result, err := client.Upload(context.Background(), []byte("png-bytes"), UploadParams{
		Folder:       "quotes",
		ResourceType: ResourceTypeImage,
		FileName:     "logo.png",
	})
	require.NoError(t, err)
	require.Equal(t, "quotes/abc", result.PublicID)
	require.Equal(t, "https://res.cloudinary.com/demo/quotes/abc.png", result.SecureURL)

	require.Equal(t, "/demo/image/upload", gotPath)
	require.Equal(t, "1700000000", gotTimestamp)
	require.Equal(t, "quotes", gotFolder)

	sum := sha1.Sum([]byte("folder=quotes&timestamp=1700000000" + "secret456"))
	require.Equal(t, hex.EncodeToString(sum[:]), gotSignature)
}

func TestUploadRejectsIncompleteMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"public_id":"","secure_url":""}`))
	}))
	defer server.Close()

	client, err := newClient(testConfig(), server.URL)
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), []byte("data"), UploadParams{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "incomplete metadata")
}

func TestUploadSurfacesAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid signature"}}`))
	}))
	defer server.Close()

	client, err := newClient(testConfig(), server.URL)
	require.NoError(t, err)

	_, err = client.Upload(context.Background(), []byte("data"), UploadParams{ResourceType: ResourceTypeRaw})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid signature")
}

func TestDestroySendsSignedForm(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/demo/raw/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "quotes/abc", r.FormValue("public_id"))
		require.NotEmpty(t, r.FormValue("signature"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	}))
	defer server.Close()

	client, err := newClient(testConfig(), server.URL)
	require.NoError(t, err)

	require.NoError(t, client.Destroy(context.Background(), "quotes/abc", ResourceTypeRaw))
}

func TestDestroyTreatsNotFoundAsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"not found"}`))
	}))
	defer server.Close()

	client, err := newClient(testConfig(), server.URL)
	require.NoError(t, err)

	require.NoError(t, client.Destroy(context.Background(), "quotes/gone", ResourceTypeImage))
}

func TestPingUsesBasicAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "key123", user)
		require.Equal(t, "secret456", pass)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	client, err := newClient(testConfig(), server.URL)
	require.NoError(t, err)

	require.NoError(t, client.Ping(context.Background()))
}
