package constants

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultValues(t *testing.T) {
	if DefaultPort != "8787" {
		t.Errorf("Expected DefaultPort to be '8787', got '%s'", DefaultPort)
	}

	if DefaultSettingsPath != "./settings.json" {
		t.Errorf("Expected DefaultSettingsPath to be './settings.json', got '%s'", DefaultSettingsPath)
	}

	if DefaultCacheDir != "./cache" {
		t.Errorf("Expected DefaultCacheDir to be './cache', got '%s'", DefaultCacheDir)
	}

	if DefaultAudioQuality != "highestaudio" {
		t.Errorf("Expected DefaultAudioQuality to be 'highestaudio', got '%s'", DefaultAudioQuality)
	}
}

func TestPlayerClients(t *testing.T) {
	clients := strings.Split(DefaultPlayerClients, ",")
	if len(clients) != 2 || clients[0] != "IOS" || clients[1] != "WEB_CREATOR" {
		t.Errorf("Unexpected player clients: %v", clients)
	}
}

func TestCompressionBounds(t *testing.T) {
	if DefaultCompression < 0 || DefaultCompression > MaxCompressionLevel {
		t.Errorf("DefaultCompression %d outside 0..%d", DefaultCompression, MaxCompressionLevel)
	}
}

func TestTimeouts(t *testing.T) {
	if DefaultHTTPTimeout != 5*time.Minute {
		t.Errorf("Expected DefaultHTTPTimeout to be 5 minutes, got %v", DefaultHTTPTimeout)
	}

	if ImageHTTPTimeout != 30*time.Second {
		t.Errorf("Expected ImageHTTPTimeout to be 30 seconds, got %v", ImageHTTPTimeout)
	}

	if DefaultCatalogCacheTTL != 12*time.Hour {
		t.Errorf("Expected DefaultCatalogCacheTTL to be 12 hours, got %v", DefaultCatalogCacheTTL)
	}
}

func TestPlayableDuration(t *testing.T) {
	if MaxPlayableDuration != 1200 {
		t.Errorf("Expected MaxPlayableDuration to be 1200, got %d", MaxPlayableDuration)
	}
}

func TestFilePermissions(t *testing.T) {
	if DirPermissions != 0755 {
		t.Errorf("Expected DirPermissions to be 0755, got %o", DirPermissions)
	}

	if FilePermissions != 0644 {
		t.Errorf("Expected FilePermissions to be 0644, got %o", FilePermissions)
	}
}

func TestInvalidPathChars(t *testing.T) {
	for _, c := range []string{"<", ">", ":", "\"", "/", "\\", "|", "?", "*"} {
		if !strings.Contains(InvalidPathChars, c) {
			t.Errorf("Expected InvalidPathChars to contain %q", c)
		}
	}
}
