package igvconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBucket(t *testing.T) {
	t.Setenv("S3_BUCKET", "")

	_, err := Load()

	assert.ErrorContains(t, err, "S3_BUCKET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("S3_BUCKET", "genomics-bams")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "genomics-bams", cfg.S3Bucket)
	assert.Equal(t, 64*1024, cfg.ChunkSize)
	assert.Equal(t, 30*time.Second, cfg.ChunkTimeout)
	assert.Equal(t, 24*time.Hour, cfg.MenuCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.Origins())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("S3_BUCKET", "genomics-bams")
	t.Setenv("APP_ADDR", ":8080")
	t.Setenv("CHUNK_SIZE", "131072")
	t.Setenv("CHUNK_TIMEOUT", "10s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://igv.org, https://example.org")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 131072, cfg.ChunkSize)
	assert.Equal(t, 10*time.Second, cfg.ChunkTimeout)
	assert.Equal(t, []string{"https://igv.org", "https://example.org"}, cfg.Origins())
}

func TestLoadRejectsBadChunkSize(t *testing.T) {
	t.Setenv("S3_BUCKET", "genomics-bams")
	t.Setenv("CHUNK_SIZE", "-1")

	_, err := Load()

	assert.ErrorContains(t, err, "CHUNK_SIZE")
}

func TestConfigStringMasksSecrets(t *testing.T) {
	cfg := &Config{S3Bucket: "b", AirtableAPIKey: "keyXYZ"}

	s := cfg.String()

	assert.NotContains(t, s, "keyXYZ")
	assert.Contains(t, s, "********")
}
