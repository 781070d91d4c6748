package config

import (
	"os"
	"testing"
)

func TestExpandEnv(t *testing.T) {
	os.Setenv("TEST_CONFIG_VAR", "from-env")
	defer os.Unsetenv("TEST_CONFIG_VAR")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "set variable",
			in:   "value: ${TEST_CONFIG_VAR}",
			want: "value: from-env",
		},
		{
			name: "set variable ignores default",
			in:   "value: ${TEST_CONFIG_VAR:fallback}",
			want: "value: from-env",
		},
		{
			name: "unset variable with default",
			in:   "value: ${TEST_CONFIG_MISSING:fallback}",
			want: "value: fallback",
		},
		{
			name: "unset variable with empty default",
			in:   "value: ${TEST_CONFIG_MISSING:}",
			want: "value: ",
		},
		{
			name: "unset variable without default keeps placeholder",
			in:   "value: ${TEST_CONFIG_MISSING}",
			want: "value: ${TEST_CONFIG_MISSING}",
		},
		{
			name: "multiple placeholders",
			in:   "${TEST_CONFIG_VAR}:${TEST_CONFIG_MISSING:6379}",
			want: "from-env:6379",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnv(tt.in); got != tt.want {
				t.Errorf("expandEnv(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(dir+"/configs", 0o755); err != nil {
		t.Fatal(err)
	}
	base := `
app:
  name: test-api
  env: test
server:
  http:
    port: 9090
embedding:
  dimension: 768
`
	if err := os.WriteFile(dir+"/configs/config.yaml", []byte(base), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.App.Name != "test-api" {
		t.Errorf("App.Name = %q, want %q", cfg.App.Name, "test-api")
	}
	if cfg.Server.HTTP.Port != 9090 {
		t.Errorf("Server.HTTP.Port = %d, want 9090", cfg.Server.HTTP.Port)
	}
	if cfg.Embedding.Dimension != 768 {
		t.Errorf("Embedding.Dimension = %d, want 768", cfg.Embedding.Dimension)
	}
	// 未覆盖的字段应取默认值
	if cfg.Vector.Milvus.Port != 19530 {
		t.Errorf("Vector.Milvus.Port = %d, want default 19530", cfg.Vector.Milvus.Port)
	}
	if cfg.Image.Model != "dall-e-3" {
		t.Errorf("Image.Model = %q, want default %q", cfg.Image.Model, "dall-e-3")
	}
}
