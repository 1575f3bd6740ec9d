package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveServeAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		host    string
		port    int
		want    string
		wantErr bool
	}{
		{name: "default host", host: "", port: 8080, want: "localhost:8080"},
		{name: "explicit host", host: " 127.0.0.1 ", port: 9090, want: "127.0.0.1:9090"},
		{name: "port zero", host: "localhost", port: 0, wantErr: true},
		{name: "port too large", host: "localhost", port: 70000, wantErr: true},
	}

	for _, tt := range tests {
		got, err := resolveServeAddr(tt.host, tt.port)
		if tt.wantErr {
			assert.Error(t, err, tt.name)
			continue
		}
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}
