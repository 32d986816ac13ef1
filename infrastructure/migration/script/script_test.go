package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeedAccounts(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []seedAccount
		wantErr bool
	}{
		{name: "Sem contas", args: nil, want: []seedAccount{}},
		{
			name: "Contas válidas",
			args: []string{"cust-1:1444838296485002", "cust-2:act_1863484354144119"},
			want: []seedAccount{
				{CustomerID: "cust-1", ExternalID: "1444838296485002"},
				{CustomerID: "cust-2", ExternalID: "act_1863484354144119"},
			},
		},
		{name: "Sem separador", args: []string{"cust-1"}, wantErr: true},
		{name: "Id externo vazio", args: []string{"cust-1:"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSeedAccounts(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	for _, stmt := range schema {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}
}
