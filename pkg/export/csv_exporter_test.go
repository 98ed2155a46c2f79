package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	exporter := NewCSVExporter()
	out, err := exporter.Render(Dataset{
		Headers: []string{"Fase", "Marcador"},
		Rows: []map[string]string{
			{"Fase": "Grupos", "Marcador": "2-1"},
			{"Fase": "Semifinal"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Fase,Marcador\nGrupos,2-1\nSemifinal,\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	exporter := NewCSVExporter()
	_, err := exporter.Render(Dataset{})
	require.Error(t, err)
}
