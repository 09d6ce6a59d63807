package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
version: "1"
packages: [./store]
records:
  - type: store.Order
    members: [int64, int64, OrderStatus, int64, "[]OrderItem", time.Time]
  - type: store.Customer
    name: Client
    readonly: true
  - type: " store.Audit "
    output: ./views
`

const sampleTOML = `
version = "1"
packages = ["./store"]

[[records]]
type = "store.Order"
members = ["int64", "int64", "OrderStatus", "int64", "[]OrderItem", "time.Time"]

[[records]]
type = "store.Customer"
name = "Client"
readonly = true

[[records]]
type = " store.Audit "
output = "./views"
`

func assertSample(t *testing.T, m *Manifest) {
	t.Helper()

	assert.Equal(t, "1", m.Version)
	assert.Equal(t, []string{"./store"}, m.Packages)
	require.Len(t, m.Records, 3)

	order := m.Records[0]
	assert.Equal(t, "store.Order", order.Type)
	assert.True(t, order.HasMembers())
	assert.Len(t, order.Members, 6)
	assert.Equal(t, "[]OrderItem", order.Members[4])
	assert.Equal(t, "Order", order.Identifier())
	assert.False(t, order.ReadOnly)

	customer := m.Records[1]
	assert.Equal(t, "Client", customer.Identifier())
	assert.Equal(t, "Customer", customer.TypeName())
	assert.True(t, customer.ReadOnly)
	assert.False(t, customer.HasMembers())

	audit := m.Records[2]
	assert.Equal(t, "store.Audit", audit.Type, "type is trimmed")
	assert.Equal(t, "./views", audit.Output)
}

func TestParse_YAML(t *testing.T) {
	m, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)
	assertSample(t, m)
}

func TestParse_TOML(t *testing.T) {
	m, err := Parse([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)
	assertSample(t, m)
}

func TestParse_Defaults(t *testing.T) {
	m, err := Parse([]byte("records:\n  - type: Order\n"), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, m.Version)
	assert.Equal(t, []string{"."}, m.Packages)
	assert.Equal(t, "Order", m.Records[0].TypeName())
}

func TestParse_Empty(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML} {
		m, err := Parse(nil, format)
		require.NoError(t, err, format)
		assert.Empty(t, m.Records)
		assert.Equal(t, CurrentVersion, m.Version)
	}
}

func TestParse_EmptyMemberList(t *testing.T) {
	m, err := Parse([]byte("records:\n  - type: Marker\n    members: []\n"), FormatYAML)
	require.NoError(t, err)

	assert.True(t, m.Records[0].HasMembers(), "an explicit empty list is still declared")
	assert.Empty(t, m.Records[0].Members)
}

func TestParse_UnknownKeys(t *testing.T) {
	_, err := Parse([]byte("records:\n  - type: Order\n    fields: [a]\n"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fields")

	_, err = Parse([]byte("[[records]]\ntype = \"Order\"\nfields = [\"a\"]\n"), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "records.fields")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("records: [\n"), FormatYAML)
	require.Error(t, err)

	_, err = Parse([]byte("records = \n"), FormatTOML)
	require.Error(t, err)

	_, err = Parse([]byte("{}"), Format("json"))
	require.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"structview.yaml", FormatYAML, false},
		{"dir/structview.YML", FormatYAML, false},
		{"structview.toml", FormatTOML, false},
		{"structview.json", "", true},
		{"structview", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteFile_RoundTrip(t *testing.T) {
	src, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	for _, name := range []string{"out.yaml", "out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteFile(src, path))

			loaded, err := LoadFile(path)
			require.NoError(t, err)

			assert.Equal(t, filepath.Dir(path), loaded.Dir)
			loaded.Dir = ""
			assert.Equal(t, src, loaded)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("version: [\n"), 0o644))

	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}
