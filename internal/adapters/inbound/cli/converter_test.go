package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/camelgen/camelgen/internal/adapters/inbound/cli"
	"github.com/camelgen/camelgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const converterDir = "../../../../testdata/wsdl2rest/target"

func TestConverterFind_JSON(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"converter", "find", converterDir, "--json"})
	require.NoError(t, cmd.Execute())

	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "wsdl2rest-impl-fatjar-0.8.0.jar", filepath.Base(result["jar"]))
	assert.Equal(t, converterDir, result["search_root"])
}

func TestConverterFind_Text(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"converter", "find", converterDir})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "wsdl2rest-impl-fatjar-0.8.0.jar")
}

func TestConverterFind_Missing(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"converter", "find", t.TempDir()})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
}
