package convertertest_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/camelgen/camelgen/internal/adapters/outbound/converter/convertertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespacePackage(t *testing.T) {
	assert.Equal(t, "org.jboss.fuse.wsdl2rest.test.doclit", convertertest.NamespacePackage("http://doclit.test.wsdl2rest.fuse.jboss.org/"))
	assert.Equal(t, "com.example.hello.v1", convertertest.NamespacePackage("http://www.example.com/hello/v1"))
	assert.Equal(t, "generated", convertertest.NamespacePackage("urn:hello"))
}

func TestParseArgs_RejectsUnknownOption(t *testing.T) {
	_, err := convertertest.ParseArgs([]string{"--wsdl", "a", "--out", "b", "--bogus", "c"})
	assert.Error(t, err)

	_, err = convertertest.ParseArgs([]string{"--wsdl"})
	assert.Error(t, err)
}

func TestEmulate_FetchesRemoteWSDL(t *testing.T) {
	data, err := os.ReadFile("../../../../../testdata/wsdl/helloworld.wsdl")
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	out := t.TempDir()
	written, err := convertertest.Emulate([]string{"-jar", "w2r.jar", "--wsdl", srv.URL + "/hello?wsdl", "--out", out})
	require.NoError(t, err)
	require.NotEmpty(t, written)
	assert.FileExists(t, filepath.Join(out, "org", "helloworld", "test", "jaxws", "HelloService.java"))
}

func TestEmulate_FailingEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := convertertest.Emulate([]string{"--wsdl", srv.URL, "--out", t.TempDir()})
	assert.Error(t, err)
}
