package application

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camelgen/camelgen/internal/adapters/outbound/artifact"
	"github.com/camelgen/camelgen/internal/adapters/outbound/converter"
	"github.com/camelgen/camelgen/internal/adapters/outbound/converter/convertertest"
	"github.com/camelgen/camelgen/internal/adapters/outbound/gitinfo"
	"github.com/camelgen/camelgen/internal/adapters/outbound/reconciler"
	"github.com/camelgen/camelgen/internal/adapters/outbound/templates"
	"github.com/camelgen/camelgen/internal/domain"
)

const converterDir = "../../testdata/wsdl2rest/target"

func newScaffoldService(runner domain.CommandRunner, searchRoot string) *ScaffoldService {
	return NewScaffoldService(
		templates.New(nil),
		artifact.New(),
		converter.New(runner, "java", 0, nil),
		reconciler.New(),
		gitinfo.New(),
		searchRoot,
		nil,
	)
}

func wsdlFixture(t *testing.T, name string) string {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("../../testdata/wsdl", name))
	require.NoError(t, err)
	return abs
}

func baseRequest(t *testing.T, dsl domain.DSL) domain.ScaffoldRequest {
	return domain.ScaffoldRequest{
		Name:         "MyAppMock",
		Package:      "com.generator.mock",
		CamelVersion: domain.DefaultCamelVersion,
		DSL:          dsl,
		Destination:  filepath.Join(t.TempDir(), "MyAppMock"),
	}
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestScaffold_SpringWithoutBridge(t *testing.T) {
	runner := &convertertest.FakeRunner{}
	svc := newScaffoldService(runner, converterDir)
	req := baseRequest(t, domain.DSLSpring)

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, result.Files, "pom.xml")
	assert.Contains(t, result.Files, "README.md")
	assert.Contains(t, result.Files, "src/main/resources/META-INF/spring/camel-context.xml")
	assert.Empty(t, result.ConverterJar)
	assert.Nil(t, result.Merge)
	assert.Empty(t, runner.Calls(), "converter must not run without wsdl2rest")
	assert.NoFileExists(t, filepath.Join(req.Destination, domain.FragmentFileName))
	assert.Contains(t, readFile(t, req.Destination, "pom.xml"), "<groupId>com.generator.mock</groupId>")
}

func TestScaffold_DSLIsCaseInsensitive(t *testing.T) {
	runner := &convertertest.FakeRunner{}
	svc := newScaffoldService(runner, converterDir)
	req := baseRequest(t, domain.DSL("Blueprint"))
	req.Wsdl2Rest = true
	req.WSDL = wsdlFixture(t, "address.wsdl")

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.DSLBlueprint, result.Request.DSL)
	assert.Contains(t, result.Files, "src/main/resources/OSGI-INF/blueprint/blueprint.xml")

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Args, "--blueprint-context")
}

func TestScaffold_MixedCaseSpring(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{}, converterDir)
	req := baseRequest(t, domain.DSL("Spring"))

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.DSLSpring, result.Request.DSL)
	assert.Contains(t, result.Files, "src/main/resources/META-INF/spring/camel-context.xml")
}

func TestScaffold_JavaDSL(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{}, converterDir)
	req := baseRequest(t, domain.DSLJava)
	req.Package = "com.generator.mock.javadsl"

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, result.Files, "src/main/java/com/generator/mock/javadsl/routes/CamelRoute.java")
	assert.Contains(t, result.Files, "src/main/java/com/generator/mock/javadsl/routes/Launcher.java")
}

func TestScaffold_Wsdl2RestLocalFile(t *testing.T) {
	for _, dsl := range []domain.DSL{domain.DSLSpring, domain.DSLBlueprint} {
		t.Run(string(dsl), func(t *testing.T) {
			runner := &convertertest.FakeRunner{}
			svc := newScaffoldService(runner, converterDir)
			req := baseRequest(t, dsl)
			req.Wsdl2Rest = true
			req.WSDL = wsdlFixture(t, "address.wsdl")

			result, err := svc.Scaffold(context.Background(), req)
			require.NoError(t, err)

			assert.FileExists(t, filepath.Join(req.Destination, "src/main/java/org/jboss/fuse/wsdl2rest/test/doclit/Address.java"))
			assert.Contains(t, result.GeneratedSources, "src/main/java/org/jboss/fuse/wsdl2rest/test/doclit/Address.java")
			assert.NoFileExists(t, filepath.Join(req.Destination, domain.FragmentFileName))
			assert.NotContains(t, result.Files, domain.FragmentFileName)
			assert.FileExists(t, filepath.Join(req.Destination, filepath.FromSlash(dsl.ResourceFile())))

			pom := readFile(t, req.Destination, "pom.xml")
			assert.Contains(t, pom, "<artifactId>camel-cxf</artifactId>")
			require.NotNil(t, result.Merge)
			assert.Contains(t, result.Merge.Dependencies, "org.apache.camel:camel-cxf")
			assert.Contains(t, result.ConverterJar, "wsdl2rest-impl-fatjar-0.8.0.jar")

			calls := runner.Calls()
			require.Len(t, calls, 1)
			assert.Equal(t, req.Destination, calls[0].Dir)
		})
	}
}

func TestScaffold_Wsdl2RestRemoteWSDL(t *testing.T) {
	data, err := os.ReadFile(wsdlFixture(t, "helloworld.wsdl"))
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/helloworldservice" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	svc := newScaffoldService(&convertertest.FakeRunner{}, converterDir)
	req := baseRequest(t, domain.DSLSpring)
	req.Name = "HelloWorld"
	req.Package = "com.mock.hello"
	req.Wsdl2Rest = true
	req.WSDL = srv.URL + "/helloworldservice?wsdl"
	req.JaxWSURL = srv.URL + "/helloworldservice"

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)

	assert.Contains(t, result.GeneratedSources, "src/main/java/org/helloworld/test/jaxws/HelloService.java")
	assert.Contains(t, readFile(t, req.Destination, "src/main/resources/META-INF/spring/camel-context.xml"), "helloworldservice?wsdl")
	assert.NoFileExists(t, filepath.Join(req.Destination, domain.FragmentFileName))
}

func TestScaffold_ConverterFragmentIsMerged(t *testing.T) {
	runner := &convertertest.FakeRunner{Fragment: `<dependencies>
  <dependency>
    <groupId>org.apache.camel</groupId>
    <artifactId>camel-servlet</artifactId>
  </dependency>
</dependencies>
`}
	svc := newScaffoldService(runner, converterDir)
	req := baseRequest(t, domain.DSLSpring)
	req.Wsdl2Rest = true
	req.WSDL = wsdlFixture(t, "address.wsdl")

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"org.apache.camel:camel-servlet"}, result.Merge.Dependencies)
	assert.Contains(t, readFile(t, req.Destination, "pom.xml"), "<artifactId>camel-servlet</artifactId>")
	assert.NoFileExists(t, filepath.Join(req.Destination, domain.FragmentFileName))
}

func TestScaffold_JavaWithBridgeRejectedBeforeWriting(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{}, converterDir)
	req := baseRequest(t, domain.DSLJava)
	req.Wsdl2Rest = true
	req.WSDL = wsdlFixture(t, "address.wsdl")

	_, err := svc.Scaffold(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrIncompatibleDSL))
	assert.Contains(t, err.Error(), domain.Wsdl2RestDSLMessage)
	assert.NoDirExists(t, req.Destination)
}

func TestScaffold_InvalidPackage(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{}, converterDir)
	req := baseRequest(t, domain.DSLSpring)
	req.Package = "a.name.with.package"

	_, err := svc.Scaffold(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrInvalidPackageName))
	assert.NoDirExists(t, req.Destination)
}

func TestScaffold_ConverterFailureRollsBackFreshDestination(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{ExitCode: 1, Stderr: "WSDLException"}, converterDir)
	req := baseRequest(t, domain.DSLSpring)
	req.Wsdl2Rest = true
	req.WSDL = wsdlFixture(t, "address.wsdl")

	result, err := svc.Scaffold(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrConverterExecutionFailed))
	assert.NoDirExists(t, req.Destination)
}

func TestScaffold_ConverterFailureKeepsExistingDestination(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{ExitCode: 1}, converterDir)
	req := baseRequest(t, domain.DSLSpring)
	req.Wsdl2Rest = true
	req.WSDL = wsdlFixture(t, "address.wsdl")
	require.NoError(t, os.MkdirAll(req.Destination, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(req.Destination, "notes.txt"), []byte("keep"), 0644))

	result, err := svc.Scaffold(context.Background(), req)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Contains(t, result.Files, "pom.xml")
	assert.FileExists(t, filepath.Join(req.Destination, "notes.txt"))
	assert.FileExists(t, filepath.Join(req.Destination, "pom.xml"))
}

func TestScaffold_MissingConverter(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{}, t.TempDir())
	req := baseRequest(t, domain.DSLSpring)
	req.Wsdl2Rest = true
	req.WSDL = wsdlFixture(t, "address.wsdl")

	_, err := svc.Scaffold(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrArtifactNotFound))
	assert.NoDirExists(t, req.Destination)
}

func TestScaffold_ExistingProjectWithoutForce(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{}, converterDir)
	req := baseRequest(t, domain.DSLSpring)
	_, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Scaffold(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrProjectExists))
	assert.DirExists(t, req.Destination)

	req.Force = true
	_, err = svc.Scaffold(context.Background(), req)
	assert.NoError(t, err)
}

func TestScaffold_GitInit(t *testing.T) {
	svc := newScaffoldService(&convertertest.FakeRunner{}, converterDir)
	req := baseRequest(t, domain.DSLSpring)
	req.GitInit = true

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.CommitHash, 40)
	assert.DirExists(t, filepath.Join(req.Destination, ".git"))

	repo, err := git.PlainOpen(req.Destination)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, result.CommitHash, head.Hash().String())
}

func TestScaffold_GitInitSkippedInsideRepository(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "README.md"), []byte("monorepo"), 0644))
	_, err := gitinfo.New().InitAndCommit(parent, "parent")
	require.NoError(t, err)

	svc := newScaffoldService(&convertertest.FakeRunner{}, converterDir)
	req := baseRequest(t, domain.DSLSpring)
	req.Destination = filepath.Join(parent, "child")
	req.GitInit = true

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, result.CommitHash)
	assert.NoDirExists(t, filepath.Join(req.Destination, ".git"))
}

func TestScaffold_RelativeDestinationIsResolved(t *testing.T) {
	t.Chdir(t.TempDir())
	svc := newScaffoldService(&convertertest.FakeRunner{}, "")
	req := baseRequest(t, domain.DSLSpring)
	req.Destination = "relative-app"

	result, err := svc.Scaffold(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(result.Request.Destination))
	assert.FileExists(t, filepath.Join("relative-app", "pom.xml"))
}
