package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sob/internal/app"
	"go.trai.ch/sob/internal/core/domain"
	"go.trai.ch/sob/internal/core/ports"
	"go.trai.ch/sob/internal/core/ports/mocks"
	"go.trai.ch/sob/internal/engine/orchestrator"
	"go.uber.org/mock/gomock"
)

const projectRoot = "/proj"

type appTestMocks struct {
	loader      *mocks.MockConfigLoader
	executor    *mocks.MockExecutor
	dirs        *mocks.MockDirMaker
	store       *mocks.MockBuildRecordStore
	logger      *mocks.MockLogger
	diagnostics *mocks.MockDiagnostics
	watcher     *mocks.MockWatcher
}

// newProject declares app <- (main.o, util.o) with objects under build/.
func newProject(t *testing.T) *domain.Project {
	t.Helper()
	tc, err := domain.NewToolchain("g++", ".o",
		domain.WithSourceSuffix(".cpp"),
		domain.WithBuildPrefix("build"),
		domain.WithCompileFlags("-O2", "-Wall"),
		domain.WithLinkFlags("-lpthread"),
	)
	require.NoError(t, err)

	g := domain.NewGraph()
	require.NoError(t, g.AddTarget(&domain.Target{Name: domain.NewIdentity("main.o"), Source: "main.cpp"}))
	require.NoError(t, g.AddTarget(&domain.Target{Name: domain.NewIdentity("util.o"), Source: "src/util.cpp"}))
	require.NoError(t, g.AddTarget(&domain.Target{
		Name:         domain.NewIdentity("app"),
		Output:       "app",
		Dependencies: domain.NewIdentities([]string{"main.o", "util.o"}),
	}))

	return &domain.Project{
		Root:      projectRoot,
		Toolchain: tc,
		Graph:     g,
		Default:   domain.NewIdentity("app"),
	}
}

// setupAppTest creates an App over mocks that loads project from every working directory.
func setupAppTest(t *testing.T, project *domain.Project) (*app.App, appTestMocks, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := appTestMocks{
		loader:      mocks.NewMockConfigLoader(ctrl),
		executor:    mocks.NewMockExecutor(ctrl),
		dirs:        mocks.NewMockDirMaker(ctrl),
		store:       mocks.NewMockBuildRecordStore(ctrl),
		logger:      mocks.NewMockLogger(ctrl),
		diagnostics: mocks.NewMockDiagnostics(ctrl),
		watcher:     mocks.NewMockWatcher(ctrl),
	}
	m.loader.EXPECT().Load("/proj/sub").Return(project, nil).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	a := app.New(
		m.loader,
		orchestrator.New(m.executor, m.dirs),
		m.store,
		m.logger,
		m.diagnostics,
		func() (ports.Watcher, error) { return m.watcher, nil },
	).WithOutput(stdout, stderr).WithWorkDir("/proj/sub")
	return a, m, stdout, stderr
}

// recordCommands makes every command succeed and collects their text in execution order.
func (m appTestMocks) recordCommands(codes map[string]int) *[]string {
	var mu sync.Mutex
	var ran []string
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command, _, _ io.Writer) (domain.ExitStatus, error) {
			mu.Lock()
			defer mu.Unlock()
			ran = append(ran, cmd.Text())
			return domain.ExitStatus{Code: codes[cmd.Target.String()]}, nil
		},
	).AnyTimes()
	m.dirs.EXPECT().EnsureDir(gomock.Any()).Return(nil).AnyTimes()
	m.diagnostics.EXPECT().OnStart(gomock.Any(), gomock.Any()).AnyTimes()
	m.diagnostics.EXPECT().OnFinish(gomock.Any(), gomock.Any()).AnyTimes()
	return &ran
}

func TestApp_Build_DefaultTarget(t *testing.T) {
	a, m, _, _ := setupAppTest(t, newProject(t))
	ran := m.recordCommands(nil)

	var records []domain.BuildRecord
	m.store.EXPECT().Put(projectRoot, gomock.Any()).DoAndReturn(func(_ string, r domain.BuildRecord) error {
		records = append(records, r)
		return nil
	}).Times(3)

	err := a.Build(context.Background(), nil, app.BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"g++ -c main.cpp -o build/main.o -O2 -Wall",
		"g++ -c src/util.cpp -o build/src/util.o -O2 -Wall",
		"g++ build/main.o build/src/util.o -o app -lpthread",
	}, *ran)
	require.Len(t, records, 3)
	assert.Equal(t, "app", records[2].Target)
	assert.Equal(t, "succeeded", records[2].Status)
}

func TestApp_Build_CommandsRunInProjectRoot(t *testing.T) {
	a, m, _, _ := setupAppTest(t, newProject(t))
	m.diagnostics.EXPECT().OnStart(gomock.Any(), gomock.Any()).AnyTimes()
	m.diagnostics.EXPECT().OnFinish(gomock.Any(), gomock.Any()).AnyTimes()
	m.dirs.EXPECT().EnsureDir("/proj/build").Return(nil)
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cmd *domain.Command, _, _ io.Writer) (domain.ExitStatus, error) {
			assert.Equal(t, projectRoot, cmd.Dir)
			return domain.ExitStatus{}, nil
		},
	)

	err := a.Build(context.Background(), []string{"main.o"}, app.BuildOptions{NoRecord: true})
	require.NoError(t, err)
}

func TestApp_Build_FailureIsReportedOnce(t *testing.T) {
	a, m, _, stderr := setupAppTest(t, newProject(t))
	ran := m.recordCommands(map[string]int{"main.o": 1})
	m.store.EXPECT().Put(projectRoot, gomock.Any()).Return(nil).Times(1)

	err := a.Build(context.Background(), []string{"app"}, app.BuildOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrCommandExited)
	assert.Equal(t, []string{"g++ -c main.cpp -o build/main.o -O2 -Wall"}, *ran)
	assert.Empty(t, stderr.String())
}

func TestApp_Build_TraceDumpsFrames(t *testing.T) {
	a, m, _, stderr := setupAppTest(t, newProject(t))
	m.recordCommands(map[string]int{"util.o": 2})

	err := a.Build(context.Background(), []string{"app"}, app.BuildOptions{Trace: true, NoRecord: true})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Contains(t, stderr.String(), "frame stack of the first failure")
	assert.Contains(t, stderr.String(), "util.o")
}

func TestApp_Build_ConfigurationErrorsAreNotExecutionFailures(t *testing.T) {
	a, _, _, _ := setupAppTest(t, newProject(t))

	err := a.Build(context.Background(), []string{"missing"}, app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
	assert.NotErrorIs(t, err, domain.ErrBuildExecutionFailed)
}

func TestApp_Build_NoDefault(t *testing.T) {
	project := newProject(t)
	project.Default = domain.Identity{}
	a, _, _, _ := setupAppTest(t, project)

	err := a.Build(context.Background(), nil, app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestApp_Build_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loadErr := errors.Join(domain.ErrConfigNotFound, errors.New("no file"))
	loader.EXPECT().Load("/nowhere").Return(nil, loadErr)

	a := app.New(loader, nil, nil, mocks.NewMockLogger(ctrl), nil, nil).WithWorkDir("/nowhere")
	err := a.Build(context.Background(), nil, app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestApp_Build_TUI(t *testing.T) {
	a, m, _, stderr := setupAppTest(t, newProject(t))
	a.WithTerminal(true).WithTeaOptions(
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutRenderer(),
		tea.WithoutSignalHandler(),
	)
	m.dirs.EXPECT().EnsureDir(gomock.Any()).Return(nil).AnyTimes()
	m.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ *domain.Command, stdout, _ io.Writer) (domain.ExitStatus, error) {
			_, _ = io.WriteString(stdout, "main.cpp:1: error: boom\n")
			return domain.ExitStatus{Code: 1}, nil
		},
	)

	err := a.Build(context.Background(), nil, app.BuildOptions{TUI: true, NoRecord: true})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.Equal(t, "main.o:failed (exit status 1)\nmain.cpp:1: error: boom\n", stderr.String())
}

func TestApp_Build_TUIFallsBackWithoutTerminal(t *testing.T) {
	a, m, _, stderr := setupAppTest(t, newProject(t))
	a.WithTerminal(false)
	ran := m.recordCommands(nil)

	require.NoError(t, a.Build(context.Background(), []string{"main.o"}, app.BuildOptions{TUI: true, NoRecord: true}))
	assert.Len(t, *ran, 1)
	assert.Empty(t, stderr.String())
}
