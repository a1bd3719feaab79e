package recorder_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildviz/internal/adapters/extract"
	"go.trai.ch/buildviz/internal/core/domain"
	"go.trai.ch/buildviz/internal/core/ports/mocks"
	"go.trai.ch/buildviz/internal/engine/recorder"
	"go.uber.org/mock/gomock"
)

type recorderTestMocks struct {
	store  *mocks.MockSnapshotStore
	logger *mocks.MockLogger
}

func setupRecorderTest(t *testing.T, settings domain.RecordSettings) (*recorder.Recorder, recorderTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := recorderTestMocks{
		store:  mocks.NewMockSnapshotStore(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	return recorder.New(m.store, extract.New(), m.logger, settings), m
}

type echoTask struct {
	domain.TaskBase
	Message string
	Level   string
}

func projectStarted(id, dir string, props map[string]string) domain.ProjectStarted {
	return domain.ProjectStarted{
		Project:            domain.ProjectID(id),
		BaseDirectory:      dir,
		BuildFileLocalName: dir + "/default.build",
		BuildFileURI:       "file://" + dir + "/default.build",
		BuildTargets:       []string{"build"},
		ProjectName:        id,
		PlatformName:       "unix",
		TargetFramework:    domain.TargetFramework{Name: "net-4.0", Version: "4.0"},
		Properties:         props,
	}
}

func TestRecorder_NoDestinationWritesNothing(t *testing.T) {
	t.Parallel()

	r, _ := setupRecorderTest(t, domain.RecordSettings{})

	require.NoError(t, r.ProjectStarted(projectStarted("p", "/repo", nil)))
	require.NoError(t, r.TargetStarted(domain.TargetStarted{Project: "p", Target: "t", Name: "build"}))
	require.NoError(t, r.TaskStarted(domain.TaskStarted{Project: "p", Task: "k", Parent: "t", Name: "echo"}))
	require.NoError(t, r.ProjectFinished(domain.ProjectFinished{Project: "p"}))
	require.NoError(t, r.Flush())

	assert.Empty(t, r.Destination())
	assert.Len(t, r.Snapshot().TaskOrder, 1)
}

func TestRecorder_AdoptsDestinationFromFirstProject(t *testing.T) {
	t.Parallel()

	r, m := setupRecorderTest(t, domain.RecordSettings{})

	m.store.EXPECT().Save("/tmp/first.json", gomock.Any()).Return(nil).Times(3)

	require.NoError(t, r.ProjectStarted(projectStarted("a", "/repo/a",
		map[string]string{domain.DefaultDestinationProperty: "/tmp/first.json"})))
	require.NoError(t, r.ProjectStarted(projectStarted("b", "/repo/b",
		map[string]string{domain.DefaultDestinationProperty: "/tmp/second.json"})))
	require.NoError(t, r.ProjectFinished(domain.ProjectFinished{Project: "b"}))

	assert.Equal(t, "/tmp/first.json", r.Destination())
}

func TestRecorder_PresetDestinationIgnoresProperty(t *testing.T) {
	t.Parallel()

	r, m := setupRecorderTest(t, domain.RecordSettings{Destination: "/out/build.json"})

	m.store.EXPECT().Save("/out/build.json", gomock.Any()).Return(nil)

	require.NoError(t, r.ProjectStarted(projectStarted("a", "/repo",
		map[string]string{domain.DefaultDestinationProperty: "/tmp/ignored.json"})))
	assert.Equal(t, "/out/build.json", r.Destination())
}

func TestRecorder_CustomDestinationProperty(t *testing.T) {
	t.Parallel()

	r, m := setupRecorderTest(t, domain.RecordSettings{DestinationProperty: "viz.out"})

	m.store.EXPECT().Save("/tmp/custom.json", gomock.Any()).Return(nil)

	require.NoError(t, r.ProjectStarted(projectStarted("a", "/repo", map[string]string{
		domain.DefaultDestinationProperty: "/tmp/default.json",
		"viz.out":                         "/tmp/custom.json",
	})))
}

func TestRecorder_PersistsAfterMutatingEvents(t *testing.T) {
	t.Parallel()

	r, m := setupRecorderTest(t, domain.RecordSettings{Destination: "/out/build.json"})

	// project start, target start, task start, project finish.
	m.store.EXPECT().Save("/out/build.json", gomock.Any()).Return(nil).Times(4)

	require.NoError(t, r.ProjectStarted(projectStarted("p", "/repo", nil)))
	require.NoError(t, r.TargetStarted(domain.TargetStarted{Project: "p", Target: "t", Name: "build"}))
	require.NoError(t, r.TaskStarted(domain.TaskStarted{Project: "p", Task: "k", Parent: "t", Name: "echo"}))
	require.NoError(t, r.TaskFinished(domain.TaskFinished{Project: "p", Task: "k"}))
	require.NoError(t, r.TargetFinished(domain.TargetFinished{Project: "p", Target: "t"}))
	require.NoError(t, r.MessageLogged(domain.MessageLogged{Project: "p", Level: domain.LogLevelInfo, Message: "hi"}))
	require.NoError(t, r.ProjectFinished(domain.ProjectFinished{Project: "p"}))
}

func TestRecorder_PersistErrorIsReturned(t *testing.T) {
	t.Parallel()

	r, m := setupRecorderTest(t, domain.RecordSettings{Destination: "/out/build.json"})

	boom := errors.New("disk full")
	gomock.InOrder(
		m.store.EXPECT().Save("/out/build.json", gomock.Any()).Return(boom),
		m.store.EXPECT().Save("/out/build.json", gomock.Any()).Return(nil),
	)

	err := r.ProjectStarted(projectStarted("p", "/repo", nil))
	require.ErrorIs(t, err, boom)

	// The model was updated and the next event retries the write.
	require.NoError(t, r.ProjectFinished(domain.ProjectFinished{Project: "p"}))
	assert.Len(t, r.Snapshot().Projects, 1)
}

func TestRecorder_BuildsModel(t *testing.T) {
	t.Parallel()

	r, _ := setupRecorderTest(t, domain.RecordSettings{})

	require.NoError(t, r.ProjectStarted(projectStarted("p", "/repo", nil)))
	require.NoError(t, r.TargetStarted(domain.TargetStarted{
		Project:      "p",
		Target:       "t1",
		Name:         "compile",
		Location:     "/repo/default.build(4,3)",
		Executed:     true,
		IfCondition:  "${debug}",
		Description:  "compiles",
		Dependencies: []string{"init"},
	}))
	require.NoError(t, r.TaskStarted(domain.TaskStarted{
		Project:     "p",
		Task:        "k1",
		Name:        "echo",
		Type:        "NAnt.Core.Tasks.EchoTask",
		Location:    "/repo/default.build(2,2)",
		FailOnError: true,
		Value: &echoTask{
			TaskBase: domain.TaskBase{Element: domain.Element{Name: "echo"}, FailOnError: true},
			Message:  "hello",
			Level:    "Info",
		},
	}))
	require.NoError(t, r.TaskStarted(domain.TaskStarted{
		Project: "p",
		Task:    "k2",
		Parent:  "t1",
		Name:    "csc",
		Type:    "NAnt.DotNet.Tasks.CscTask",
		Value:   domain.PropertyMap{"Output": "/repo/bin/app.exe"},
	}))

	build := r.Snapshot()
	require.Len(t, build.Projects, 1)
	p := build.Projects[0]

	assert.Equal(t, "/repo", p.BaseDirectory)
	assert.Equal(t, "/repo/default.build", p.BuildFileLocalName)
	assert.Equal(t, []string{"build"}, p.BuildTargets)
	assert.Equal(t, "net-4.0", p.TargetFrameworkName)
	assert.Equal(t, "4.0", p.TargetFrameworkVersion)

	require.Len(t, p.Targets, 1)
	assert.Equal(t, domain.Target{
		Name:         "compile",
		Location:     "/repo/default.build(4,3)",
		Executed:     true,
		IfCondition:  "${debug}",
		Description:  "compiles",
		Dependencies: []string{"init"},
	}, *p.Targets[0])

	require.Len(t, p.Tasks, 2)
	echo, csc := p.Tasks[0], p.Tasks[1]

	assert.Nil(t, echo.Target)
	assert.True(t, echo.FailOnError)
	assert.Equal(t, "NAnt.Core.Tasks.EchoTask", echo.Type.String())
	assert.Equal(t, map[string]any{"Message": "hello", "Level": "Info"}, echo.ExtraProperties)

	assert.Same(t, p.Targets[0], csc.Target)
	assert.Equal(t, map[string]any{"Output": "/repo/bin/app.exe"}, csc.ExtraProperties)

	assert.Equal(t, []*domain.Task{echo, csc}, build.TaskOrder)
}

func TestRecorder_TaskOrderSpansProjects(t *testing.T) {
	t.Parallel()

	r, _ := setupRecorderTest(t, domain.RecordSettings{})

	require.NoError(t, r.ProjectStarted(projectStarted("a", "/w/a", nil)))
	require.NoError(t, r.ProjectStarted(projectStarted("b", "/w/b", nil)))

	events := []domain.TaskStarted{
		{Project: "a", Task: "1", Name: "a1"},
		{Project: "b", Task: "2", Name: "b1"},
		{Project: "a", Task: "3", Name: "a2"},
		{Project: "b", Task: "4", Name: "b2"},
		{Project: "b", Task: "5", Name: "b3"},
	}
	for _, e := range events {
		require.NoError(t, r.TaskStarted(e))
	}

	build := r.Snapshot()
	require.Len(t, build.TaskOrder, build.TaskCount())

	names := make([]string, 0, len(build.TaskOrder))
	for _, task := range build.TaskOrder {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"a1", "b1", "a2", "b2", "b3"}, names)

	for _, p := range build.Projects {
		last := -1
		for _, task := range p.Tasks {
			idx := build.TaskIndex(task)
			require.GreaterOrEqual(t, idx, 0)
			assert.Greater(t, idx, last, "project tasks must follow global start order")
			last = idx
		}
	}
}

func TestRecorder_ExtractionWithoutValue(t *testing.T) {
	t.Parallel()

	r, _ := setupRecorderTest(t, domain.RecordSettings{})

	require.NoError(t, r.ProjectStarted(projectStarted("p", "/repo", nil)))
	require.NoError(t, r.TaskStarted(domain.TaskStarted{Project: "p", Task: "k", Name: "bare"}))

	task := r.Snapshot().TaskOrder[0]
	assert.NotNil(t, task.ExtraProperties)
	assert.Empty(t, task.ExtraProperties)
}

func TestRecorder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		apply   func(r *recorder.Recorder) error
		wantErr error
	}{
		{
			name: "target in unknown project",
			apply: func(r *recorder.Recorder) error {
				return r.TargetStarted(domain.TargetStarted{Project: "nope", Target: "t"})
			},
			wantErr: domain.ErrUnknownProject,
		},
		{
			name: "task in unknown project",
			apply: func(r *recorder.Recorder) error {
				return r.TaskStarted(domain.TaskStarted{Project: "nope", Task: "k"})
			},
			wantErr: domain.ErrUnknownProject,
		},
		{
			name: "task with unknown parent target",
			apply: func(r *recorder.Recorder) error {
				return r.TaskStarted(domain.TaskStarted{Project: "p", Task: "k", Parent: "missing"})
			},
			wantErr: domain.ErrUnknownTarget,
		},
		{
			name: "finish of unknown target",
			apply: func(r *recorder.Recorder) error {
				return r.TargetFinished(domain.TargetFinished{Project: "p", Target: "missing"})
			},
			wantErr: domain.ErrUnknownTarget,
		},
		{
			name: "finish of unknown project",
			apply: func(r *recorder.Recorder) error {
				return r.ProjectFinished(domain.ProjectFinished{Project: "nope"})
			},
			wantErr: domain.ErrUnknownProject,
		},
		{
			name: "duplicate project",
			apply: func(r *recorder.Recorder) error {
				return r.ProjectStarted(projectStarted("p", "/other", nil))
			},
			wantErr: domain.ErrDuplicateProject,
		},
		{
			name: "duplicate target",
			apply: func(r *recorder.Recorder) error {
				if err := r.TargetStarted(domain.TargetStarted{Project: "p", Target: "t"}); err != nil {
					return err
				}
				return r.TargetStarted(domain.TargetStarted{Project: "p", Target: "t"})
			},
			wantErr: domain.ErrDuplicateTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, _ := setupRecorderTest(t, domain.RecordSettings{})
			require.NoError(t, r.ProjectStarted(projectStarted("p", "/repo", nil)))

			err := tt.apply(r)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr.Error())

			build := r.Snapshot()
			assert.Len(t, build.Projects, 1)
			assert.Empty(t, build.TaskOrder)
		})
	}
}
