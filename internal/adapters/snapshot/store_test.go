package snapshot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildviz/internal/adapters/snapshot"
	"go.trai.ch/buildviz/internal/core/domain"
)

func sampleBuild() *domain.Build {
	compile := &domain.Target{
		Name:         "compile",
		Location:     "/src/app/default.build(12,4)",
		Executed:     true,
		Dependencies: []string{"init"},
	}
	test := &domain.Target{
		Name:         "test",
		Location:     "/src/app/default.build(30,4)",
		Description:  "runs the unit tests",
		Dependencies: []string{"compile"},
	}

	echo := &domain.Task{
		Name:            "echo",
		Type:            domain.NewTaskType("NAnt.Core.Tasks.EchoTask"),
		Location:        "/src/app/default.build(3,2)",
		FailOnError:     true,
		ExtraProperties: map[string]any{"Message": "hello"},
	}
	csc := &domain.Task{
		Name:            "csc",
		Type:            domain.NewTaskType("NAnt.DotNet.Tasks.CscTask"),
		Location:        "/src/app/default.build(14,6)",
		Target:          compile,
		FailOnError:     true,
		ExtraProperties: map[string]any{"Debug": true, "Output": "/src/app/bin/app.exe"},
	}
	nunit := &domain.Task{
		Name:            "nunit2",
		Type:            domain.NewTaskType("NAnt.NUnit2.Tasks.NUnit2Task"),
		Location:        "/src/app/default.build(31,6)",
		Target:          test,
		ExtraProperties: map[string]any{},
	}

	return &domain.Build{
		Projects: []*domain.Project{{
			BaseDirectory:          "/src/app",
			BuildFileLocalName:     "/src/app/default.build",
			BuildFileURI:           "file:///src/app/default.build",
			BuildTargets:           []string{"test"},
			ProjectName:            "app",
			PlatformName:           "unix",
			TargetFrameworkName:    "net-4.0",
			TargetFrameworkVersion: "4.0",
			Targets:                []*domain.Target{compile, test},
			Tasks:                  []*domain.Task{echo, csc, nunit},
		}},
		TaskOrder: []*domain.Task{echo, csc, nunit},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "build.json")
	store := snapshot.NewStore()

	want := sampleBuild()
	require.NoError(t, store.Save(path, want))

	got, err := store.Load(path)
	require.NoError(t, err)

	require.Len(t, got.Projects, 1)
	require.Len(t, got.TaskOrder, 3)

	p := got.Projects[0]
	assert.Equal(t, "app", p.ProjectName)
	assert.Equal(t, "/src/app", p.BaseDirectory)
	assert.Equal(t, []string{"test"}, p.BuildTargets)
	assert.Equal(t, "net-4.0", p.TargetFrameworkName)
	require.Len(t, p.Targets, 2)
	assert.Equal(t, *want.Projects[0].Targets[0], *p.Targets[0])
	assert.Equal(t, *want.Projects[0].Targets[1], *p.Targets[1])

	for i, task := range p.Tasks {
		assert.Same(t, got.TaskOrder[i], task, "project task %d must share identity with task order", i)
	}

	assert.Nil(t, got.TaskOrder[0].Target)
	assert.Same(t, p.Targets[0], got.TaskOrder[1].Target)
	assert.Same(t, p.Targets[1], got.TaskOrder[2].Target)

	assert.Equal(t, "NAnt.DotNet.Tasks.CscTask", got.TaskOrder[1].Type.String())
	assert.Equal(t, map[string]any{"Debug": true, "Output": "/src/app/bin/app.exe"}, got.TaskOrder[1].ExtraProperties)
	assert.Equal(t, map[string]any{}, got.TaskOrder[2].ExtraProperties)
	assert.True(t, got.TaskOrder[1].FailOnError)
	assert.False(t, got.TaskOrder[2].FailOnError)
}

func TestStore_TaskOrderAcrossProjects(t *testing.T) {
	t.Parallel()

	a1 := &domain.Task{Name: "a1", ExtraProperties: map[string]any{}}
	b1 := &domain.Task{Name: "b1", ExtraProperties: map[string]any{}}
	a2 := &domain.Task{Name: "a2", ExtraProperties: map[string]any{}}

	build := &domain.Build{
		Projects: []*domain.Project{
			{ProjectName: "a", BaseDirectory: "/w/a", Tasks: []*domain.Task{a1, a2}},
			{ProjectName: "b", BaseDirectory: "/w/b", Tasks: []*domain.Task{b1}},
		},
		TaskOrder: []*domain.Task{a1, b1, a2},
	}

	path := filepath.Join(t.TempDir(), "build.json")
	store := snapshot.NewStore()
	require.NoError(t, store.Save(path, build))

	got, err := store.Load(path)
	require.NoError(t, err)

	names := make([]string, 0, len(got.TaskOrder))
	for _, task := range got.TaskOrder {
		names = append(names, task.Name)
	}
	assert.Equal(t, []string{"a1", "b1", "a2"}, names)
	assert.Same(t, got.TaskOrder[2], got.Projects[0].Tasks[1])
	assert.Same(t, got.TaskOrder[1], got.Projects[1].Tasks[0])
}

func TestStore_SaveEmptyBuild(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "build.json")
	store := snapshot.NewStore()
	require.NoError(t, store.Save(path, domain.NewBuild()))

	got, err := store.Load(path)
	require.NoError(t, err)
	assert.Empty(t, got.Projects)
	assert.Empty(t, got.TaskOrder)
}

func TestStore_SaveReplacesPreviousSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "build.json")
	store := snapshot.NewStore()

	build := sampleBuild()
	require.NoError(t, store.Save(path, build))

	build.Projects[0].ProjectName = "renamed"
	require.NoError(t, store.Save(path, build))

	got, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Projects[0].ProjectName)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_SaveRewritesRemovedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "build.json")
	store := snapshot.NewStore()
	build := sampleBuild()

	require.NoError(t, store.Save(path, build))
	require.NoError(t, os.Remove(path))
	require.NoError(t, store.Save(path, build))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestStore_SaveUnwritableDestination(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store := snapshot.NewStore()
	err := store.Save(filepath.Join(blocker, "build.json"), sampleBuild())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrSnapshotWriteFailed.Error())
}

func TestStore_LoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content *string
		want    error
	}{
		{name: "missing file", content: nil, want: domain.ErrSnapshotReadFailed},
		{name: "invalid json", content: ptr("{ invalid json"), want: domain.ErrSnapshotUnmarshalFailed},
		{name: "null document", content: ptr("null"), want: domain.ErrSnapshotMalformed},
		{name: "wrong version", content: ptr(`{"version":7}`), want: domain.ErrSnapshotMalformed},
		{
			name:    "unknown task reference",
			content: ptr(`{"version":1,"projects":[{"tasks":[4]}],"targets":[],"tasks":[]}`),
			want:    domain.ErrSnapshotMalformed,
		},
		{
			name:    "task owned twice",
			content: ptr(`{"version":1,"projects":[{"tasks":[1]},{"tasks":[1]}],"targets":[],"tasks":[{"id":1}]}`),
			want:    domain.ErrSnapshotMalformed,
		},
		{
			name:    "orphan task",
			content: ptr(`{"version":1,"projects":[],"targets":[],"tasks":[{"id":1}]}`),
			want:    domain.ErrSnapshotMalformed,
		},
		{
			name:    "unknown target reference",
			content: ptr(`{"version":1,"projects":[{"tasks":[1]}],"targets":[],"tasks":[{"id":1,"target":3}]}`),
			want:    domain.ErrSnapshotMalformed,
		},
		{
			name:    "task target from another project",
			content: ptr(`{"version":1,"projects":[{"targets":[1]},{"tasks":[1]}],"targets":[{"id":1}],"tasks":[{"id":1,"target":1}]}`),
			want:    domain.ErrSnapshotMalformed,
		},
		{
			name:    "task target owned by no project",
			content: ptr(`{"version":1,"projects":[{"tasks":[1]}],"targets":[{"id":1}],"tasks":[{"id":1,"target":1}]}`),
			want:    domain.ErrSnapshotMalformed,
		},
		{
			name:    "duplicate target id",
			content: ptr(`{"version":1,"projects":[],"targets":[{"id":1},{"id":1}],"tasks":[]}`),
			want:    domain.ErrSnapshotMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "build.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o600))
			}

			got, err := snapshot.NewStore().Load(path)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}

func ptr(s string) *string {
	return &s
}
