package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker/models"
)

// testEnv is an isolated install directory plus pointer file location
type testEnv struct {
	installDir  string
	pointerPath string
	root        string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	root := t.TempDir()
	env := testEnv{
		installDir:  filepath.Join(root, "app"),
		pointerPath: filepath.Join(root, "config", "jobtracker", "storage.json"),
		root:        root,
	}
	require.NoError(t, os.MkdirAll(env.installDir, 0o755))
	return env
}

func (e testEnv) open() *Store {
	return Open(e.installDir, WithPointerFile(e.pointerPath))
}

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func readSettingsFile(t *testing.T, dir string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, models.SettingsFileName))
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestOpen_FreshInstall(t *testing.T) {
	env := newTestEnv(t)

	s := env.open()

	assert.True(t, s.IsFirstRun())
	assert.Equal(t, "", s.UserName())
	assert.Equal(t, models.DefaultJobRoles, s.JobRoles())
	assert.Len(t, s.JobRoles(), 11)
	assert.Equal(t, env.installDir, s.StorageDirectory())
	assert.Equal(t, SourceInstallDir, s.StorageSource())

	_, err := os.Stat(filepath.Join(env.installDir, models.SettingsFileName))
	assert.True(t, os.IsNotExist(err), "defaults are not written until the first change")
}

func TestFirstRun_ClearedByUserName(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()
	require.True(t, s.IsFirstRun())

	require.NoError(t, s.UpdateUserName("  Ann "))

	assert.False(t, s.IsFirstRun())
	assert.Equal(t, "Ann", s.UserName())

	doc := readSettingsFile(t, env.installDir)
	assert.Equal(t, "Ann", doc["userName"])
	assert.Len(t, doc["jobRoles"], 11)
	assert.NotContains(t, doc, "dataDirectory")

	reopened := env.open()
	assert.False(t, reopened.IsFirstRun())
	assert.Equal(t, "Ann", reopened.UserName())
}

func TestFirstRun_EmptyNameInExistingSettings(t *testing.T) {
	env := newTestEnv(t)
	writeJSON(t, filepath.Join(env.installDir, models.SettingsFileName), map[string]any{
		"userName": "",
		"jobRoles": []string{"Eng"},
	})

	s := env.open()
	assert.True(t, s.IsFirstRun())
	assert.Equal(t, []string{"Eng"}, s.JobRoles())

	require.NoError(t, s.UpdateUserName("Ann"))
	require.NoError(t, s.UpdateUserName(""))
	assert.True(t, s.IsFirstRun())
}

func TestOpen_MalformedSettingsUsesDefaults(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.installDir, models.SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	s := env.open()

	assert.True(t, s.IsFirstRun())
	assert.Equal(t, models.DefaultJobRoles, s.JobRoles())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data), "the broken file is left alone until a change is saved")
}

func TestOpen_LegacyKeys(t *testing.T) {
	env := newTestEnv(t)
	writeJSON(t, filepath.Join(env.installDir, models.SettingsFileName), map[string]any{
		"user_name": "Ann",
		"job_roles": []string{"Eng", "PM"},
	})

	s := env.open()

	assert.False(t, s.IsFirstRun())
	assert.Equal(t, "Ann", s.UserName())
	assert.Equal(t, []string{"Eng", "PM"}, s.JobRoles())
}

func TestAddJobRole(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()

	require.NoError(t, s.AddJobRole("Software Engineer"))
	_, err := os.Stat(s.SettingsPath())
	assert.True(t, os.IsNotExist(err), "adding an existing role is a no-op")

	require.NoError(t, s.AddJobRole("  "))
	assert.Len(t, s.JobRoles(), 11)

	require.NoError(t, s.AddJobRole(" Platform Engineer "))
	roles := s.JobRoles()
	assert.Len(t, roles, 12)
	assert.Equal(t, "Platform Engineer", roles[11])

	doc := readSettingsFile(t, env.installDir)
	assert.Len(t, doc["jobRoles"], 12)
}

func TestRemoveJobRole(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()

	require.NoError(t, s.RemoveJobRole("Not A Role"))
	assert.Len(t, s.JobRoles(), 11)

	require.NoError(t, s.RemoveJobRole("ML Intern"))
	assert.NotContains(t, s.JobRoles(), "ML Intern")
	assert.Len(t, s.JobRoles(), 10)

	reopened := env.open()
	assert.NotContains(t, reopened.JobRoles(), "ML Intern")
}

func TestRemoveJobRole_TrimsArgument(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()

	require.NoError(t, s.RemoveJobRole(" ML Intern "))

	assert.NotContains(t, s.JobRoles(), "ML Intern")
	assert.Len(t, s.JobRoles(), 10)
}

func TestOpen_CleansStoredRoles(t *testing.T) {
	env := newTestEnv(t)
	writeJSON(t, filepath.Join(env.installDir, models.SettingsFileName), map[string]any{
		"userName": "Ann",
		"jobRoles": []string{"Eng", " Eng", "", "PM", "Eng "},
	})

	s := env.open()
	assert.Equal(t, []string{"Eng", "PM"}, s.JobRoles())

	require.NoError(t, s.RemoveJobRole("Eng"))
	assert.Equal(t, []string{"PM"}, s.JobRoles(), "one removal clears the role")
}

func TestUpdateJobRoles_DropsBlankAndDuplicates(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()

	require.NoError(t, s.UpdateJobRoles([]string{"PM", " Eng ", "", "PM", "Eng", "Data"}))

	assert.Equal(t, []string{"PM", "Eng", "Data"}, s.JobRoles())
}

func TestJobRoles_ReturnsCopy(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()

	roles := s.JobRoles()
	roles[0] = "Mutated"

	assert.Equal(t, "Software Engineer", s.JobRoles()[0])
}

func TestUpdateUserName_WriteFailure(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()
	require.NoError(t, os.RemoveAll(env.installDir))

	err := s.UpdateUserName("Ann")

	require.Error(t, err)
	assert.True(t, s.IsFirstRun(), "in-memory state is unchanged after a failed write")
	assert.Equal(t, "", s.UserName())
}

func TestSetStorageDirectory_MigratesRecords(t *testing.T) {
	env := newTestEnv(t)
	records := []byte(`[{"company":"Acme","link":"http://x/1","role":"Eng","appliedDate":"2024-01-01"}]`)
	require.NoError(t, os.WriteFile(filepath.Join(env.installDir, models.RecordsFileName), records, 0o644))

	s := env.open()
	require.NoError(t, s.UpdateUserName("Ann"))

	newDir := filepath.Join(env.root, "data", "nested")
	require.NoError(t, s.SetStorageDirectory(newDir))

	assert.Equal(t, newDir, s.StorageDirectory())
	assert.Equal(t, SourcePointer, s.StorageSource())

	copied, err := os.ReadFile(filepath.Join(newDir, models.RecordsFileName))
	require.NoError(t, err)
	assert.Equal(t, records, copied)

	_, err = os.Stat(filepath.Join(env.installDir, models.RecordsFileName))
	assert.NoError(t, err, "the old records file is kept")

	doc := readSettingsFile(t, newDir)
	assert.Equal(t, "Ann", doc["userName"])
	assert.Equal(t, newDir, doc["dataDirectory"])

	var ptr models.StoragePointer
	data, err := os.ReadFile(env.pointerPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &ptr))
	assert.Equal(t, newDir, ptr.DataDirectory)
}

func TestSetStorageDirectory_DoesNotOverwriteExistingRecords(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.installDir, models.RecordsFileName), []byte(`[{"company":"Old"}]`), 0o644))

	target := filepath.Join(env.root, "existing")
	require.NoError(t, os.MkdirAll(target, 0o755))
	existing := []byte(`[{"company":"Keep"}]`)
	require.NoError(t, os.WriteFile(filepath.Join(target, models.RecordsFileName), existing, 0o644))

	s := env.open()
	require.NoError(t, s.SetStorageDirectory(target))

	data, err := os.ReadFile(filepath.Join(target, models.RecordsFileName))
	require.NoError(t, err)
	assert.Equal(t, existing, data)
}

func TestSetStorageDirectory_SecondMoveKeepsDestination(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(env.installDir, models.RecordsFileName), []byte(`[{"company":"First"}]`), 0o644))
	s := env.open()

	first := filepath.Join(env.root, "first")
	require.NoError(t, s.SetStorageDirectory(first))

	second := filepath.Join(env.root, "second")
	require.NoError(t, os.MkdirAll(second, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(second, models.RecordsFileName), []byte(`[{"company":"Second"}]`), 0o644))

	require.NoError(t, s.SetStorageDirectory(second))

	data, err := os.ReadFile(filepath.Join(second, models.RecordsFileName))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"company":"Second"}]`, string(data))
}

func TestSetStorageDirectory_WithoutRecords(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()

	target := filepath.Join(env.root, "empty")
	require.NoError(t, s.SetStorageDirectory(target))

	_, err := os.Stat(filepath.Join(target, models.RecordsFileName))
	assert.True(t, os.IsNotExist(err))
	assert.True(t, s.IsFirstRun(), "no user name has been recorded yet")
	_, err = os.Stat(filepath.Join(target, models.SettingsFileName))
	assert.NoError(t, err)
}

func TestSetStorageDirectory_PointerFailureIsNotFatal(t *testing.T) {
	env := newTestEnv(t)
	blocker := filepath.Join(env.root, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := Open(env.installDir, WithPointerFile(filepath.Join(blocker, "storage.json")))

	target := filepath.Join(env.root, "data")
	require.NoError(t, s.SetStorageDirectory(target))
	assert.Equal(t, target, s.StorageDirectory())
}

func TestSetStorageDirectory_PointerFailureFoundAgainOnRelaunch(t *testing.T) {
	env := newTestEnv(t)
	blocker := filepath.Join(env.root, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	pointer := filepath.Join(blocker, "storage.json")

	s := Open(env.installDir, WithPointerFile(pointer))
	require.NoError(t, s.UpdateUserName("Ann"))

	target := filepath.Join(env.root, "data")
	require.NoError(t, s.SetStorageDirectory(target))
	require.NoError(t, os.WriteFile(filepath.Join(target, models.RecordsFileName), []byte(`[{"company":"Acme"}]`), 0o644))

	assert.Equal(t, target, readSettingsFile(t, env.installDir)["dataDirectory"])

	reopened := Open(env.installDir, WithPointerFile(pointer))
	assert.Equal(t, target, reopened.StorageDirectory())
	assert.Equal(t, SourceSettings, reopened.StorageSource())
	assert.Equal(t, filepath.Join(target, models.RecordsFileName), reopened.RecordsPath())
	assert.Equal(t, "Ann", reopened.UserName())
}

func TestSetStorageDirectory_Empty(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()

	assert.Error(t, s.SetStorageDirectory("  "))
	assert.Equal(t, env.installDir, s.StorageDirectory())
}

func TestSetStorageDirectory_SurvivesRelocation(t *testing.T) {
	env := newTestEnv(t)
	s := env.open()
	require.NoError(t, s.UpdateUserName("Ann"))

	data := filepath.Join(env.root, "data")
	require.NoError(t, s.SetStorageDirectory(data))

	// A moved executable has a fresh install directory with no settings.
	movedInstall := filepath.Join(env.root, "moved")
	require.NoError(t, os.MkdirAll(movedInstall, 0o755))

	reopened := Open(movedInstall, WithPointerFile(env.pointerPath))
	assert.Equal(t, data, reopened.StorageDirectory())
	assert.Equal(t, "Ann", reopened.UserName())
	assert.False(t, reopened.IsFirstRun())
}
