package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/almanac/internal/backup"
	"github.com/julianstephens/almanac/internal/config"
	apperrors "github.com/julianstephens/almanac/internal/errors"
	"github.com/julianstephens/almanac/internal/export"
	"github.com/julianstephens/almanac/internal/generator"
	"github.com/julianstephens/almanac/internal/storage"
)

const placesJSON = `[
  {"name": "Riverside Park", "category": "park", "cost": "free", "outdoor": true,
   "toddlerFriendly": true, "strollerAccessible": true, "bestSeason": ["spring", "summer"]},
  {"name": "Children's Museum", "category": "museum", "cost": "medium", "indoor": true,
   "toddlerFriendly": true, "bestSeason": ["winter", "spring", "summer", "fall"]},
  {"name": "Holiday Lights Garden", "category": "botanical_garden", "cost": "low",
   "outdoor": true, "bestSeason": ["winter"]},
  {"name": "", "category": "park", "cost": "free"}
]`

type testEnv struct {
	ctx    *Context
	out    *bytes.Buffer
	dir    string
	places string
}

func setup(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.Generator.Backoff = 0
	cfg.Export.OutputDir = filepath.Join(dir, "out")

	places := filepath.Join(dir, "places.json")
	if err := os.WriteFile(places, []byte(placesJSON), 0644); err != nil {
		t.Fatalf("failed to write places: %v", err)
	}

	store := storage.NewSQLiteStore(cfg.DatabasePath())
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return testEnv{
		ctx:    &Context{Config: &cfg, Store: store, Out: out},
		out:    out,
		dir:    dir,
		places: places,
	}
}

func (e testEnv) init(t *testing.T) {
	t.Helper()
	if err := (&InitCmd{}).Run(e.ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
}

func (e testEnv) generate(t *testing.T) string {
	t.Helper()
	cmd := &GenerateCmd{
		LocaleFlags: LocaleFlags{City: "Portland", Region: "OR"},
		Places:      e.places,
		Seed:        11,
		Offline:     true,
		Format:      []string{"json", "ics"},
	}
	if err := cmd.Run(e.ctx); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	list, err := e.ctx.Store.ListEditions()
	if err != nil || len(list) == 0 {
		t.Fatalf("expected a stored edition, got %v, %v", list, err)
	}
	return list[0].ID
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	env := setup(t)
	env.init(t)

	cfgPath := filepath.Join(env.ctx.Config.DataDir, config.ConfigFileName)
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("expected starter config: %v", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("starter config does not load: %v", err)
	}
	if cfg.Generator.Provider != "offline" || len(cfg.Export.Formats) != 3 {
		t.Errorf("unexpected starter config: %+v", cfg.Generator)
	}
	if !strings.Contains(env.out.String(), "Initialized almanac storage") {
		t.Errorf("unexpected output: %s", env.out.String())
	}
}

func TestGenerate_SavesAndExports(t *testing.T) {
	env := setup(t)
	env.init(t)
	id := env.generate(t)

	ed, err := env.ctx.Store.GetEdition(id)
	if err != nil {
		t.Fatalf("GetEdition failed: %v", err)
	}
	if len(ed.Weeks) != 52 || ed.Seed != 11 {
		t.Errorf("unexpected edition: weeks=%d seed=%d", len(ed.Weeks), ed.Seed)
	}

	for _, f := range []export.Format{export.FormatJSON, export.FormatICS} {
		path := filepath.Join(env.ctx.Config.Export.OutputDir, export.FileName(ed, f))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s export at %s: %v", f, path, err)
		}
	}
	out := env.out.String()
	if !strings.Contains(out, "Saved edition") || !strings.Contains(out, "1 candidate(s) rejected") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestGenerate_NoSaveNeedsNoArchive(t *testing.T) {
	env := setup(t)
	cmd := &GenerateCmd{
		LocaleFlags: LocaleFlags{City: "Salem"},
		Places:      env.places,
		Offline:     true,
		NoSave:      true,
		Format:      []string{"summary"},
	}
	if err := cmd.Run(env.ctx); err != nil {
		t.Fatalf("generate --no-save failed: %v", err)
	}
	if _, err := os.Stat(env.ctx.Config.DatabasePath()); !os.IsNotExist(err) {
		t.Error("expected no archive to be created")
	}
}

func TestGenerate_RequiresCityWhenNotInteractive(t *testing.T) {
	env := setup(t)
	err := (&GenerateCmd{Places: env.places, Offline: true, NoSave: true}).Run(env.ctx)
	if err == nil || !strings.Contains(err.Error(), "--city") {
		t.Errorf("expected --city error, got %v", err)
	}
}

func TestGenerate_RejectsUnknownFormat(t *testing.T) {
	env := setup(t)
	cmd := &GenerateCmd{LocaleFlags: LocaleFlags{City: "Bend"}, Places: env.places, Offline: true, Format: []string{"pdf"}}
	if err := cmd.Run(env.ctx); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestEditionsCommands(t *testing.T) {
	env := setup(t)
	env.init(t)
	id := env.generate(t)

	env.out.Reset()
	if err := (&EditionsListCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(env.out.String(), id[:8]) || !strings.Contains(env.out.String(), "Portland, OR") {
		t.Errorf("expected edition in list, got:\n%s", env.out.String())
	}

	env.out.Reset()
	if err := (&EditionsShowCmd{ID: id[:8]}).Run(env.ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "Generation Summary") {
		t.Errorf("expected summary, got:\n%s", env.out.String())
	}

	env.out.Reset()
	if err := (&ValidateCmd{ID: id, Save: true}).Run(env.ctx); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "Report saved.") {
		t.Errorf("expected saved report, got:\n%s", env.out.String())
	}

	exportDir := filepath.Join(env.dir, "again")
	if err := (&ExportCmd{ID: id, Out: exportDir, Format: []string{"csv"}}).Run(env.ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(exportDir, "*.csv"))
	if len(matches) != 1 {
		t.Errorf("expected one csv export, got %v", matches)
	}

	if err := (&EditionsDeleteCmd{ID: id}).Run(env.ctx); err == nil {
		t.Error("expected delete without --yes to refuse when not interactive")
	}
	if err := (&EditionsDeleteCmd{ID: id, Yes: true}).Run(env.ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := env.ctx.Store.GetEdition(id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected edition gone, got %v", err)
	}
	if err := (&EditionsShowCmd{ID: id}).Run(env.ctx); err == nil || !strings.Contains(err.Error(), "no edition matches") {
		t.Errorf("expected not-found message, got %v", err)
	}
}

func TestPlanCmd_PrintsTable(t *testing.T) {
	env := setup(t)
	if err := (&PlanCmd{Places: env.places, Seed: 3}).Run(env.ctx); err != nil {
		t.Fatalf("plan failed: %v", err)
	}
	out := env.out.String()
	for _, want := range []string{"WEEK", "Children's Museum", "generic fallback outing", "1 candidate(s) rejected"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected plan output to contain %q", want)
		}
	}
}

func TestResolveAPIKey_Precedence(t *testing.T) {
	gokeyring.MockInit()
	cfg := config.Default()

	t.Setenv(APIKeyEnvVar, "")
	if _, err := ResolveAPIKey(&cfg); !errors.Is(err, generator.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}

	if err := gokeyring.Set("almanac", "generator-api-key", "from-keyring"); err != nil {
		t.Fatalf("keyring set failed: %v", err)
	}
	if key, _ := ResolveAPIKey(&cfg); key != "from-keyring" {
		t.Errorf("expected keyring key, got %q", key)
	}

	t.Setenv(APIKeyEnvVar, "from-env")
	if key, _ := ResolveAPIKey(&cfg); key != "from-env" {
		t.Errorf("expected env key, got %q", key)
	}

	cfg.Generator.APIKey = "from-config"
	if key, _ := ResolveAPIKey(&cfg); key != "from-config" {
		t.Errorf("expected config key, got %q", key)
	}
}

func TestNewGenerator(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(APIKeyEnvVar, "")
	cfg := config.Default()

	gen, err := NewGenerator(&cfg, false)
	if err != nil || gen.Name() != "offline" {
		t.Fatalf("expected offline generator by default, got %v, %v", gen, err)
	}

	cfg.Generator.Provider = "anthropic"
	if _, err := NewGenerator(&cfg, false); !errors.Is(err, generator.ErrMissingAPIKey) {
		t.Errorf("expected missing key error, got %v", err)
	}
	if gen, err := NewGenerator(&cfg, true); err != nil || gen.Name() != "offline" {
		t.Errorf("expected --offline to win, got %v, %v", gen, err)
	}

	cfg.Generator.APIKey = "sk-test"
	if gen, err := NewGenerator(&cfg, false); err != nil || gen.Name() != "anthropic" {
		t.Errorf("expected anthropic generator, got %v, %v", gen, err)
	}
}

func TestPipelineOptions_MissingLibrary(t *testing.T) {
	cfg := config.Default()
	cfg.Content.LibraryPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := PipelineOptions(&cfg); err == nil {
		t.Error("expected error for missing library file")
	}
}

func TestKeyCommands(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(APIKeyEnvVar, "")
	env := setup(t)

	if err := (&KeySetCmd{}).Run(env.ctx); err == nil {
		t.Error("expected key set without a key to fail when not interactive")
	}
	if err := (&KeySetCmd{Key: "sk-ant-secret-1234"}).Run(env.ctx); err != nil {
		t.Fatalf("key set failed: %v", err)
	}
	if strings.Contains(env.out.String(), "secret") {
		t.Error("key set must not echo the key")
	}

	env.out.Reset()
	if err := (&KeyStatusCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("key status failed: %v", err)
	}
	if !strings.Contains(env.out.String(), "from OS keyring (****1234)") {
		t.Errorf("unexpected status: %s", env.out.String())
	}

	if err := (&KeyDeleteCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("key delete failed: %v", err)
	}
	if err := (&KeyDeleteCmd{}).Run(env.ctx); err == nil {
		t.Error("expected second delete to fail")
	}
}

func TestDoctor(t *testing.T) {
	env := setup(t)
	if err := (&DoctorCmd{}).Run(env.ctx); err == nil {
		t.Error("expected doctor to fail before init")
	}

	env.init(t)
	env.out.Reset()
	if err := (&DoctorCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("doctor failed after init: %v\n%s", err, env.out.String())
	}
	if !strings.Contains(env.out.String(), "All checks passed.") {
		t.Errorf("unexpected doctor output: %s", env.out.String())
	}
}

func TestBackupCommands(t *testing.T) {
	env := setup(t)
	env.init(t)
	id := env.generate(t)

	env.out.Reset()
	if err := (&BackupCreateCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	snaps, err := backup.NewManager(env.ctx.Store.Path()).List()
	if err != nil || len(snaps) != 1 {
		t.Fatalf("expected one snapshot, got %v, %v", snaps, err)
	}

	env.out.Reset()
	if err := (&BackupListCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(env.out.String(), snaps[0].Name()) {
		t.Errorf("expected snapshot in list, got:\n%s", env.out.String())
	}

	if err := (&EditionsDeleteCmd{ID: id, Yes: true}).Run(env.ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&BackupRestoreCmd{Snapshot: snaps[0].Name()}).Run(env.ctx); err == nil {
		t.Error("expected restore without --yes to refuse when not interactive")
	}
	if err := (&BackupRestoreCmd{Snapshot: snaps[0].Name(), Yes: true}).Run(env.ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if _, err := env.ctx.Store.GetEdition(id); err != nil {
		t.Errorf("expected restored edition, got %v", err)
	}
	if err := (&BackupRestoreCmd{Snapshot: "missing.db", Yes: true}).Run(env.ctx); err == nil {
		t.Error("expected error for unknown snapshot")
	}
}

func TestInit_ForceSnapshotsExistingArchive(t *testing.T) {
	env := setup(t)
	env.init(t)
	env.generate(t)

	if err := (&InitCmd{Force: true}).Run(env.ctx); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}
	list, err := env.ctx.Store.ListEditions()
	if err != nil {
		t.Fatalf("ListEditions failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty archive after --force, got %d editions", len(list))
	}
	snaps, err := backup.NewManager(env.ctx.Store.Path()).List()
	if err != nil || len(snaps) != 1 {
		t.Errorf("expected the old archive to be snapshotted, got %v, %v", snaps, err)
	}
}

func TestParseFormats(t *testing.T) {
	got, err := parseFormats(nil, []string{"markdown", "json"})
	if err != nil || len(got) != 2 || got[0] != export.FormatMarkdown {
		t.Errorf("expected configured formats, got %v, %v", got, err)
	}

	got, err = parseFormats([]string{" ICS "}, []string{"markdown"})
	if err != nil || len(got) != 1 || got[0] != export.FormatICS {
		t.Errorf("expected flag formats to win, got %v, %v", got, err)
	}

	if _, err := parseFormats([]string{"docx"}, nil); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestValidate_QAErrorsExitNonZero(t *testing.T) {
	env := setup(t)
	env.init(t)
	id := env.generate(t)

	ed, err := env.ctx.Store.GetEdition(id)
	if err != nil {
		t.Fatalf("GetEdition failed: %v", err)
	}
	ed.Weeks[3].Title = ed.Weeks[2].Title
	if err := env.ctx.Store.SaveEdition(ed); err != nil {
		t.Fatalf("SaveEdition failed: %v", err)
	}

	env.out.Reset()
	err = (&ValidateCmd{ID: id}).Run(env.ctx)
	var qaErr *QAError
	if !errors.As(err, &qaErr) {
		t.Fatalf("expected QAError, got %v", err)
	}
	if qaErr.Errors < 1 {
		t.Errorf("expected at least one QA error, got %d", qaErr.Errors)
	}
	if code := apperrors.ExitCode(err); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if !strings.Contains(env.out.String(), "Title repetition") {
		t.Errorf("expected the repeated title in the report, got:\n%s", env.out.String())
	}
}
