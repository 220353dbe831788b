package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fplcore/analysis-api/internal/domain/snapshot"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeGameweekFile(t *testing.T, dataDir string, gameweekID int, file, content string) {
	t.Helper()
	writeFile(t, filepath.Join(dataDir, gameweekDir, fmt.Sprintf("GW%d", gameweekID), file), content)
}

func TestGameweekSummaries(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	writeFile(t, filepath.Join(dataDir, summariesFile),
		"id,finished,data_checked,is_next,deadline_time\n"+
			"1,True,True,False,2025-08-01T17:30:00Z\n"+
			"2,true,false,false,2025-08-08T17:30:00Z\n"+
			"3,False,False,True,2025-08-15T17:30:00Z\n"+
			"oops,False,False,False,2025-08-22T17:30:00Z\n")

	provider := NewProvider(dataDir, nil)
	gws, err := provider.GameweekSummaries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The malformed row is skipped, not fatal.
	if len(gws) != 3 {
		t.Fatalf("expected 3 gameweeks, got %d", len(gws))
	}
	if !gws[0].Finished || !gws[0].DataChecked {
		t.Fatalf("stringified booleans not parsed: %+v", gws[0])
	}
	if gws[1].Finished != true || gws[1].DataChecked != false {
		t.Fatalf("unexpected gameweek 2: %+v", gws[1])
	}
	if !gws[2].IsNext {
		t.Fatalf("is_next not parsed: %+v", gws[2])
	}
	want := time.Date(2025, time.August, 1, 17, 30, 0, 0, time.UTC)
	if !gws[0].DeadlineTime.Equal(want) {
		t.Fatalf("unexpected deadline: %v", gws[0].DeadlineTime)
	}
}

func TestGameweekSummariesMissingFile(t *testing.T) {
	provider := NewProvider(t.TempDir(), nil)
	_, err := provider.GameweekSummaries(context.Background())
	if !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGameweekSummariesMissingColumn(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, filepath.Join(dataDir, summariesFile), "id,finished\n1,True\n")

	provider := NewProvider(dataDir, nil)
	_, err := provider.GameweekSummaries(context.Background())
	if err == nil {
		t.Fatalf("expected an error for a schedule without required columns")
	}
	if errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("a present but invalid schedule must not look missing: %v", err)
	}
}

func TestPlayerGameweekStats(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	writeGameweekFile(t, dataDir, 5, statsFile,
		"id,status,now_cost,total_points,influence,captain,short_name\n"+
			"10,a,5.5,12,32.6666,True,SAL\n"+
			"11,u,7.0,,,False,\n"+
			"bad,a,5.0,1,,,\n")

	provider := NewProvider(dataDir, nil)
	stats, err := provider.PlayerGameweekStats(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The unparseable id row is dropped.
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}

	first := stats[0]
	if first.ID != 10 || first.Status == nil || *first.Status != "a" {
		t.Fatalf("unexpected row: %+v", first)
	}
	if first.NowCost == nil || *first.NowCost != 5.5 {
		t.Fatalf("now_cost not decoded: %+v", first.NowCost)
	}
	if first.TotalPoints == nil || *first.TotalPoints != 12 {
		t.Fatalf("total_points not decoded: %+v", first.TotalPoints)
	}
	if first.Extra["influence"] != 32.6666 {
		t.Fatalf("float pass-through not inferred: %v", first.Extra["influence"])
	}
	if first.Extra["captain"] != true {
		t.Fatalf("bool pass-through not inferred: %v", first.Extra["captain"])
	}
	if first.Extra["short_name"] != "SAL" {
		t.Fatalf("string pass-through not inferred: %v", first.Extra["short_name"])
	}

	// Empty cells mean absent, never zero values.
	second := stats[1]
	if second.TotalPoints != nil {
		t.Fatalf("empty cell must stay absent: %+v", second.TotalPoints)
	}
	if _, ok := second.Extra["short_name"]; ok {
		t.Fatalf("empty pass-through cell must stay absent")
	}
}

func TestPlayerGameweekStatsMissingSnapshot(t *testing.T) {
	provider := NewProvider(t.TempDir(), nil)
	_, err := provider.PlayerGameweekStats(context.Background(), 3)
	if !errors.Is(err, snapshot.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlayers(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	writeGameweekFile(t, dataDir, 5, playersFile,
		"player_id,position,team_code\n"+
			"10,Midfielder,3\n"+
			"11,Forward,\n"+
			"nope,Defender,3\n")

	provider := NewProvider(dataDir, nil)
	refs, err := provider.Players(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].PlayerID != 10 || refs[0].Position != "Midfielder" || refs[0].TeamCode != 3 {
		t.Fatalf("unexpected ref: %+v", refs[0])
	}
	if refs[1].TeamCode != 0 {
		t.Fatalf("empty team_code must stay zero: %+v", refs[1])
	}
}

func TestTeams(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	writeGameweekFile(t, dataDir, 5, teamsFile,
		"code,name,elo,strength,strength_attack_home,short_name\n"+
			"3,Arsenal,1825.4567,4,1350,ARS\n"+
			"7,Villa,,,,AVL\n")

	provider := NewProvider(dataDir, nil)
	refs, err := provider.Teams(ctx, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	arsenal := refs[0]
	if arsenal.Code != 3 || arsenal.Name != "Arsenal" {
		t.Fatalf("unexpected ref: %+v", arsenal)
	}
	if arsenal.Elo == nil || *arsenal.Elo != 1825.4567 {
		t.Fatalf("elo not decoded: %+v", arsenal.Elo)
	}
	if arsenal.Strength == nil || *arsenal.Strength != 4 {
		t.Fatalf("strength not decoded: %+v", arsenal.Strength)
	}
	if arsenal.StrengthAttackHome == nil || *arsenal.StrengthAttackHome != 1350 {
		t.Fatalf("strength_attack_home not decoded: %+v", arsenal.StrengthAttackHome)
	}
	if arsenal.StrengthOverallHome != nil {
		t.Fatalf("absent strength column must stay nil")
	}

	villa := refs[1]
	if villa.Elo != nil || villa.Strength != nil {
		t.Fatalf("empty metric cells must stay absent: %+v", villa)
	}
}

func TestTeamsMissingCodeColumn(t *testing.T) {
	dataDir := t.TempDir()
	writeGameweekFile(t, dataDir, 5, teamsFile, "name,elo\nArsenal,1825\n")

	provider := NewProvider(dataDir, nil)
	if _, err := provider.Teams(context.Background(), 5); err == nil {
		t.Fatalf("expected an error without a code column")
	}
}

func TestReadCSVEmptyFile(t *testing.T) {
	dataDir := t.TempDir()
	writeFile(t, filepath.Join(dataDir, summariesFile), "")

	provider := NewProvider(dataDir, nil)
	_, err := provider.GameweekSummaries(context.Background())
	if err == nil {
		t.Fatalf("expected an error for an empty schedule file")
	}
}
