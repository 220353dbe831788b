package playerstats

import (
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestGroupKey(t *testing.T) {
	mid := "Midfielder"
	stat := GameweekStat{ID: 10, Position: &mid}

	key, ok := stat.GroupKey()
	if !ok || key != "10-Midfielder" {
		t.Fatalf("unexpected key: %q ok=%v", key, ok)
	}

	if _, ok := (GameweekStat{ID: 10}).GroupKey(); ok {
		t.Fatalf("expected no key without a position")
	}
	empty := ""
	if _, ok := (GameweekStat{ID: 10, Position: &empty}).GroupKey(); ok {
		t.Fatalf("expected no key for an empty position")
	}
}

func TestUnavailable(t *testing.T) {
	u := StatusUnavailable
	a := "a"

	if !(GameweekStat{Status: &u}).Unavailable() {
		t.Fatalf("status %q must be unavailable", u)
	}
	if (GameweekStat{Status: &a}).Unavailable() {
		t.Fatalf("status %q must be available", a)
	}
	if (GameweekStat{}).Unavailable() {
		t.Fatalf("missing status must be available")
	}
}

func TestMarshalJSONOmitsAbsentFields(t *testing.T) {
	stat := GameweekStat{ID: 10, Gameweek: 5, Season: "2025-2026"}

	raw, err := sonic.Marshal(stat)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var obj map[string]any
	if err := sonic.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"status", "now_cost", "position", "team_code", "team_name", "team_elo"} {
		if _, ok := obj[key]; ok {
			t.Fatalf("absent field %q must not appear: %s", key, raw)
		}
	}
	if obj["id"] != float64(10) || obj["gameweek"] != float64(5) || obj["season"] != "2025-2026" {
		t.Fatalf("core fields missing: %s", raw)
	}
}

func TestMarshalJSONFlattensExtra(t *testing.T) {
	cost := 5.68
	stat := GameweekStat{
		ID:       10,
		Gameweek: 5,
		Season:   "2025-2026",
		NowCost:  &cost,
		Extra: map[string]any{
			"influence": 32.67,
			"starts":    12,
		},
	}

	raw, err := sonic.Marshal(stat)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var obj map[string]any
	if err := sonic.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("unmarshal flattened object: %v\n%s", err, raw)
	}

	if obj["influence"] != 32.67 {
		t.Fatalf("pass-through column not flattened: %s", raw)
	}
	if obj["starts"] != float64(12) {
		t.Fatalf("pass-through column not flattened: %s", raw)
	}
	if obj["now_cost"] != 5.68 {
		t.Fatalf("fixed field lost while splicing: %s", raw)
	}
	if strings.Contains(string(raw), `"Extra"`) || strings.Contains(string(raw), `"extra"`) {
		t.Fatalf("extra map must not appear as a nested object: %s", raw)
	}
}

func TestMarshalJSONEmptyExtra(t *testing.T) {
	stat := GameweekStat{ID: 10, Gameweek: 5, Season: "2025-2026", Extra: map[string]any{}}

	raw, err := sonic.Marshal(stat)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var obj map[string]any
	if err := sonic.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, raw)
	}
	if obj["id"] != float64(10) {
		t.Fatalf("unexpected object: %s", raw)
	}
}
